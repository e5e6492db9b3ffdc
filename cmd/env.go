package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/goldenkube/kubeprep/internal/analytics"
	"github.com/goldenkube/kubeprep/internal/appearance"
	"github.com/goldenkube/kubeprep/internal/config"
	quiz "github.com/goldenkube/kubeprep/internal/exam"
	"github.com/goldenkube/kubeprep/internal/logging"
	"github.com/goldenkube/kubeprep/internal/store"
	pref "github.com/goldenkube/kubeprep/internal/theme"
)

// env bundles the services a command runs with.
type env struct {
	cfg        *config.Config
	store      *store.Store
	log        *log.Logger
	logCloser  io.Closer
	themes     *pref.Service
	appearance *appearance.Manager
	tracker    *analytics.Tracker
	loader     *quiz.Loader
}

// Close releases the database and the log file.
func (e *env) Close() {
	if e.store != nil {
		_ = e.store.Close()
	}
	if e.logCloser != nil {
		_ = e.logCloser.Close()
	}
}

// resolveConfigPath returns --config or the default location.
func resolveConfigPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("config"); p != "" {
		return p, nil
	}
	return config.DefaultPath()
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := resolveConfigPath(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `kubeprep config init` to create a config file", err)
	}
	if q, _ := cmd.Flags().GetString("questions"); q != "" {
		cfg.Questions = q
	}
	if db, _ := cmd.Flags().GetString("db"); db != "" {
		cfg.DBPath = db
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path (--db flag or config
// db_path), then KUBEPREP_DB, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// setup loads the config, opens the store and log file, and builds the
// theme, appearance and analytics services on top of them. The theme is
// initialised with a dark system preference; the TUI re-initialises it
// once the terminal reports its background.
func setup(cmd *cobra.Command) (*env, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}

	e := &env{cfg: cfg}

	logPath := cfg.LogFile
	if logPath == "" {
		logPath = logging.DefaultPath(dbPath)
	}
	logger, closer, err := logging.OpenFile(logPath, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	e.log, e.logCloser = logger, closer

	var kv store.KV
	if st, err := store.Open(dbPath); err != nil {
		e.log.Warn("open store, using in-memory settings", "path", dbPath, "err", err)
		kv = store.NewMemoryKV()
	} else {
		e.store = st
		kv = st.KV()
		e.log.Debug("store opened", "path", dbPath)
	}

	e.themes = pref.NewService(kv, e.log)
	e.tracker = analytics.NewTracker(kv, e.log)
	e.themes.Subscribe(e.tracker.Observe(ctx))
	e.appearance = appearance.NewManager(kv, e.themes, e.log)
	e.appearance.Load(ctx)
	e.themes.Init(ctx, true)
	e.loader = quiz.NewLoader(quiz.WithTimeout(cfg.HTTPTimeout))
	return e, nil
}
