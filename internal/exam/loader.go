package exam

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// BuiltinPrefix selects a question bank compiled into the binary.
const BuiltinPrefix = "builtin:"

//go:embed bank/*.json
var builtinBanks embed.FS

// Loader reads question banks from a URL, a file, or the built-in set.
type Loader struct {
	client *http.Client
}

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) LoaderOption {
	return func(l *Loader) { l.client = c }
}

// WithTimeout sets the HTTP timeout on the default client.
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) { l.client = &http.Client{Timeout: d} }
}

// NewLoader creates a Loader.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{client: &http.Client{Timeout: 15 * time.Second}}
	for _, o := range opts {
		o(l)
	}
	return l
}

// Load fetches, validates and decodes the bank at source. A failed load is
// final: there are no retries.
func (l *Loader) Load(ctx context.Context, source string) ([]Question, error) {
	raw, err := l.read(ctx, strings.TrimSpace(source))
	if err != nil {
		return nil, err
	}
	return Parse(raw)
}

// Parse validates and decodes a bank document.
func Parse(raw []byte) ([]Question, error) {
	if err := validateDocument(raw); err != nil {
		return nil, err
	}
	var questions []Question
	if err := json.Unmarshal(raw, &questions); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBank, err)
	}
	if err := ValidateBank(questions); err != nil {
		return nil, err
	}
	return questions, nil
}

func (l *Loader) read(ctx context.Context, source string) ([]byte, error) {
	switch {
	case source == "":
		return nil, fmt.Errorf("no question source configured")
	case strings.HasPrefix(source, BuiltinPrefix):
		name := strings.TrimPrefix(source, BuiltinPrefix)
		data, err := builtinBanks.ReadFile("bank/" + name + ".json")
		if err != nil {
			return nil, fmt.Errorf("unknown built-in bank %q", name)
		}
		return data, nil
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return l.fetch(ctx, source)
	default:
		data, err := os.ReadFile(source)
		if err != nil {
			return nil, fmt.Errorf("read questions: %w", err)
		}
		return data, nil
	}
}

func (l *Loader) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch questions: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch questions: HTTP %d for %s", resp.StatusCode, url)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	return data, nil
}
