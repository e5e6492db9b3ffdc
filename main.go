package main

import (
	"os"

	"github.com/goldenkube/kubeprep/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
