package main

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/aretw0/tutorcheck"
	"github.com/aretw0/tutorcheck/pkg/config"
)

// openPlatform resolves the root and configuration from the persistent flags.
// configure, when set, edits the loaded configuration before the checkers are wired.
func openPlatform(configure func(*config.Config)) (*tutorcheck.Platform, error) {
	root, err := tutorcheck.ResolveRoot(rootDir)
	if err != nil {
		return nil, err
	}

	path := configPath
	if path == "" {
		path = filepath.Join(root, config.FileName)
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if configure != nil {
		configure(cfg)
	}

	opts := []tutorcheck.Option{
		tutorcheck.WithConfig(cfg),
		tutorcheck.WithLogger(slog.Default()),
		tutorcheck.WithOutput(os.Stdout),
	}
	if noCommit {
		opts = append(opts, tutorcheck.WithAutoCommit(false))
	}
	return tutorcheck.New(root, opts...)
}
