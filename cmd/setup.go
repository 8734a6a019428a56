package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/desertthunder/shelf/internal/repositories"
	"github.com/desertthunder/shelf/internal/shared"
	"github.com/urfave/cli/v3"
)

// SetupConfig writes the built-in config template to --output.
func (r *Runner) SetupConfig(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("output")
	if path == "" {
		return fmt.Errorf("%w: --output", shared.ErrMissingArgument)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	r.logger.Info("config file created", "path", path)
	r.writePlain("✓ Config written to %s\n", path)
	r.writePlain("Edit library.path to choose where the catalog is stored.\n")
	return nil
}

// SetupLibrary creates an empty catalog at the configured path. An existing catalog is loaded and left untouched.
func (r *Runner) SetupLibrary(ctx context.Context, cmd *cli.Command) error {
	path := r.config.Library.Path
	store := repositories.NewCatalogStore(path)
	if err := store.Load(); err != nil {
		return err
	}

	if _, err := os.Stat(path); err == nil {
		return r.writePlain("Catalog already exists at %s (%d books)\n", path, store.Len())
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("%w: create catalog directory: %v", shared.ErrStorage, err)
		}
	}
	if err := store.Save(); err != nil {
		return err
	}

	r.logger.Info("catalog created", "path", path)
	return r.writePlain("✓ Created empty catalog at %s\n", path)
}
