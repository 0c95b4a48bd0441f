package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/aretw0/shelf"
	"github.com/aretw0/shelf/pkg/config"
	"github.com/aretw0/shelf/pkg/toc"
)

// initCmd represents the init command
var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Initialize a shelf collection",
	Long: `Initialize a new collection in the current directory: scaffolds a
shelf.yaml, an index document with the managed TOC markers, and the
articles directory.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		target, err := os.Getwd()
		if err != nil {
			fatal("Failed to get working directory", err)
		}
		if len(args) == 1 {
			target = args[0]
		}

		if _, err = shelf.Init(target, shelf.WithAutoInit(true), shelf.WithLogger(slog.Default())); err != nil {
			fatal("Failed to initialize collection", err)
		}

		cfg := config.Default()
		if err := scaffold(target, cfg); err != nil {
			fatal("Failed to scaffold collection", err)
		}

		fmt.Println("Initialized empty shelf collection in", target)
	},
}

// scaffold writes the starter files, skipping any that already exist.
func scaffold(root string, cfg config.Config) error {
	files := map[string]string{
		config.FileName: fmt.Sprintf("index: %s\narticles_dir: %s\n", cfg.Index, cfg.ArticlesDir),
		cfg.Index: fmt.Sprintf("# %s\n\n%s\n%s\n", filepath.Base(root),
			toc.BeginMarker, toc.EndMarker),
	}

	if err := os.MkdirAll(filepath.Join(root, cfg.ArticlesDir), 0o755); err != nil {
		return err
	}

	for name, content := range files {
		path := filepath.Join(root, name)
		if _, err := os.Stat(path); err == nil {
			continue // never clobber existing files
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
