package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/shelf"
)

var (
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "shelf",
	Short: "A lint and maintenance toolkit for Markdown article collections",
	Long: `Shelf treats a directory of Markdown articles as a curated collection.
It checks links, code fences, Mermaid diagrams and frontmatter conventions,
and keeps the index's table of contents in sync with the articles on disk.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

// collectionRoot locates the collection root, walking upwards from the
// working directory. Falls back to the working directory itself when no
// root indicator is found.
func collectionRoot() string {
	wd, err := os.Getwd()
	if err != nil {
		fatal("Failed to get working directory", err)
	}

	root, err := shelf.FindRoot(wd)
	if err != nil {
		return wd
	}
	return root
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}
