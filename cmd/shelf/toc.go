package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/shelf"
	"github.com/aretw0/shelf/pkg/config"
	"github.com/aretw0/shelf/pkg/git"
)

var (
	tocCheck  bool
	tocCommit bool
)

var tocCmd = &cobra.Command{
	Use:   "toc",
	Short: "Regenerate the index's table of contents",
	Long: `Toc rewrites the marker-delimited region of the index document with one
entry per article, sorted by path. With --check nothing is written and the
exit code is 1 when the region is out of date.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root := collectionRoot()

		changed, err := shelf.UpdateTOC(context.Background(), root, tocCheck,
			shelf.WithMustExist(true),
			shelf.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to update TOC", err)
		}

		if tocCheck {
			if changed {
				fmt.Fprintln(os.Stderr, "TOC is out of date, run 'shelf toc' to regenerate")
				os.Exit(1)
			}
			fmt.Println("TOC is up to date.")
			return
		}

		if !changed {
			fmt.Println("TOC already up to date.")
			return
		}

		cfg, err := config.Load(root)
		if err != nil {
			fatal("Failed to load config", err)
		}
		fmt.Printf("Updated TOC in %s\n", cfg.Index)

		if tocCommit {
			client := git.NewClient(root, slog.Default())
			if !git.IsInstalled() || !client.IsRepo() {
				fatal("Cannot commit", fmt.Errorf("%s is not a git repository", root))
			}
			if err := client.Add(cfg.Index); err != nil {
				fatal("Failed to stage index", err)
			}
			if err := client.Commit(fmt.Sprintf("docs: regenerate TOC in %s", cfg.Index)); err != nil {
				fatal("Failed to commit", err)
			}
			fmt.Println("Committed TOC update.")
		}
	},
}

func init() {
	rootCmd.AddCommand(tocCmd)
	tocCmd.Flags().BoolVar(&tocCheck, "check", false, "Only check for drift, do not write")
	tocCmd.Flags().BoolVar(&tocCommit, "commit", false, "Commit the regenerated index via git")
}
