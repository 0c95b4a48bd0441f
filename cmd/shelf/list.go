package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/shelf"
	"github.com/aretw0/shelf/pkg/core"
)

var (
	listJSON  bool
	filterTag string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all articles in the collection",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root := collectionRoot()

		service, err := shelf.New(root,
			shelf.WithMustExist(true),
			shelf.WithReadOnly(true),
			shelf.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open collection", err)
		}

		articles, err := service.ListArticles(context.Background())
		if err != nil {
			fatal("Failed to list articles", err)
		}

		var filtered []core.Article
		for _, a := range articles {
			if filterTag != "" && !a.HasTag(filterTag) {
				continue
			}
			filtered = append(filtered, a)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(filtered); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, a := range filtered {
			title := ""
			if t := a.Title(); t != "" {
				title = fmt.Sprintf("- %s", t)
			}
			fmt.Printf("%s %s\n", a.ID, title)
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&filterTag, "tag", "", "Filter articles by tag")
}
