package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/shelf"
)

var (
	readJSON bool
)

var readCmd = &cobra.Command{
	Use:   "read [id]",
	Short: "Read an article",
	Long:  `Read an article by its ID. Outputs raw markdown content by default, or a JSON object with --json.`,
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		root := collectionRoot()

		service, err := shelf.New(root,
			shelf.WithMustExist(true),
			shelf.WithReadOnly(true),
			shelf.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open collection", err)
		}

		article, err := service.GetArticle(context.Background(), id)
		if err != nil {
			fatal("Failed to read article", err)
		}

		if readJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(article); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		fmt.Print(article.Content)
	},
}

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().BoolVar(&readJSON, "json", false, "Output in JSON format")
}
