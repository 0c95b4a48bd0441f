package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/aretw0/shelf"
)

var deleteCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete an article from the collection",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		root := collectionRoot()

		service, err := shelf.New(root,
			shelf.WithMustExist(true),
			shelf.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open collection", err)
		}

		if err := service.DeleteArticle(context.Background(), id); err != nil {
			fatal("Failed to delete article", err)
		}

		fmt.Printf("Article deleted: %s\n", id)
	},
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}
