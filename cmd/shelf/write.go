package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/shelf"
	"github.com/aretw0/shelf/pkg/core"
)

var (
	writeContent string
	writeTitle   string
	writeTags    []string
)

// writeCmd represents the write command
var writeCmd = &cobra.Command{
	Use:   "write [id]",
	Short: "Create or update an article",
	Long: `Create or update an article with the given ID. Content comes from
--content, or from stdin when the flag is omitted. Title and tags are
written into the frontmatter.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		id := args[0]
		root := collectionRoot()

		content := writeContent
		if !cmd.Flags().Changed("content") {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				fatal("Failed to read stdin", err)
			}
			content = string(data)
		}

		service, err := shelf.New(root,
			shelf.WithMustExist(true),
			shelf.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open collection", err)
		}

		meta := core.Metadata{}
		if writeTitle != "" {
			meta["title"] = writeTitle
		}
		if len(writeTags) > 0 {
			meta["tags"] = writeTags
		}

		if err := service.SaveArticle(context.Background(), id, content, meta); err != nil {
			fatal("Failed to save article", err)
		}

		fmt.Printf("Article '%s' saved.\n", id)
	},
}

func init() {
	rootCmd.AddCommand(writeCmd)
	writeCmd.Flags().StringVar(&writeContent, "content", "", "Article body (reads stdin when omitted)")
	writeCmd.Flags().StringVar(&writeTitle, "title", "", "Frontmatter title")
	writeCmd.Flags().StringSliceVar(&writeTags, "tag", nil, "Frontmatter tag (repeatable)")
}
