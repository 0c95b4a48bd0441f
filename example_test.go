package shelf_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/shelf"
	"github.com/aretw0/shelf/pkg/core"
)

// Example_basic demonstrates how to initialize a collection, save an
// article, and read it back.
func Example_basic() {
	// Create a temporary directory for the example
	tmpDir, err := os.MkdirTemp("", "shelf-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	// Initialize the Shelf service targeting the temporary directory.
	// WithAutoInit(true) creates the directory layout on first use.
	svc, err := shelf.New(tmpDir, shelf.WithAutoInit(true))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// 1. Save an article
	err = svc.SaveArticle(ctx, "articles/hello-world", "My first article.", core.Metadata{
		"title": "Hello World",
		"tags":  []string{"example"},
	})
	if err != nil {
		log.Fatal(err)
	}

	// 2. Read it back
	article, err := svc.GetArticle(ctx, "articles/hello-world")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Printf("Found article: %s (%s)\n", article.ID, article.Title())
	// Output:
	// Found article: articles/hello-world (Hello World)
}

// Example_lint demonstrates running the rule set over a collection.
func Example_lint() {
	tmpDir, err := os.MkdirTemp("", "shelf-lint-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	svc, err := shelf.New(tmpDir, shelf.WithAutoInit(true))
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()

	// An article with a link to a file that does not exist.
	err = svc.SaveArticle(ctx, "articles/broken", "# Broken\n\n[gone](missing.md)\n", core.Metadata{
		"title": "Broken",
	})
	if err != nil {
		log.Fatal(err)
	}

	report, err := shelf.Lint(ctx, tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	for _, f := range report.Findings {
		if f.Rule == "dead-links" {
			fmt.Println(f.Message)
		}
	}
	// Output:
	// broken link "missing.md" (articles/missing.md does not exist)
}
