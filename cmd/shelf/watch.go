package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/shelf"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-lint the collection whenever an article changes",
	Long: `Watch observes the collection for file changes and re-runs the lint rules
after each change. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root := collectionRoot()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		service, err := shelf.New(root,
			shelf.WithMustExist(true),
			shelf.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open collection", err)
		}

		events, err := service.Watch(ctx, "")
		if err != nil {
			fatal("Failed to start watcher", err)
		}

		fmt.Fprintf(os.Stderr, "Watching %s (Ctrl-C to stop)\n", root)
		relint(ctx, root)

		for event := range events {
			slog.Debug("change detected", "type", event.Type, "id", event.ID)
			relint(ctx, root)
		}
	},
}

// relint runs a full lint pass and prints the findings. Watch keeps going
// on lint failures so a transient error does not kill the session.
func relint(ctx context.Context, root string) {
	report, err := shelf.Lint(ctx, root, shelf.WithMustExist(true))
	if err != nil {
		if ctx.Err() == nil {
			fmt.Fprintf(os.Stderr, "lint failed: %v\n", err)
		}
		return
	}

	for _, f := range report.Findings {
		fmt.Println(f.String())
	}

	status := "clean"
	if report.HasErrors() {
		status = "errors"
	} else if len(report.Findings) > 0 {
		status = "warnings"
	}
	fmt.Fprintf(os.Stderr, "%d document(s) checked: %s\n", report.Checked, status)
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
