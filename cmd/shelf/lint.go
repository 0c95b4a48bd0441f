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
	"github.com/aretw0/shelf/pkg/git"
	"github.com/aretw0/shelf/pkg/lint"
)

var (
	lintJSON      bool
	lintStrict    bool
	lintChanged   string
	lintRules     []string
	lintListRules bool
)

var lintCmd = &cobra.Command{
	Use:   "lint [path]",
	Short: "Check the collection for broken links, bad fences and drift",
	Long: `Lint runs the configured rule set over every article in the collection.
Findings are printed one per line as "path:line: [severity] rule: message".
The exit code is 1 when any error-level finding exists (or any finding at
all with --strict).`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if lintListRules {
			for _, rule := range lint.DefaultRules() {
				fmt.Printf("%-21s %s\n", rule.Name(), rule.Description())
			}
			return
		}

		root := collectionRoot()
		if len(args) == 1 {
			root = args[0]
		}

		report, err := shelf.Lint(context.Background(), root,
			shelf.WithMustExist(true),
			shelf.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Lint failed", err)
		}

		findings := report.Findings
		if len(lintRules) > 0 {
			findings = filterByRule(findings, lintRules)
		}
		if cmd.Flags().Changed("changed") {
			findings, err = filterByChanged(findings, root, lintChanged)
			if err != nil {
				fatal("Failed to determine changed files", err)
			}
		}

		if lintJSON {
			out := struct {
				Findings []core.Finding `json:"findings"`
				Checked  int            `json:"checked"`
			}{findings, report.Checked}
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(out); err != nil {
				fatal("Failed to encode JSON", err)
			}
		} else {
			for _, f := range findings {
				fmt.Println(f.String())
			}
			fmt.Fprintf(os.Stderr, "%d document(s) checked, %d finding(s)\n", report.Checked, len(findings))
		}

		for _, f := range findings {
			if f.Severity == core.SeverityError || lintStrict {
				os.Exit(1)
			}
		}
	},
}

func filterByRule(findings []core.Finding, rules []string) []core.Finding {
	allowed := make(map[string]bool, len(rules))
	for _, r := range rules {
		allowed[r] = true
	}

	var kept []core.Finding
	for _, f := range findings {
		if allowed[f.Rule] {
			kept = append(kept, f)
		}
	}
	return kept
}

// filterByChanged keeps only findings in files that differ from the base ref.
func filterByChanged(findings []core.Finding, root, base string) ([]core.Finding, error) {
	client := git.NewClient(root, slog.Default())
	if !git.IsInstalled() || !client.IsRepo() {
		return nil, fmt.Errorf("--changed requires a git repository at %s", root)
	}

	changed, err := client.ChangedFiles(base)
	if err != nil {
		return nil, err
	}

	set := make(map[string]bool, len(changed))
	for _, p := range changed {
		set[p] = true
	}

	var kept []core.Finding
	for _, f := range findings {
		if set[f.Path] {
			kept = append(kept, f)
		}
	}
	return kept, nil
}

func init() {
	rootCmd.AddCommand(lintCmd)
	lintCmd.Flags().BoolVar(&lintJSON, "json", false, "Output in JSON format")
	lintCmd.Flags().BoolVar(&lintStrict, "strict", false, "Exit non-zero on warnings too")
	lintCmd.Flags().StringVar(&lintChanged, "changed", "HEAD", "Only report findings in files changed since the given ref")
	lintCmd.Flags().Lookup("changed").NoOptDefVal = "HEAD"
	lintCmd.Flags().StringSliceVar(&lintRules, "rule", nil, "Only report findings from the given rule(s)")
	lintCmd.Flags().BoolVar(&lintListRules, "list-rules", false, "List the built-in rules and exit")
}
