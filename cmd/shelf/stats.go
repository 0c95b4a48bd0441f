package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/aretw0/shelf"
	"github.com/aretw0/shelf/pkg/config"
	"github.com/aretw0/shelf/pkg/lint"
	"github.com/aretw0/shelf/pkg/markdown"
	"github.com/aretw0/shelf/pkg/mermaid"
)

var (
	statsJSON bool
)

// collectionStats aggregates corpus-wide counters for the stats command.
type collectionStats struct {
	Articles  int            `json:"articles"`
	Words     int            `json:"words"`
	Links     int            `json:"links"`
	Fences    map[string]int `json:"fences"`
	Diagrams  map[string]int `json:"diagrams"`
	Domains   map[string]int `json:"domains"`
	ParseErrs int            `json:"parse_errors"`
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print corpus-wide statistics",
	Long:  `Stats counts articles, words, links, fence languages and Mermaid diagram types across the collection.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		root := collectionRoot()

		coll, err := shelf.Init(root,
			shelf.WithMustExist(true),
			shelf.WithReadOnly(true),
			shelf.WithLogger(slog.Default()),
		)
		if err != nil {
			fatal("Failed to open collection", err)
		}

		src, ok := coll.(lint.Source)
		if !ok {
			fatal("Cannot gather stats", fmt.Errorf("collection does not expose raw documents"))
		}

		cfg, err := config.Load(root)
		if err != nil {
			fatal("Failed to load config", err)
		}

		corpus, err := lint.BuildCorpus(context.Background(), src, cfg.Index)
		if err != nil {
			fatal("Failed to scan collection", err)
		}

		stats := gather(corpus)

		if statsJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(stats); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		fmt.Printf("Articles:     %d\n", stats.Articles)
		fmt.Printf("Words:        %d\n", stats.Words)
		fmt.Printf("Links:        %d\n", stats.Links)
		if stats.ParseErrs > 0 {
			fmt.Printf("Parse errors: %d\n", stats.ParseErrs)
		}
		printCounts("Fences", stats.Fences)
		printCounts("Diagrams", stats.Diagrams)
		printCounts("Domains", stats.Domains)
	},
}

func gather(c *lint.Corpus) collectionStats {
	stats := collectionStats{
		Fences:   make(map[string]int),
		Diagrams: make(map[string]int),
		Domains:  make(map[string]int),
	}

	for _, path := range c.Paths() {
		doc := c.Docs[path]
		stats.Articles++
		if doc.ParseErr != nil {
			stats.ParseErrs++
		}
		if doc.Structure == nil {
			continue
		}

		stats.Words += doc.Structure.Words
		stats.Links += len(doc.Structure.Links)

		for _, link := range doc.Structure.Links {
			if link.Kind != markdown.LinkExternal {
				continue
			}
			if u, err := url.Parse(link.Destination); err == nil && u.Host != "" {
				stats.Domains[u.Host]++
			}
		}

		for _, fence := range doc.Structure.Fences {
			lang := fence.Lang
			if lang == "" {
				lang = "(none)"
			}
			stats.Fences[lang]++

			if lang == "mermaid" {
				kind := mermaid.Type(fence.Body)
				if kind == "" {
					kind = "(unknown)"
				}
				stats.Diagrams[kind]++
			}
		}
	}
	return stats
}

func printCounts(label string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Printf("%s:\n", label)
	for _, k := range keys {
		fmt.Printf("  %-14s %d\n", k, counts[k])
	}
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Output in JSON format")
}
