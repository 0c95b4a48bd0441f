// Package shelf is the Composition Root for the Shelf library.
//
// It connects the core business logic (Domain Layer) with the infrastructure
// adapters (Persistence Layer) using the Hexagonal Architecture pattern.
//
// Philosophy:
//
// Shelf treats a directory of Markdown articles as a curated collection:
// a structured corpus with an index, frontmatter metadata, and a set of
// consistency rules. It abstracts the underlying storage mechanism; the
// default implementation works on the local file system, but the core is
// agnostic and new adapters can be plugged in via core.Collection.
//
// Features:
//
//   - **Hexagonal Architecture**: Core domain is isolated from persistence details.
//   - **Metadata First**: Native support for frontmatter parsing and indexing.
//   - **Lint Rules**: Dead-link detection, fence language checks, Mermaid
//     validation, frontmatter and heading conventions, TOC synchronization.
//   - **Managed TOC**: A marker-delimited region of the index document is
//     regenerated from the articles on disk.
//   - **Live Watching**: File system events are debounced and surfaced as
//     domain events for re-linting on change.
//
// Usage:
//
//	// Initialize service with functional options
//	svc, err := shelf.New("./docs",
//		shelf.WithMustExist(true),
//		shelf.WithLogger(logger),
//	)
//
//	// Lint the whole collection
//	report, err := shelf.Lint(ctx, "./docs")
package shelf
