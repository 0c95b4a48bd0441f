package core

// Metadata represents the parsed frontmatter key-value pairs of an article.
type Metadata map[string]any

// Article is the central entity of the domain.
// It represents a single Markdown document identified by an ID.
// The ID is the slash-separated path relative to the collection root,
// without the ".md" extension (e.g. "articles/checkpointing").
type Article struct {
	ID       string
	Content  string
	Metadata Metadata
}

// Title returns the frontmatter title, or "" if absent.
func (a Article) Title() string {
	if t, ok := a.Metadata["title"].(string); ok {
		return t
	}
	return ""
}

// Tags returns the frontmatter tags as strings.
// YAML lists unmarshal as []interface{}, so both shapes are handled.
func (a Article) Tags() []string {
	var tags []string
	switch t := a.Metadata["tags"].(type) {
	case []any:
		for _, item := range t {
			if s, ok := item.(string); ok {
				tags = append(tags, s)
			}
		}
	case []string:
		tags = append(tags, t...)
	}
	return tags
}

// HasTag reports whether the article carries the given tag.
func (a Article) HasTag(tag string) bool {
	for _, t := range a.Tags() {
		if t == tag {
			return true
		}
	}
	return false
}
