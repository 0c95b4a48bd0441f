package markdown

import (
	"bytes"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

// SplitFrontmatter separates the YAML frontmatter block from the Markdown body.
//
// Frontmatter must start at the first byte of the file with a "---" line and
// end with a matching "---" line. If no frontmatter is present, the whole
// input is returned as body.
//
// bodyLine is the 1-based line number in the original file where the body
// begins, so that downstream scanners can report accurate positions.
func SplitFrontmatter(data []byte) (meta map[string]any, body []byte, bodyLine int, err error) {
	if !bytes.HasPrefix(data, []byte("---\n")) && !bytes.HasPrefix(data, []byte("---\r\n")) {
		return nil, data, 1, nil
	}

	// Keep separators so the body can be reassembled byte-exact.
	lines := bytes.SplitAfter(data, []byte("\n"))

	var yamlBuf bytes.Buffer
	closing := -1
	for i := 1; i < len(lines); i++ {
		if t := bytes.TrimRight(lines[i], "\r\n"); bytes.Equal(t, []byte("---")) {
			closing = i
			break
		}
		yamlBuf.Write(lines[i])
	}
	if closing == -1 {
		return nil, nil, 0, errors.New("frontmatter started but no closing delimiter found")
	}

	meta = make(map[string]any)
	if err := yaml.Unmarshal(yamlBuf.Bytes(), &meta); err != nil {
		return nil, nil, 0, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	body = bytes.Join(lines[closing+1:], nil)
	return meta, body, closing + 2, nil
}

// RenderFrontmatter serializes metadata and body back into a Markdown file.
// Empty metadata produces a bare body without a frontmatter block.
func RenderFrontmatter(meta map[string]any, body string) ([]byte, error) {
	var buf bytes.Buffer
	if len(meta) > 0 {
		buf.WriteString("---\n")
		encoder := yaml.NewEncoder(&buf)
		encoder.SetIndent(2)
		if err := encoder.Encode(meta); err != nil {
			return nil, err
		}
		encoder.Close()
		buf.WriteString("---\n")
	}
	buf.WriteString(body)
	return buf.Bytes(), nil
}
