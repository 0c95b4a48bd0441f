// Package mermaid validates the structure of Mermaid diagram blocks well
// enough to catch authoring mistakes before a renderer does: a recognized
// diagram header, a non-empty body, and balanced brackets.
//
// It is not a Mermaid grammar. Renderer-specific details (node shapes,
// styling, click handlers) pass through unchecked.
package mermaid

import (
	"fmt"
	"strings"
)

// diagramTypes maps header keywords to whether they require a direction token
// (e.g. "flowchart TD").
var diagramTypes = map[string]bool{
	"flowchart":       true,
	"graph":           true,
	"sequenceDiagram": false,
	"classDiagram":    false,
	"stateDiagram":    false,
	"stateDiagram-v2": false,
	"erDiagram":       false,
	"journey":         false,
	"gantt":           false,
	"pie":             false,
	"gitGraph":        false,
	"mindmap":         false,
	"timeline":        false,
	"quadrantChart":   false,
}

var directions = map[string]bool{
	"TB": true, "TD": true, "BT": true, "RL": true, "LR": true,
}

// UnknownTypeError indicates the first meaningful line is not a recognized
// diagram header.
type UnknownTypeError struct {
	Header string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown diagram type: %q", e.Header)
}

// SyntaxError indicates a structural problem inside a recognized diagram.
type SyntaxError struct {
	Line    int // 1-based within the diagram source
	Message string
}

func (e *SyntaxError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %s", e.Line, e.Message)
	}
	return e.Message
}

// Type returns the diagram type keyword of the source, or "" if none is
// recognized.
func Type(src string) string {
	header, _ := headerLine(src)
	if header == "" {
		return ""
	}
	keyword := strings.Fields(header)[0]
	if _, ok := diagramTypes[keyword]; ok {
		return keyword
	}
	return ""
}

// Validate checks the diagram source. It returns an *UnknownTypeError when
// the header keyword is not recognized, a *SyntaxError for structural
// problems, and nil when the diagram looks renderable.
func Validate(src string) error {
	header, headerIdx := headerLine(src)
	if header == "" {
		return &SyntaxError{Message: "empty diagram"}
	}

	fields := strings.Fields(header)
	keyword := fields[0]
	needsDirection, ok := diagramTypes[keyword]
	if !ok {
		return &UnknownTypeError{Header: keyword}
	}

	if needsDirection {
		// Mermaid tolerates a statement terminator on the header ("graph TD;").
		dir := ""
		if len(fields) > 1 {
			dir = strings.TrimSuffix(fields[1], ";")
		}
		if !directions[dir] {
			return &SyntaxError{
				Line:    headerIdx + 1,
				Message: fmt.Sprintf("%s requires a direction (TB, TD, BT, RL, LR)", keyword),
			}
		}
	}

	lines := strings.Split(src, "\n")
	body := 0
	for i := headerIdx + 1; i < len(lines); i++ {
		line := strings.TrimSpace(lines[i])
		if line == "" || isComment(line) {
			continue
		}
		body++
		if err := checkBrackets(line, i+1); err != nil {
			return err
		}
	}

	if body == 0 {
		return &SyntaxError{Line: headerIdx + 1, Message: "diagram has no body"}
	}
	return nil
}

// headerLine returns the first line that is neither blank, a %% comment,
// nor a %%{...}%% directive, along with its 0-based index.
func headerLine(src string) (string, int) {
	for i, line := range strings.Split(src, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || isComment(trimmed) {
			continue
		}
		return trimmed, i
	}
	return "", -1
}

// isComment reports whether the line is a %% comment or an init directive.
// Directives look like comments but are consumed by the renderer.
func isComment(line string) bool {
	return strings.HasPrefix(line, "%%")
}

// checkBrackets verifies that (), [] and {} nest properly on a single line,
// ignoring bracket characters inside quoted strings ("..."). Mermaid node
// definitions never span lines, so per-line checking is sufficient.
func checkBrackets(line string, lineNo int) error {
	var stack []rune
	inString := false

	for _, r := range line {
		if r == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}

		switch r {
		case '(', '[', '{':
			stack = append(stack, r)
		case ')', ']', '}':
			if len(stack) == 0 {
				return &SyntaxError{Line: lineNo, Message: fmt.Sprintf("unmatched %q", r)}
			}
			open := stack[len(stack)-1]
			if (r == ')' && open != '(') || (r == ']' && open != '[') || (r == '}' && open != '{') {
				return &SyntaxError{Line: lineNo, Message: fmt.Sprintf("mismatched %q", r)}
			}
			stack = stack[:len(stack)-1]
		}
	}

	if inString {
		return &SyntaxError{Line: lineNo, Message: "unterminated string"}
	}
	if len(stack) > 0 {
		return &SyntaxError{Line: lineNo, Message: fmt.Sprintf("unclosed %q", stack[len(stack)-1])}
	}
	return nil
}
