package mermaid_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/shelf/pkg/mermaid"
)

func TestValidate_Valid(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"Flowchart", "flowchart TD\n  A[Start] --> B{Decide}\n  B -->|yes| C[Done]\n"},
		{"GraphLR", "graph LR\n  A --> B\n"},
		{"Sequence", "sequenceDiagram\n  Alice->>Bob: Hello\n  Bob-->>Alice: Hi\n"},
		{"State", "stateDiagram-v2\n  [*] --> Running\n  Running --> [*]\n"},
		{"Pie", "pie\n  \"success\" : 80\n  \"failure\" : 20\n"},
		{"LeadingComment", "%% overview of the retry loop\nflowchart LR\n  A --> B\n"},
		{"InitDirective", "%%{init: {'theme': 'dark'}}%%\ngraph TD\n  A --> B\n"},
		{"QuotedBrackets", "flowchart TD\n  A[\"uses (parens) inside\"] --> B\n"},
		{"IndentedHeader", "  flowchart TD\n  A --> B\n"},
		{"HeaderSemicolon", "graph TD;\n  A --> B;\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, mermaid.Validate(tc.src))
		})
	}
}

func TestValidate_UnknownType(t *testing.T) {
	err := mermaid.Validate("flowchartt TD\n  A --> B\n")
	require.Error(t, err)

	var unknown *mermaid.UnknownTypeError
	require.True(t, errors.As(err, &unknown))
	assert.Equal(t, "flowchartt", unknown.Header)
}

func TestValidate_SyntaxErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
	}{
		{"Empty", ""},
		{"OnlyComments", "%% nothing here\n"},
		{"MissingDirection", "flowchart\n  A --> B\n"},
		{"BadDirection", "flowchart XY\n  A --> B\n"},
		{"NoBody", "sequenceDiagram\n"},
		{"UnclosedBracket", "flowchart TD\n  A[Start --> B\n"},
		{"MismatchedBracket", "flowchart TD\n  A[Start) --> B\n"},
		{"StrayCloser", "flowchart TD\n  A] --> B\n"},
		{"UnterminatedString", "flowchart TD\n  A[\"oops] --> B\n"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := mermaid.Validate(tc.src)
			require.Error(t, err)

			var syntax *mermaid.SyntaxError
			assert.True(t, errors.As(err, &syntax), "expected SyntaxError, got %T", err)
		})
	}
}

func TestValidate_SyntaxErrorLine(t *testing.T) {
	err := mermaid.Validate("flowchart TD\n  A --> B\n  C[bad --> D\n")
	var syntax *mermaid.SyntaxError
	require.True(t, errors.As(err, &syntax))
	assert.Equal(t, 3, syntax.Line)
}

func TestType(t *testing.T) {
	assert.Equal(t, "flowchart", mermaid.Type("flowchart TD\n A-->B\n"))
	assert.Equal(t, "sequenceDiagram", mermaid.Type("%% intro\nsequenceDiagram\n  A->>B: x\n"))
	assert.Equal(t, "", mermaid.Type("not a diagram\n"))
	assert.Equal(t, "", mermaid.Type(""))
}
