package frontmatter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_PlainPost_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Hello world\n\nFirst post.\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.False(t, had)
	require.Empty(t, fm)
	require.Equal(t, input, body)
}

func TestSplit_Header_SplitsHeaderAndBody(t *testing.T) {
	input := []byte("---\ndescription: intro\n---\n# Hello\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("description: intro\n"), fm)
	require.Equal(t, []byte("# Hello\n"), body)
}

func TestSplit_Unterminated_ReturnsError(t *testing.T) {
	_, _, had, err := Split([]byte("---\ndescription: intro\n# Hello\n"))
	require.Error(t, err)
	require.False(t, had)
	require.True(t, errors.Is(err, ErrMissingClosingDelimiter))
}

func TestSplit_CRLF(t *testing.T) {
	input := []byte("---\r\ndescription: intro\r\n---\r\n# Hello\r\n")

	fm, body, had, err := Split(input)
	require.NoError(t, err)
	require.True(t, had)
	require.Equal(t, []byte("description: intro\r\n"), fm)
	require.Equal(t, []byte("# Hello\r\n"), body)
}

func TestSplit_EmptyHeader(t *testing.T) {
	fm, body, had, err := Split([]byte("---\n---\n# Hello\n"))
	require.NoError(t, err)
	require.True(t, had)
	require.Empty(t, fm)
	require.Equal(t, []byte("# Hello\n"), body)
}

func TestParseYAML(t *testing.T) {
	fields, err := ParseYAML([]byte("description: intro\ntags:\n  - go\n"))
	require.NoError(t, err)
	require.Equal(t, "intro", fields["description"])
	require.Equal(t, []any{"go"}, fields["tags"])

	fields, err = ParseYAML(nil)
	require.NoError(t, err)
	require.Empty(t, fields)

	_, err = ParseYAML([]byte(": not yaml"))
	require.Error(t, err)
}

func TestStrip(t *testing.T) {
	tests := []struct {
		name        string
		input       string
		body        string
		description string
		hasHeader   bool
	}{
		{"no header", "# Hello\n", "# Hello\n", "", false},
		{"header", "---\ndescription: intro\n---\n# Hello\n", "# Hello\n", "intro", true},
		{"unterminated header is body", "---\ndescription: intro\n# Hello\n", "---\ndescription: intro\n# Hello\n", "", false},
		{"invalid yaml is body", "---\n: nope\n---\n# Hello\n", "---\n: nope\n---\n# Hello\n", "", false},
		{"thematic break later is body", "# Hello\n\n---\n\nmore\n", "# Hello\n\n---\n\nmore\n", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := Strip([]byte(tt.input))
			require.Equal(t, tt.body, string(doc.Body))
			require.Equal(t, tt.description, doc.String("description"))
			require.Equal(t, tt.hasHeader, len(doc.Frontmatter) > 0)
			require.NotNil(t, doc.Fields)
		})
	}
}
