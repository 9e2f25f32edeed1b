package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitter_Split(t *testing.T) {
	splitter := NewSplitter()

	tests := []struct {
		name  string
		input string
		want  []Section
	}{
		{
			name:  "empty document",
			input: "",
			want:  []Section{},
		},
		{
			name:  "no level-2 headings",
			input: "# Title\n\nSome intro.\n\n### Deep\n\ntext\n",
			want:  []Section{},
		},
		{
			name:  "two sections",
			input: "## One\n\nalpha\n\n## Two\n\nbeta\n",
			want: []Section{
				{Title: "One", Content: "alpha\n"},
				{Title: "Two", Content: "beta\n"},
			},
		},
		{
			name:  "preamble discarded",
			input: "# Cheatsheet\n\nlead paragraph\n\n## First\n\nbody\n",
			want: []Section{
				{Title: "First", Content: "body\n"},
			},
		},
		{
			name:  "other heading levels are content",
			input: "## Basics\n\n### Hello world {.col-span-2}\n\ntext\n\n# Stray\n",
			want: []Section{
				{Title: "Basics", Content: "### Hello world {.col-span-2}\n\ntext\n\n# Stray\n"},
			},
		},
		{
			name:  "frontmatter is not a section",
			input: "---\ntitle: X\ntags: [a, b]\n---\n\nintro\n\n## A\n\nbody\n",
			want: []Section{
				{Title: "A", Content: "body\n"},
			},
		},
		{
			name:  "heading text flattened",
			input: "## Using `cargo` *quickly*\n\nx\n",
			want: []Section{
				{Title: "Using cargo quickly", Content: "x\n"},
			},
		},
		{
			name:  "setext heading",
			input: "Setup\n-----\n\ncontent\n\n## Next\n",
			want: []Section{
				{Title: "Setup", Content: "content\n"},
				{Title: "Next", Content: ""},
			},
		},
		{
			name:  "thematic break after atx heading kept",
			input: "## A\n---\n\ntext\n",
			want: []Section{
				{Title: "A", Content: "---\n\ntext\n"},
			},
		},
		{
			name:  "heading inside fenced code is content",
			input: "## Shell\n\n```bash\n## not a heading\necho hi\n```\n\n## After\n\nok\n",
			want: []Section{
				{Title: "Shell", Content: "```bash\n## not a heading\necho hi\n```\n"},
				{Title: "After", Content: "ok\n"},
			},
		},
		{
			name:  "nested heading in quote is content",
			input: "## Outer\n\n> ## quoted\n> text\n",
			want: []Section{
				{Title: "Outer", Content: "> ## quoted\n> text\n"},
			},
		},
		{
			name:  "crlf line endings",
			input: "## One\r\n\r\nalpha\r\nbeta\r\n\r\n## Two\r\n\r\ngamma\r\n",
			want: []Section{
				{Title: "One", Content: "alpha\nbeta\n"},
				{Title: "Two", Content: "gamma\n"},
			},
		},
		{
			name:  "empty heading after fenced block containing bare hashes",
			input: "## Shell\n\n```md\n##\n```\n\nafter fence\n\n##\n\nempty section body\n",
			want: []Section{
				{Title: "Shell", Content: "```md\n##\n```\n\nafter fence\n"},
				{Title: "", Content: "empty section body\n"},
			},
		},
		{
			name:  "empty heading after html block containing bare hashes",
			input: "## Markup\n\n<div>\n##\n</div>\n\n##\n\nbody\n",
			want: []Section{
				{Title: "Markup", Content: "<div>\n##\n</div>\n"},
				{Title: "", Content: "body\n"},
			},
		},
		{
			name:  "consecutive empty headings",
			input: "## A\n\nalpha\n\n##\n\n##\n\nomega\n",
			want: []Section{
				{Title: "A", Content: "alpha\n"},
				{Title: "", Content: ""},
				{Title: "", Content: "omega\n"},
			},
		},
		{
			name:  "trailing empty heading",
			input: "## A\n\n```\n##\n```\n\n##\n",
			want: []Section{
				{Title: "A", Content: "```\n##\n```\n"},
				{Title: "", Content: ""},
			},
		},
		{
			name:  "closing hashes",
			input: "## Closed ##\n\nbody\n",
			want: []Section{
				{Title: "Closed", Content: "body\n"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := splitter.Split(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSplitter_Split_NoLeakage(t *testing.T) {
	input := strings.Join([]string{
		"## Strings",
		"",
		"| Op | Example |",
		"|----|---------|",
		"| len | `len(s)` |",
		"",
		"## Slices",
		"",
		"- append",
		"- copy",
		"",
	}, "\n")

	sections, err := NewSplitter().Split(input)
	require.NoError(t, err)
	require.Len(t, sections, 2)

	assert.Equal(t, "Strings", sections[0].Title)
	assert.Contains(t, sections[0].Content, "len(s)")
	assert.NotContains(t, sections[0].Content, "append")

	assert.Equal(t, "Slices", sections[1].Title)
	assert.Equal(t, "- append\n- copy\n", sections[1].Content)
	assert.NotContains(t, sections[1].Content, "Example")
}

func TestNormalizeContent(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "empty", in: "", want: ""},
		{name: "blank lines only", in: "\n \n\t\n", want: ""},
		{name: "indented code kept", in: "\n\n    code\n\n", want: "    code\n"},
		{name: "trailing spaces trimmed", in: "text   \n", want: "text\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeContent([]byte(tt.in)))
		})
	}
}
