package markdown

// Frontmatter is the typed metadata decoded from a cheatsheet's YAML preamble.
type Frontmatter struct {
	Title      string
	Tags       []string // never nil
	Categories []string // never nil
	Intro      *string
	Label      *string
	Background *string // "#" followed by six hex digits
}

// Section is a run of document content opened by a level-2 heading.
type Section struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}
