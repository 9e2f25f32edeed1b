package markdown

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	apperrors "cheatsheets/internal/errors"
)

// sectionLevel is the heading level that opens a section.
const sectionLevel = 2

var (
	atxHeadingLine    = regexp.MustCompile(`^ {0,3}#{1,6}(?:[ \t]|$)`)
	setextUnderline   = regexp.MustCompile(`^ {0,3}(?:=+|-+)[ \t]*$`)
	emptySectionStart = regexp.MustCompile(`^ {0,3}##(?:[ \t]+#*)?[ \t]*$`)
)

// Splitter partitions a markdown document into sections on level-2 headings.
// It holds no per-call state and is safe for concurrent use.
type Splitter struct {
	md goldmark.Markdown
}

// NewSplitter creates a Splitter. A leading YAML frontmatter block is consumed
// by the parser and never becomes part of a section.
func NewSplitter() *Splitter {
	return &Splitter{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				meta.Meta,
			),
		),
	}
}

// openSection is the section being accumulated while walking the document.
type openSection struct {
	title string
	// body starts after the heading line(s).
	body int
}

// Split parses text and returns its sections in document order.
//
// Only top-level level-2 headings open sections. Other headings, and headings
// nested in lists or quotes, are ordinary content. Content before the first
// section is discarded, so a document without level-2 headings yields no
// sections.
func (s *Splitter) Split(input string) (sections []Section, err error) {
	defer func() {
		// goldmark reports no errors; a panic is its only failure mode.
		if r := recover(); r != nil {
			sections = nil
			err = fmt.Errorf("%w: markdown: %v", apperrors.ErrStructuralParse, r)
		}
	}()

	source := []byte(input)
	doc := s.md.Parser().Parse(text.NewReader(source))

	sections = []Section{}
	var current *openSection
	cursor := 0

	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		heading, ok := n.(*ast.Heading)
		if !ok || heading.Level != sectionLevel {
			// Non-boundary nodes are carried by the source range between
			// two boundaries; nothing to do until the next heading.
			continue
		}

		start, end := headingSpan(heading, source, cursor)
		if current != nil {
			sections = append(sections, Section{
				Title:   current.title,
				Content: normalizeContent(source[current.body:start]),
			})
		}
		current = &openSection{
			title: headingText(heading, source),
			body:  end,
		}
		cursor = end
	}

	if current != nil {
		sections = append(sections, Section{
			Title:   current.title,
			Content: normalizeContent(source[current.body:]),
		})
	}

	return sections, nil
}

// headingSpan returns the byte range of the heading's source lines, including
// a setext underline. search is where scanning may start for headings that
// carry no text segments.
func headingSpan(heading *ast.Heading, source []byte, search int) (start, end int) {
	lines := heading.Lines()
	if lines.Len() == 0 {
		return emptyHeadingSpan(heading, source, search)
	}

	first := lines.At(0)
	last := lines.At(lines.Len() - 1)

	start = lineStart(source, first.Start)
	stop := last.Stop
	if stop > last.Start {
		stop--
	}
	end = lineEnd(source, stop)

	headingLine := bytes.TrimRight(source[start:lineEnd(source, start)], "\r\n")
	if !atxHeadingLine.Match(headingLine) && end < len(source) {
		underline := source[end:lineEnd(source, end)]
		if setextUnderline.Match(bytes.TrimRight(underline, "\r\n")) {
			end = lineEnd(source, end)
		}
	}
	return start, end
}

// emptyHeadingSpan locates the line of a "##" heading without text. Only
// blank lines and link reference definitions can separate it from the next
// sibling that has source positions, so the search runs backwards from that
// sibling, skipping the empty headings in between. floor bounds the search.
func emptyHeadingSpan(heading *ast.Heading, source []byte, floor int) (start, end int) {
	upper, skip := len(source), 0
	for n := heading.NextSibling(); n != nil; n = n.NextSibling() {
		if pos, ok := firstOffset(n); ok {
			upper = lineStart(source, pos)
			break
		}
		if h, ok := n.(*ast.Heading); ok && h.Level == sectionLevel {
			skip++
		}
	}

	for pos := upper; pos > floor; {
		prev := lineStart(source, pos-1)
		if emptySectionStart.Match(bytes.TrimRight(source[prev:pos], "\r\n")) {
			if skip == 0 {
				return prev, pos
			}
			skip--
		}
		pos = prev
	}
	return floor, floor
}

// firstOffset returns the first source offset covered by n or its
// descendants.
func firstOffset(n ast.Node) (int, bool) {
	offset, found := 0, false
	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := node.(type) {
		case *ast.FencedCodeBlock:
			// The info string sits on the opening fence line.
			if v.Info != nil {
				offset, found = v.Info.Segment.Start, true
				return ast.WalkStop, nil
			}
		case *ast.Text:
			offset, found = v.Segment.Start, true
			return ast.WalkStop, nil
		}
		if node.Type() == ast.TypeBlock && node.Lines().Len() > 0 {
			offset, found = node.Lines().At(0).Start, true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	return offset, found
}

// headingText renders the plain text of a heading.
func headingText(n ast.Node, source []byte) string {
	var sb strings.Builder

	_ = ast.Walk(n, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch v := node.(type) {
		case *ast.Text:
			sb.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				sb.WriteByte(' ')
			}
		case *ast.String:
			sb.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(sb.String())
}

// normalizeContent trims blank lines around a section body and ends it with a
// single newline.
func normalizeContent(body []byte) string {
	lines := strings.Split(strings.ReplaceAll(string(body), "\r\n", "\n"), "\n")

	first, last := 0, len(lines)-1
	for first <= last && strings.TrimSpace(lines[first]) == "" {
		first++
	}
	for last >= first && strings.TrimSpace(lines[last]) == "" {
		last--
	}
	if first > last {
		return ""
	}

	lines = lines[first : last+1]
	lines[len(lines)-1] = strings.TrimRight(lines[len(lines)-1], " \t")
	return strings.Join(lines, "\n") + "\n"
}

func lineStart(source []byte, pos int) int {
	if pos > len(source) {
		pos = len(source)
	}
	return bytes.LastIndexByte(source[:pos], '\n') + 1
}

// lineEnd returns the offset just past the newline ending the line at pos.
func lineEnd(source []byte, pos int) int {
	if pos >= len(source) {
		return len(source)
	}
	i := bytes.IndexByte(source[pos:], '\n')
	if i < 0 {
		return len(source)
	}
	return pos + i + 1
}
