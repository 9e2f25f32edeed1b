package markdown

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	apperrors "cheatsheets/internal/errors"
)

const (
	strTag  = "!!str"
	nullTag = "!!null"
)

var (
	hexColorPattern = regexp.MustCompile(`#[0-9a-fA-F]{6}`)

	// Only the YAML "---" fence is recognised; TOML and JSON preambles are not
	// part of the cheatsheet format.
	yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)
)

// rawFrontmatter keeps every field as an undecoded node so each one can be
// decoded with its own fallback policy.
type rawFrontmatter struct {
	Title      yaml.Node `yaml:"title"`
	Tags       yaml.Node `yaml:"tags"`
	Categories yaml.Node `yaml:"categories"`
	Intro      yaml.Node `yaml:"intro"`
	Label      yaml.Node `yaml:"label"`
	Background yaml.Node `yaml:"background"`
}

// DecodeFrontmatter extracts the YAML preamble of text and decodes it.
//
// A missing block or a block that is not a YAML mapping is a structural error.
// A missing, empty or non-string title fails with *FieldDecodeError, as do
// intro, label or background values of the wrong kind. Tags and categories
// never fail: any value that is not a list of strings decodes as empty.
func DecodeFrontmatter(text string) (Frontmatter, error) {
	var raw rawFrontmatter
	if _, err := frontmatter.MustParse(strings.NewReader(text), &raw, yamlFormat); err != nil {
		if errors.Is(err, frontmatter.ErrNotFound) {
			return Frontmatter{}, fmt.Errorf("%w: missing frontmatter", apperrors.ErrStructuralParse)
		}
		return Frontmatter{}, fmt.Errorf("%w: frontmatter: %w", apperrors.ErrStructuralParse, err)
	}

	title, err := decodeTitle(&raw.Title)
	if err != nil {
		return Frontmatter{}, err
	}
	intro, err := decodeOptionalString("intro", &raw.Intro)
	if err != nil {
		return Frontmatter{}, err
	}
	label, err := decodeOptionalString("label", &raw.Label)
	if err != nil {
		return Frontmatter{}, err
	}
	background, err := decodeBackground(&raw.Background)
	if err != nil {
		return Frontmatter{}, err
	}

	return Frontmatter{
		Title:      title,
		Tags:       decodeStringList(&raw.Tags),
		Categories: decodeStringList(&raw.Categories),
		Intro:      intro,
		Label:      label,
		Background: background,
	}, nil
}

// ExtractHexColor returns the first "#rrggbb" token found in value.
// It accepts utility-class wrappers such as "bg-[#436b97]".
func ExtractHexColor(value string) (string, bool) {
	color := hexColorPattern.FindString(value)
	return color, color != ""
}

func decodeTitle(node *yaml.Node) (string, error) {
	if isAbsent(node) {
		return "", &apperrors.FieldDecodeError{Field: "title", Line: node.Line, Message: "required field is missing"}
	}
	if node.Kind != yaml.ScalarNode || node.ShortTag() != strTag {
		return "", &apperrors.FieldDecodeError{Field: "title", Line: node.Line, Message: "expected string, got " + describe(node)}
	}
	if strings.TrimSpace(node.Value) == "" {
		return "", &apperrors.FieldDecodeError{Field: "title", Line: node.Line, Message: "must not be empty"}
	}
	return node.Value, nil
}

func decodeOptionalString(field string, node *yaml.Node) (*string, error) {
	if isAbsent(node) {
		return nil, nil
	}
	if node.Kind != yaml.ScalarNode || node.ShortTag() != strTag {
		return nil, &apperrors.FieldDecodeError{Field: field, Line: node.Line, Message: "expected string, got " + describe(node)}
	}
	value := node.Value
	return &value, nil
}

func decodeBackground(node *yaml.Node) (*string, error) {
	if isAbsent(node) {
		return nil, nil
	}
	if node.Kind != yaml.ScalarNode {
		return nil, &apperrors.FieldDecodeError{Field: "background", Line: node.Line, Message: "expected string, got " + describe(node)}
	}
	color, ok := ExtractHexColor(node.Value)
	if !ok {
		return nil, nil
	}
	return &color, nil
}

// decodeStringList falls back to an empty list for anything but a sequence of
// plain strings.
func decodeStringList(node *yaml.Node) []string {
	if node.Kind != yaml.SequenceNode {
		return []string{}
	}
	values := make([]string, 0, len(node.Content))
	for _, item := range node.Content {
		if item.Kind != yaml.ScalarNode || item.ShortTag() != strTag {
			return []string{}
		}
		values = append(values, item.Value)
	}
	return values
}

func isAbsent(node *yaml.Node) bool {
	return node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.ShortTag() == nullTag)
}

func describe(node *yaml.Node) string {
	switch node.Kind {
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.AliasNode:
		return "alias"
	default:
		return node.ShortTag()
	}
}
