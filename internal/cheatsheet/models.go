package cheatsheet

import (
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"cheatsheets/internal/markdown"
)

var backgroundPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// Section is a titled run of cheatsheet content.
type Section = markdown.Section

// Cheatsheet is the record produced for one source document.
//
// swagger:model Cheatsheet
type Cheatsheet struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Tags       []string  `json:"tags"`
	Categories []string  `json:"categories"`
	Intro      *string   `json:"intro,omitempty"`
	Label      *string   `json:"label,omitempty"`
	Icon       *string   `json:"icon,omitempty"`
	Background *string   `json:"background,omitempty"`
	Sections   []Section `json:"sections"`
}

// Meta is the list-view projection of a Cheatsheet: every field but the
// sections.
//
// swagger:model Meta
type Meta struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Tags       []string `json:"tags"`
	Categories []string `json:"categories"`
	Intro      *string  `json:"intro,omitempty"`
	Label      *string  `json:"label,omitempty"`
	Icon       *string  `json:"icon,omitempty"`
	Background *string  `json:"background,omitempty"`
}

// Meta returns the metadata projection of c.
func (c Cheatsheet) Meta() Meta {
	return Meta{
		ID:         c.ID,
		Title:      c.Title,
		Tags:       c.Tags,
		Categories: c.Categories,
		Intro:      c.Intro,
		Label:      c.Label,
		Icon:       c.Icon,
		Background: c.Background,
	}
}

// Validate checks the record invariants before it is persisted.
func (c Cheatsheet) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.ID, validation.Required),
		validation.Field(&c.Title, validation.Required),
		validation.Field(&c.Tags, validation.NotNil),
		validation.Field(&c.Categories, validation.NotNil),
		validation.Field(&c.Background, validation.NilOrNotEmpty, validation.Match(backgroundPattern)),
		validation.Field(&c.Sections, validation.NotNil),
	)
}
