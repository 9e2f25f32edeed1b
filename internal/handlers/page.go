package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"net/http"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"cheatsheets/internal/cheatsheet"
	"cheatsheets/internal/contextutil"
	"cheatsheets/internal/service"
)

// defaultAccent colors the page header when a cheatsheet has no background.
const defaultAccent = "#6366f1"

// PageHandler serves stored cheatsheets as rendered HTML pages.
type PageHandler struct {
	cheatsheets service.CheatsheetService
	parser      goldmark.Markdown
	template    *template.Template
}

// pageData holds template data for rendered cheatsheet pages.
type pageData struct {
	Title    string
	Intro    string
	Icon     string
	Accent   template.CSS
	Tags     []string
	Sections []renderedSection
}

type renderedSection struct {
	Title   string
	Content template.HTML
}

// NewPageHandler creates a new handler for serving cheatsheet pages.
func NewPageHandler(cheatsheets service.CheatsheetService) *PageHandler {
	tmpl := template.Must(template.New("cheatsheet").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}} &middot; cheatsheet</title>
  <style>
    :root {
      color-scheme: dark;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.7;
      background: #050b18;
      color: #e4ecff;
    }
    header {
      margin-bottom: 2rem;
      border-top: 6px solid {{.Accent}};
      border-bottom: 1px solid rgba(148, 163, 184, 0.2);
      padding-bottom: 1.5rem;
    }
    h1 {
      margin-top: 0;
      color: #fff;
      font-size: 2rem;
    }
    article {
      background: rgba(12, 19, 35, 0.85);
      border: 1px solid rgba(99, 102, 241, 0.2);
      border-radius: 16px;
      padding: 2rem;
      box-shadow: 0 15px 35px rgba(2, 6, 23, 0.8);
    }
    article h2, article h3, article h4 {
      color: #c7d2fe;
      margin-top: 1.5rem;
    }
    article p {
      color: #cbd5f5;
    }
    pre {
      background: #0f172a;
      padding: 1rem;
      overflow-x: auto;
      border-radius: 10px;
      border: 1px solid rgba(99, 102, 241, 0.2);
    }
    code {
      font-family: 'SFMono-Regular', Consolas, 'Liberation Mono', Menlo, monospace;
      background: rgba(99, 102, 241, 0.18);
      padding: 2px 5px;
      border-radius: 6px;
      color: #cbd5ff;
    }
    pre code {
      background: transparent;
      padding: 0;
    }
    blockquote {
      border-left: 4px solid rgba(96, 165, 250, 0.6);
      padding-left: 1rem;
      margin-left: 0;
      color: #93c5fd;
      background: rgba(59, 130, 246, 0.08);
      border-radius: 6px;
    }
    a {
      color: #60a5fa;
      text-decoration: none;
    }
    a:hover {
      text-decoration: underline;
    }
    .meta {
      color: #94a3b8;
      font-size: 0.95rem;
      margin-top: 0.5rem;
    }
    .icon {
      width: 48px;
      height: 48px;
      float: right;
    }
    .tag {
      display: inline-block;
      margin-right: 0.4rem;
      padding: 1px 8px;
      border-radius: 999px;
      background: rgba(99, 102, 241, 0.18);
    }
    section + section {
      margin-top: 1.5rem;
    }
    @media (max-width: 640px) {
      body {
        padding: 1rem;
      }
      article {
        padding: 1.25rem;
      }
    }
  </style>
</head>
<body>
  <header>
    {{if .Icon}}<img class="icon" src="{{.Icon}}" alt="">{{end}}
    <h1>{{.Title}}</h1>
    {{if .Intro}}<p class="meta">{{.Intro}}</p>{{end}}
    {{if .Tags}}<p class="meta">{{range .Tags}}<span class="tag">{{.}}</span>{{end}}</p>{{end}}
  </header>
  <article>
  {{range .Sections}}<section>
    <h2>{{.Title}}</h2>
    {{.Content}}
  </section>
  {{end}}</article>
</body>
</html>`))

	return &PageHandler{
		cheatsheets: cheatsheets,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Table,
				extension.TaskList,
				extension.Strikethrough,
				extension.Linkify,
				extension.Typographer,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithUnsafe(),
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
		template: tmpl,
	}
}

// ServeHTTP renders the requested cheatsheet as HTML.
func (h *PageHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	id, ok := idParam(w, r)
	if !ok {
		return
	}

	sheet, err := h.cheatsheets.Get(ctx, id)
	if err != nil {
		handleServiceError(ctx, w, err, id, "Failed to get cheatsheet")
		return
	}

	data, err := h.pageData(sheet)
	if err != nil {
		logger.ErrorContext(ctx, "failed to render markdown", "id", id, "error", err)
		http.Error(w, "failed to render cheatsheet", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := h.template.Execute(&buf, data); err != nil {
		logger.ErrorContext(ctx, "failed to execute cheatsheet template", "id", id, "error", err)
		http.Error(w, "failed to render cheatsheet", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

func (h *PageHandler) pageData(sheet *cheatsheet.Cheatsheet) (pageData, error) {
	data := pageData{
		Title:    sheet.Title,
		Accent:   defaultAccent,
		Tags:     sheet.Tags,
		Sections: make([]renderedSection, 0, len(sheet.Sections)),
	}
	if sheet.Intro != nil {
		data.Intro = *sheet.Intro
	}
	if sheet.Icon != nil {
		data.Icon = *sheet.Icon
	}
	// Background is validated as #rrggbb before it is stored.
	if sheet.Background != nil {
		data.Accent = template.CSS(*sheet.Background)
	}

	for _, section := range sheet.Sections {
		content, err := h.renderMarkdown([]byte(section.Content))
		if err != nil {
			return pageData{}, fmt.Errorf("section %q: %w", section.Title, err)
		}
		data.Sections = append(data.Sections, renderedSection{
			Title:   section.Title,
			Content: template.HTML(content),
		})
	}
	return data, nil
}

func (h *PageHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
