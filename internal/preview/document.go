// Package preview wraps backend preview markup into a standalone page.
package preview

import (
	"bytes"
	"fmt"
	"html/template"
	"io"

	"github.com/insightdelivered/statement-desk/internal/fonts"
	"github.com/insightdelivered/statement-desk/internal/models"
)

var page = template.Must(template.New("preview").Parse(`<!DOCTYPE html>
<html lang="{{.Lang}}">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
{{- range .Stylesheets}}
<link rel="stylesheet" href="{{.}}">
{{- end}}
<style>body { font-family: {{.Family}}; margin: 2rem; }</style>
</head>
<body>
<div id="previewContent">
{{.Markup}}
</div>
</body>
</html>
`))

type pageData struct {
	Lang        string
	Title       string
	Stylesheets []string
	Family      template.CSS
	Markup      template.HTML
}

// Write renders markup as a full HTML page for lang. The page links every
// stylesheet already in head plus the one lang needs.
func Write(out io.Writer, markup string, lang models.Language, title string, head *fonts.Head) error {
	fonts.NewLoader(head, nil).LoadForLanguage(lang)

	err := page.Execute(out, pageData{
		Lang:        lang.String(),
		Title:       title,
		Stylesheets: head.Links(),
		Family:      template.CSS(fonts.FamilyFor(lang)),
		Markup:      template.HTML(markup),
	})
	if err != nil {
		return fmt.Errorf("failed to render preview page: %w", err)
	}
	return nil
}

// Document is Write into a string.
func Document(markup string, lang models.Language, title string, head *fonts.Head) (string, error) {
	var buf bytes.Buffer
	if err := Write(&buf, markup, lang, title, head); err != nil {
		return "", err
	}
	return buf.String(), nil
}
