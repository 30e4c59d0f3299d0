package export

import (
	"bytes"
	_ "embed"
	"fmt"
	"html"
	"os"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

//go:embed default.css
var defaultCSS string

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(gmhtml.WithHardWraps()),
)

const documentTemplate = `<!DOCTYPE html>
<html lang="de">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>%s</title>
<style>
%s
</style>
</head>
<body>
<div class="document">
%s
</div>
</body>
</html>
`

// LoadCSS returns the stylesheet at path, or the built-in one when the file does not exist
func LoadCSS(path string) (string, error) {
	if path == "" {
		return defaultCSS, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return defaultCSS, nil
		}
		return "", fmt.Errorf("failed to read stylesheet: %w", err)
	}
	return string(data), nil
}

// MarkdownToHTML converts a markdown document into a standalone HTML page.
// Single newlines become line breaks so address blocks keep their layout.
func MarkdownToHTML(md, title, css string) (string, error) {
	var body bytes.Buffer
	if err := markdown.Convert([]byte(md), &body); err != nil {
		return "", fmt.Errorf("failed to convert markdown: %w", err)
	}

	page := fmt.Sprintf(documentTemplate, html.EscapeString(title), css, body.String())
	return postProcess(page, title)
}

// postProcess marks section headings and takes the page title from the first h1 when there is one
func postProcess(page, fallbackTitle string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("failed to parse generated HTML: %w", err)
	}

	doc.Find(".document h2").AddClass("section")

	title := strings.TrimSpace(doc.Find(".document h1").First().Text())
	if title == "" {
		title = fallbackTitle
	}
	doc.Find("title").SetText(title)

	out, err := doc.Html()
	if err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return out, nil
}

// TitleFromFilename turns "anschreiben.md" into "Anschreiben" and "zusatz_blatt.md" into "Zusatz Blatt"
func TitleFromFilename(name string) string {
	name = strings.TrimSuffix(name, ".md")
	words := strings.Fields(strings.ReplaceAll(name, "_", " "))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
