// Package render turns search responses into markdown, HTML and PDF documents.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/ternarybob/apteka/internal/models"
)

const titlePrefix = "Apteki w pobliżu"

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	`*`, `\*`,
	`_`, `\_`,
	`[`, `\[`,
	`]`, `\]`,
	`<`, `\<`,
	`>`, `\>`,
	`#`, `\#`,
	`|`, `\|`,
)

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
)

// Title returns the document title for a response
func Title(resp *models.SearchResponse) string {
	if resp == nil || resp.Address == "" {
		return titlePrefix
	}
	return fmt.Sprintf("%s: %s", titlePrefix, resp.Address)
}

// Markdown renders the response as a markdown document.
// Each place becomes a "## Apteka <name>" section with its details as a list;
// a response without places renders its message instead.
func Markdown(resp *models.SearchResponse) string {
	var sb strings.Builder

	sb.WriteString("# ")
	sb.WriteString(escape(Title(resp)))
	sb.WriteString("\n\n")

	if resp == nil {
		return sb.String()
	}

	if !resp.OK() {
		sb.WriteString(escape(resp.Message))
		sb.WriteString("\n")
		return sb.String()
	}

	for _, place := range resp.Places {
		fmt.Fprintf(&sb, "## Apteka %s\n\n", escape(place.Name))
		fmt.Fprintf(&sb, "- **Godziny otwarcia:** %s\n", escape(place.OpeningHours))
		fmt.Fprintf(&sb, "- **Telefon:** %s\n", escape(place.Phone))
		fmt.Fprintf(&sb, "- **Strona:** %s\n", website(place.Website))
		fmt.Fprintf(&sb, "- **Odległość:** %s\n\n", distance(place.DistanceMeters))
	}

	return sb.String()
}

// HTML renders the response markdown to an HTML fragment.
// Raw HTML in place data is never passed through.
func HTML(resp *models.SearchResponse) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(Markdown(resp)), &buf); err != nil {
		return "", fmt.Errorf("failed to render HTML: %w", err)
	}
	return buf.String(), nil
}

func escape(s string) string {
	return markdownEscaper.Replace(s)
}

// website renders http(s) addresses as autolinks and anything else as text
func website(s string) string {
	lower := strings.ToLower(s)
	if (strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")) &&
		!strings.ContainsAny(s, " <>\t\n") {
		return "<" + s + ">"
	}
	return escape(s)
}

func distance(meters float64) string {
	if meters >= 1000 {
		return strings.Replace(fmt.Sprintf("%.1f km", meters/1000), ".", ",", 1)
	}
	return fmt.Sprintf("%.0f m", meters)
}
