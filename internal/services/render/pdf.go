package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/go-pdf/fpdf"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/ternarybob/apteka/internal/models"
)

// Core PDF fonts are cp1252; Polish letters outside it are transliterated
var polishFold = strings.NewReplacer(
	"ą", "a", "ć", "c", "ę", "e", "ł", "l", "ń", "n", "ś", "s", "ź", "z", "ż", "z",
	"Ą", "A", "Ć", "C", "Ę", "E", "Ł", "L", "Ń", "N", "Ś", "S", "Ź", "Z", "Ż", "Z",
)

// PDF renders the response as an A4 document
func PDF(resp *models.SearchResponse) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.SetTitle(Title(resp), true)
	pdf.SetCreator("apteka", true)
	pdf.AddPage()
	pdf.SetFont("Arial", "", 10)

	source := []byte(Markdown(resp))
	doc := markdown.Parser().Parse(text.NewReader(source))

	translate := pdf.UnicodeTranslatorFromDescriptor("")
	renderer := &pdfRenderer{
		pdf:    pdf,
		source: source,
		tr: func(s string) string {
			return translate(polishFold.Replace(s))
		},
	}

	if err := ast.Walk(doc, renderer.walk); err != nil {
		return nil, fmt.Errorf("failed to generate PDF: %w", err)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to generate PDF output: %w", err)
	}
	return buf.Bytes(), nil
}

type pdfRenderer struct {
	pdf    *fpdf.Fpdf
	source []byte
	tr     func(string) string
	bold   bool
	italic bool
}

func (r *pdfRenderer) updateFont() {
	style := ""
	if r.bold {
		style += "B"
	}
	if r.italic {
		style += "I"
	}
	r.pdf.SetFont("Arial", style, 10)
}

func (r *pdfRenderer) walk(n ast.Node, entering bool) (ast.WalkStatus, error) {
	switch node := n.(type) {
	case *ast.Heading:
		if entering {
			r.pdf.Ln(4)
			size := 11.0
			if node.Level == 1 {
				size = 15
			}
			r.pdf.SetFont("Arial", "B", size)
		} else {
			r.pdf.Ln(8)
			r.updateFont()
		}
	case *ast.Paragraph:
		if !entering {
			if _, inItem := node.Parent().(*ast.ListItem); !inItem {
				r.pdf.Ln(6)
			}
		}
	case *ast.TextBlock:
		// Tight list items hold their text in a TextBlock
	case *ast.Text:
		if entering {
			r.write(string(util.UnescapePunctuations(node.Segment.Value(r.source))))
			if node.SoftLineBreak() || node.HardLineBreak() {
				r.write(" ")
			}
		}
	case *ast.Emphasis:
		if node.Level == 2 {
			r.bold = entering
		} else {
			r.italic = entering
		}
		r.updateFont()
	case *ast.AutoLink:
		if entering {
			url := string(node.URL(r.source))
			r.pdf.SetTextColor(0, 0, 180)
			r.pdf.WriteLinkString(5, r.tr(url), url)
			r.pdf.SetTextColor(0, 0, 0)
		}
		return ast.WalkSkipChildren, nil
	case *ast.List:
		if !entering {
			r.pdf.Ln(3)
		}
	case *ast.ListItem:
		if entering {
			r.pdf.Ln(5)
			r.pdf.SetX(20)
			r.write("- ")
		}
	}
	return ast.WalkContinue, nil
}

func (r *pdfRenderer) write(s string) {
	r.pdf.Write(5, r.tr(s))
}
