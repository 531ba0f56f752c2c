// Package extract pulls a product title and marketplace identifier out of a
// product page.
package extract

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html/charset"

	apperrors "github.com/rajasatyajit/EcoTide/internal/errors"
	"github.com/rajasatyajit/EcoTide/internal/models"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// titleSelectors in priority order; the value is the attribute to read, or
// empty for element text
var titleSelectors = []struct {
	selector string
	attr     string
}{
	{"#productTitle", ""},
	{`meta[property="og:title"]`, "content"},
	{"h1", ""},
	{"title", ""},
}

// FromHTML extracts a product from an HTML page. contentType may be empty.
// A page without any usable title yields ErrNotFound.
func FromHTML(r io.Reader, contentType string) (models.Product, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return models.Product{}, fmt.Errorf("read page: %w", err)
	}

	enc, _, _ := charset.DetermineEncoding(data, contentType)
	utf8data, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		if !utf8.Valid(data) {
			return models.Product{}, fmt.Errorf("decode page: %w", err)
		}
		utf8data = data
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(utf8data))
	if err != nil {
		return models.Product{}, fmt.Errorf("parse page: %w", err)
	}
	doc.Find("script,noscript,style").Remove()

	var p models.Product
	for _, ts := range titleSelectors {
		sel := doc.Find(ts.selector).First()
		var text string
		if ts.attr != "" {
			text = sel.AttrOr(ts.attr, "")
		} else {
			text = sel.Text()
		}
		if text = collapse(text); text != "" {
			p.Title = text
			break
		}
	}
	if p.Title == "" {
		return models.Product{}, fmt.Errorf("product title: %w", apperrors.ErrNotFound)
	}

	p.Identifier = collapse(doc.Find("input#ASIN").First().AttrOr("value", ""))
	if p.Identifier == "" {
		p.Identifier = collapse(doc.Find("[data-asin]").First().AttrOr("data-asin", ""))
	}
	return p, nil
}

func collapse(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
