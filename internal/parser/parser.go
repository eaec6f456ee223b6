// Package parser extracts loosely-typed rows from the three scraped page
// kinds (calorie diary, mass progress, waist progress). Output values are
// left as page text; the normalize package owns conversion and validation.
package parser

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// createDocument creates a goquery.Document from an HTML string
func createDocument(html string) (*goquery.Document, error) {
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}
