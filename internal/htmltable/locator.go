package htmltable

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Criterion describes how to pick a table out of a document.
type Criterion struct {
	// Class is the CSS class candidate tables carry, without the leading
	// dot. Required.
	Class string

	// HeaderLabel is the text one of the table's header cells must equal
	// for the table to match. The comparison is exact and case-sensitive
	// after trimming; there is no fuzzy matching. When empty, the first
	// table with the class wins.
	HeaderLabel string
}

// String returns a compact description of the criterion for logging.
func (c Criterion) String() string {
	if c.HeaderLabel == "" {
		return fmt.Sprintf("table.%s", c.Class)
	}
	return fmt.Sprintf("table.%s[header %q]", c.Class, c.HeaderLabel)
}

// Selector returns the CSS selector matching candidate tables.
func (c Criterion) Selector() string {
	return "table." + c.Class
}

// NewDocument parses an HTML string into a goquery document.
func NewDocument(htmlText string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(htmlText))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// Find returns the first table in document order that satisfies the
// criterion, or ErrTableNotFound when none does.
//
// When a header label is required, every <th> in the candidate table counts
// toward its header set, not just the first row: source tables use row
// headers too, and the label may legitimately sit in either place.
func Find(doc *goquery.Document, criterion Criterion) (*goquery.Selection, error) {
	candidates := doc.Find(criterion.Selector())

	if criterion.HeaderLabel == "" {
		if candidates.Length() == 0 {
			return nil, fmt.Errorf("%s: %w", criterion, ErrTableNotFound)
		}
		return candidates.First(), nil
	}

	var match *goquery.Selection
	candidates.EachWithBreak(func(_ int, table *goquery.Selection) bool {
		found := false
		table.Find("th").EachWithBreak(func(_ int, th *goquery.Selection) bool {
			if cellText(th) == criterion.HeaderLabel {
				found = true
				return false
			}
			return true
		})
		if found {
			match = table
			return false
		}
		return true
	})

	if match == nil {
		return nil, fmt.Errorf("%s: %w", criterion, ErrTableNotFound)
	}
	return match, nil
}
