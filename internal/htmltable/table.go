package htmltable

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/f1data/f1scrape/internal/model"
	"github.com/f1data/f1scrape/internal/normalize"
)

// Parse converts a located table into a plain text grid. The first row
// supplies the headers: its <th> cells, falling back to <td> when the table
// has no header cells at all. Every following row becomes a data row with
// all of its cells, header or data, in document order.
//
// Rows are not padded or truncated to the header width; extractors decide
// how to treat ragged rows.
func Parse(table *goquery.Selection) *model.Table {
	parsed := &model.Table{Caption: Caption(table)}

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			parsed.Headers = cellTexts(row.Find("th"))
			if len(parsed.Headers) == 0 {
				parsed.Headers = cellTexts(row.Find("td"))
			}
			return
		}
		parsed.Rows = append(parsed.Rows, cellTexts(row.Find("th, td")))
	})

	return parsed
}

// Caption returns the table's caption text, or the empty string when the
// table has none.
func Caption(table *goquery.Selection) string {
	return cellText(table.Find("caption").First())
}

// DataCells returns the <td> cell text of every row after the header row.
// Row header (<th>) cells are deliberately left out: fixed positional
// extraction counts data cells only, so a row's label cell must not shift
// the column indices.
func DataCells(table *goquery.Selection) [][]string {
	var rows [][]string

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i == 0 {
			return
		}
		rows = append(rows, cellTexts(row.Find("td")))
	})

	return rows
}

// cellTexts extracts the cleaned text of each cell in the selection.
func cellTexts(cells *goquery.Selection) []string {
	var texts []string
	cells.Each(func(_ int, cell *goquery.Selection) {
		texts = append(texts, cellText(cell))
	})
	return texts
}

// cellText flattens a cell to its visible text. Text nodes are concatenated
// raw, the way a browser renders adjacent inline elements, and the value
// normalizer then collapses markup line breaks, indentation, and non-breaking
// spaces. Trimming per node instead would eat the single space that separates
// words across an inline element boundary.
func cellText(cell *goquery.Selection) string {
	var sb strings.Builder
	for _, node := range cell.Nodes {
		writeText(&sb, node)
	}
	return normalize.Value(sb.String())
}

// writeText appends the content of every text node under n.
func writeText(sb *strings.Builder, n *html.Node) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(sb, c)
	}
}
