package extract

import (
	"github.com/f1data/f1scrape/internal/model"
	"github.com/f1data/f1scrape/internal/normalize"
)

// Normalized header names the results extractor looks for.
const (
	fieldGrandPrix = "grand_prix"
	fieldDate      = "date"
	fieldWinner    = "winner"
	fieldCar       = "car"
	fieldLaps      = "laps"
	fieldTime      = "time"
)

// columnIndex maps normalized header names to their column position.
type columnIndex map[string]int

// indexHeaders builds the column index for a header row. Header names are
// normalized before indexing, so "Grand Prix" and "grand_prix" both land on
// the same key.
func indexHeaders(headers []string) columnIndex {
	ix := make(columnIndex, len(headers))
	for i, h := range headers {
		ix[normalize.FieldName(h)] = i
	}
	return ix
}

// value returns the named column's cell from the row, or the empty string
// when the column is absent or the row is too short. Absent text flows into
// the coercions and comes out as a missing-value marker.
func (ix columnIndex) value(cells []string, name string) string {
	i, ok := ix[name]
	if !ok || i >= len(cells) {
		return ""
	}
	return cells[i]
}

// Results builds race result records from a parsed table by normalized
// header name and tags every record with the season year. The year is
// out-of-band data: it names the page the table came from and never appears
// in the table itself.
//
// Rows with no cells at all (spacers and decoration) are dropped and
// counted. Short rows survive with missing markers in the columns they
// lack.
func Results(table *model.Table, year int) (results []model.RaceResult, dropped int) {
	ix := indexHeaders(table.Headers)

	for _, cells := range table.Rows {
		if len(cells) == 0 {
			dropped++
			continue
		}

		results = append(results, model.RaceResult{
			GrandPrix: ix.value(cells, fieldGrandPrix),
			Date:      normalize.DayMonthYear(ix.value(cells, fieldDate), year),
			Winner:    ix.value(cells, fieldWinner),
			Car:       ix.value(cells, fieldCar),
			Laps:      normalize.Int(ix.value(cells, fieldLaps)),
			Time:      ix.value(cells, fieldTime),
			Year:      year,
		})
	}
	return results, dropped
}
