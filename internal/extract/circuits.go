package extract

import "github.com/f1data/f1scrape/internal/model"

// minCircuitCells is the number of data cells a row needs before fixed
// positional extraction will touch it. The circuits table interleaves
// spanning and decorative rows with real entries; requiring the full cell
// count filters those out.
const minCircuitCells = 10

// Zero-based data cell indices of the circuits table layout.
const (
	colCircuit    = 0
	colLocation   = 4
	colCountry    = 5
	colLastLength = 6
	colLaps       = 7
	colSeasons    = 9
)

// Circuits builds circuit records from data rows using fixed positional
// extraction. Rows with fewer than minCircuitCells cells are dropped and
// counted; dropped rows are a normal condition of the source table, not an
// error.
func Circuits(rows [][]string) (circuits []model.Circuit, dropped int) {
	for _, cells := range rows {
		if len(cells) < minCircuitCells {
			dropped++
			continue
		}

		circuits = append(circuits, model.Circuit{
			Name:           cells[colCircuit],
			Location:       cells[colLocation],
			Country:        cells[colCountry],
			LastLengthUsed: cells[colLastLength],
			Laps:           cells[colLaps],
			Seasons:        cells[colSeasons],
		})
	}
	return circuits, dropped
}
