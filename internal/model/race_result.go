package model

import "strconv"

// RaceResult is one record of the race results dataset: a single Grand Prix
// outcome in a given season.
//
// Design decision: The source table exposes the race date without a year
// ("5 Mar") and the lap count as free text, so both are validated when the
// record is constructed. Fields that fail coercion carry a missing-value
// marker instead of a zero that could be mistaken for data.
type RaceResult struct {
	// GrandPrix is the event name, e.g. "Bahrain".
	GrandPrix string

	// Date is the full race date, combined from the source's day-month text
	// and the season year. Missing when the source text did not parse.
	Date NullDate

	// Winner is the winning driver as printed, name plus abbreviation.
	Winner string

	// Car is the winning constructor/chassis text.
	Car string

	// Laps is the race distance in laps. Missing when the source text was
	// not numeric.
	Laps NullInt

	// Time is the winner's race time, verbatim.
	Time string

	// Year is the season the record was scraped for. It tags every record
	// of a page, and is not read from the table itself.
	Year int
}

// RaceResultColumns returns the normalized output column names for the race
// results dataset, in output order.
func RaceResultColumns() []string {
	return []string{"grand_prix", "date", "winner", "car", "laps", "time", "year"}
}

// CSVRow returns the record's values in RaceResultColumns order. Missing
// values render as empty cells.
func (r RaceResult) CSVRow() []string {
	return []string{
		r.GrandPrix,
		r.Date.String(),
		r.Winner,
		r.Car,
		r.Laps.String(),
		r.Time,
		strconv.Itoa(r.Year),
	}
}
