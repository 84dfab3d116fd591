package model

// Circuit is one record of the circuits dataset. All fields are free text
// taken from the source cells: lengths carry units ("5.891 km (3.661 mi)")
// and seasons are ranges ("1950–present"), so none of them coerce to a
// numeric type without losing information.
type Circuit struct {
	// Name is the circuit name.
	Name string

	// Location is the town or area the circuit is in.
	Location string

	// Country is the country the circuit is in.
	Country string

	// LastLengthUsed is the most recent configuration length, verbatim.
	LastLengthUsed string

	// Laps is the lap count text for the circuit's race distance.
	Laps string

	// Seasons is the list or range of seasons the circuit was used in.
	Seasons string
}

// CircuitColumns returns the normalized output column names for the circuits
// dataset, in output order.
func CircuitColumns() []string {
	return []string{"circuit", "location", "country", "last_length_used", "circuit_laps", "seasons"}
}

// CSVRow returns the record's values in CircuitColumns order.
func (c Circuit) CSVRow() []string {
	return []string{c.Name, c.Location, c.Country, c.LastLengthUsed, c.Laps, c.Seasons}
}
