package model

// Dataset identifies which scraping pipeline a run belongs to.
type Dataset string

// Dataset constants.
const (
	// DatasetCircuits is the Formula 1 circuits dataset, scraped from a
	// single static page.
	DatasetCircuits Dataset = "circuits"
	// DatasetResults is the Formula 1 race results dataset, scraped from
	// one browser-rendered page per season.
	DatasetResults Dataset = "results"
)

// String returns the dataset name.
func (d Dataset) String() string {
	return string(d)
}

// IsValid returns true if this is a known dataset.
func (d Dataset) IsValid() bool {
	switch d {
	case DatasetCircuits, DatasetResults:
		return true
	default:
		return false
	}
}
