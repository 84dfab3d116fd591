// Package model defines the core data structures used throughout f1scrape.
//
// This package contains the following main types:
//   - Table: An ephemeral grid of header and data cells parsed from HTML
//   - Circuit: One record of the Formula 1 circuits dataset
//   - RaceResult: One record of the Formula 1 race results dataset
//   - ScrapeRun: The accumulator shared by pipeline steps during a run
//   - RunSummary: A curated, serializable digest of a completed run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (fetch, htmltable, extract, report, database)
// need to use these types, so centralizing them prevents import cycles.
//
// Records are created fresh on every run from the current page state. There is
// no update or delete; a run fully regenerates its output file.
package model
