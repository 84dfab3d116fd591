// Package htmltable locates and parses HTML tables.
//
// This is the heart of both scraping pipelines: given a parsed document and a
// selection criterion (a structural class marker, optionally with a required
// header label), Find picks the first matching table in document order, and
// the parse functions turn it into plain text grids for record extraction.
//
// Design decision: We use goquery for CSS-selector access to the document and
// walk the underlying x/net/html nodes for cell text. goquery keeps table
// discovery declarative ("table.wikitable"), while the node walk lets us trim
// each text node individually so cell text comes out clean regardless of how
// the markup wraps it.
package htmltable
