// Package fetch retrieves source pages for the scraping pipelines.
//
// Two fetchers cover the two kinds of source:
//   - Client performs plain HTTP GETs for pages that carry their table in
//     the initial response.
//   - Browser drives a headless Chrome instance (via chromedp) for pages
//     that assemble their table with JavaScript after load.
//
// Design decision: The Browser runs one Chrome process for the whole run
// and loads each page in a fresh tab. Starting Chrome is the expensive
// part; tabs are cheap and keep page state from leaking between seasons.
package fetch
