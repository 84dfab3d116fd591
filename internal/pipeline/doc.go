// Package pipeline provides a framework for executing scrape steps in sequence.
//
// Each dataset is produced by a pipeline of steps sharing a ScrapeRun
// accumulator: fetch the page, locate the target table, extract records,
// export the CSV, and archive the run digest. Each stage is implemented as a
// Step that receives the current run and can modify it.
//
// Design decision: We use a pipeline pattern instead of direct function calls
// because:
// 1. It allows easy addition/removal of steps without modifying core logic
// 2. It provides consistent error handling and logging across steps
// 3. It supports cancellation via context for long-running scrapes
// 4. It lets the two datasets share orchestration while differing in steps
//
// The package also provides a Batch runner for executing the independent
// dataset pipelines concurrently with errgroup.
package pipeline
