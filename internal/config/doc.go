// Package config provides configuration structures and utilities for f1scrape.
// It defines the source URLs, season range, browser behavior, and output
// settings for both scraping pipelines.
package config
