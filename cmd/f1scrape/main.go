// Package main is the entry point of f1scrape command.
package main

// main is the entry point of f1scrape command.
func main() {
	Execute()
}
