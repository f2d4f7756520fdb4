// Package main hosts the titlesort CLI entrypoint and command graph.
//
// The Cobra-based command tree is a thin adapter over internal/organizer: it
// resolves configuration and logging, takes the per-directory run lock, calls
// the organizer with the chosen directory, and renders the returned outcomes
// as a table, plain log lines, JSON, or YAML. No organizing decisions are made
// here.
package main
