package platform

// Package platform contains filesystem and external tooling glue: output
// file location, cleanup helpers, and parsing of the engine's JSON report.
