package model

// Package model defines domain data structures used across the bot: source
// kinds, download profiles, pending selections, activity phases, engine
// results, and the error taxonomy. Types are plain values with explicit
// state transitions; nothing here touches the network or the disk.
