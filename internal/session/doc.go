package session

// Package session holds per-chat conversational state: pending format and
// quality selections with expiry, and the activity phase driving chat
// action indicators.
