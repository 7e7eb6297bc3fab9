package bot

// Package bot wires Telegram updates to the download pipeline: command and
// link handling, format/quality selection keyboards, status messaging,
// activity indicators, and media delivery with cleanup.
