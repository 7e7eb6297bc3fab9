package download

// Package download adapts the yt-dlp engine (via github.com/lrstanley/go-ytdlp)
// for single-media acquisition: command construction from format profiles,
// retry, progress logging, and failure classification.
