package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tgfetch/tgfetch/internal/model"
)

// File permissions
const (
	DefaultDirPermissions = 0755
)

// Partial-download extensions the locator must never pick up
var SkippedExtensions = []string{".part", ".ytdl"}

// CreateDirectoryIfNotExists creates directory if it doesn't exist
func CreateDirectoryIfNotExists(dirPath string) error {
	if _, err := os.Stat(dirPath); os.IsNotExist(err) {
		return os.MkdirAll(dirPath, DefaultDirPermissions)
	}
	return nil
}

// fileExists reports whether path names an existing regular file
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// LocateOutput resolves the single file produced by an acquisition. The
// engine's reporting of the final name is inconsistent across sites and
// post-processing steps (audio extraction rewrites the extension after the
// fact), so resolution is layered and the first existing path wins: the
// download manifest, the top-level path fields, the template with the
// declared extension substituted, and finally a directory scan for the
// request's unique token.
func LocateOutput(result model.AcquisitionResult, profile model.Profile) (model.LocatedFile, error) {
	kind := profile.MediaKind()

	for _, entry := range result.Downloads {
		if entry.Filepath != "" && fileExists(entry.Filepath) {
			return model.LocatedFile{Path: entry.Filepath, Kind: kind}, nil
		}
	}

	for _, candidate := range []string{result.Filepath, result.Filename} {
		if candidate != "" && fileExists(candidate) {
			return model.LocatedFile{Path: candidate, Kind: kind}, nil
		}
	}

	if result.Ext != "" {
		guessed := strings.Replace(profile.OutputTemplate, model.OutputExtPlaceholder, result.Ext, 1)
		if fileExists(guessed) {
			return model.LocatedFile{Path: guessed, Kind: kind}, nil
		}
	}

	if found, ok := findByPrefix(filepath.Dir(profile.OutputTemplate), profile.Token); ok {
		return model.LocatedFile{Path: found, Kind: kind}, nil
	}

	return model.LocatedFile{}, model.WrapError(model.ErrorKindFileNotFound,
		fmt.Errorf("no file matches template %s", profile.OutputTemplate))
}

// findByPrefix returns the first non-partial entry in dir whose name starts
// with the token
func findByPrefix(dir, token string) (string, bool) {
	if token == "" {
		return "", false
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), token) {
			continue
		}
		if isPartialFile(entry.Name()) {
			continue
		}
		return filepath.Join(dir, entry.Name()), true
	}
	return "", false
}

// isPartialFile reports whether the name carries an in-progress extension
func isPartialFile(name string) bool {
	for _, ext := range SkippedExtensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// RemoveFile removes the file if it exists. A missing file is not an error:
// cleanup legitimately runs for paths that were never produced.
func RemoveFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	return os.Remove(path)
}

// RemoveByPrefix removes every entry in dir whose name starts with the
// token, partials included, and returns how many were removed. Used by the
// pipeline cleanup to sweep leftovers of failed acquisitions.
func RemoveByPrefix(dir, token string) (int, error) {
	if token == "" {
		return 0, nil
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), token) {
			continue
		}
		if err := os.Remove(filepath.Join(dir, entry.Name())); err != nil {
			return removed, err
		}
		removed++
	}
	return removed, nil
}
