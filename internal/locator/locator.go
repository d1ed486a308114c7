package locator

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrDatabaseNotFound is returned when neither the configured path nor any candidate exists
var ErrDatabaseNotFound = errors.New("anki database not found")

// DefaultProfile is the profile name Anki creates on first start
const DefaultProfile = "User 1"

// CollectionFile is the name of the collection database inside a profile folder
const CollectionFile = "collection.anki2"

// DefaultCandidates returns the conventional collection locations for a profile,
// in lookup order: Windows, macOS, Linux
func DefaultCandidates(home, profile string) []string {
	if profile == "" {
		profile = DefaultProfile
	}
	return []string{
		filepath.Join(home, "AppData", "Roaming", "Anki2", profile, CollectionFile),
		filepath.Join(home, "Library", "Application Support", "Anki2", profile, CollectionFile),
		filepath.Join(home, ".local", "share", "Anki2", profile, CollectionFile),
	}
}

// Locate returns primary if it exists, otherwise the first existing candidate.
// Probing only checks existence; candidates are tried in the order given.
func Locate(primary string, candidates []string) (string, error) {
	if primary != "" && exists(primary) {
		return primary, nil
	}
	for _, path := range candidates {
		if path != "" && exists(path) {
			return path, nil
		}
	}
	return "", ErrDatabaseNotFound
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
