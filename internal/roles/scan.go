package roles

import (
	iofs "io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// SelectCandidates returns the names of card files among entries, sorted ascending by byte order.
// A candidate is a non-directory entry whose name ends in ext and has a stem; the entry named exclude
// (the manifest itself, when it lives beside the cards) is dropped.
// The order is part of the manifest contract.
func SelectCandidates(entries []iofs.DirEntry, ext, exclude string) []string {
	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if name == exclude || len(name) <= len(ext) || !strings.HasSuffix(name, ext) {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ManifestExclusion returns the file name to exclude from inputDir candidates:
// the manifest's base name when the manifest sits directly in inputDir, else "".
func ManifestExclusion(inputDir, output string) string {
	if filepath.Clean(filepath.Dir(output)) != filepath.Clean(inputDir) {
		return ""
	}
	return filepath.Base(output)
}
