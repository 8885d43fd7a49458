package content

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"particle-wui/core/mime"
)

// Report describes a content root.
type Report struct {
	Root         string   `json:"root"`
	IndexPresent bool     `json:"index_present"`
	Files        int      `json:"files"`
	DefaultTyped []string `json:"default_typed"`
}

// Check inspects the content root at root.
func Check(root string) (*Report, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("content root unavailable: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content root %s is not a directory", root)
	}

	report := &Report{Root: root}
	files, err := listFiles(root)
	if err != nil {
		return nil, err
	}

	for _, rel := range files {
		report.Files++
		if rel == "index.html" {
			report.IndexPresent = true
		}
		if !mime.Known(rel) {
			report.DefaultTyped = append(report.DefaultTyped, rel)
		}
	}
	return report, nil
}

// listFiles returns the regular files under root as sorted slash-separated paths.
func listFiles(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk content root: %w", err)
	}
	sort.Strings(files)
	return files, nil
}
