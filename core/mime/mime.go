package mime

import (
	"strings"
	"sync"
)

// Entry pairs a file extension (with its leading dot) with a content type.
type Entry struct {
	Ext  string
	Type string
}

var table = sync.OnceValue(func() []Entry {
	return []Entry{
		{Ext: ".txt", Type: "text/plain"},
		{Ext: ".html", Type: "text/html"},
		{Ext: ".css", Type: "text/css"},
		{Ext: ".js", Type: "text/javascript"},
		{Ext: ".png", Type: "image/png"},
		{Ext: ".jpg", Type: "image/jpeg"},
	}
})

// Table returns a copy of the resolver table in lookup order.
func Table() []Entry {
	entries := table()
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}

// Default returns the fallback content type (the first table entry).
func Default() string {
	return table()[0].Type
}

// Resolve returns the content type for path.
// It never fails: unknown or missing extensions yield Default().
func Resolve(path string) string {
	entries := table()

	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return entries[0].Type
	}

	ext := path[idx:]
	for _, e := range entries {
		if e.Ext == ext {
			return e.Type
		}
	}
	return entries[0].Type
}

// Known reports whether path has an extension present in the table.
func Known(path string) bool {
	idx := strings.LastIndexByte(path, '.')
	if idx < 0 {
		return false
	}
	ext := path[idx:]
	for _, e := range table() {
		if e.Ext == ext {
			return true
		}
	}
	return false
}
