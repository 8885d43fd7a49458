package utils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

var moduleDir = sync.OnceValue(func() string {
	exe, err := os.Executable()
	if err != nil {
		wd, _ := os.Getwd()
		return wd
	}
	if resolved, err := filepath.EvalSymlinks(exe); err == nil {
		exe = resolved
	}
	return filepath.Dir(exe)
})

// ModuleDir returns the directory containing the running executable.
// It falls back to the working directory when the executable cannot be located.
func ModuleDir() string {
	return moduleDir()
}

// Within reports whether target is root itself or one of its descendants.
// Both paths are compared lexically after cleaning.
func Within(root, target string) bool {
	rel, err := filepath.Rel(filepath.Clean(root), filepath.Clean(target))
	if err != nil {
		return false
	}
	if rel == "." {
		return true
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) && !filepath.IsAbs(rel)
}
