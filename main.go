package main

import (
	"runtime"

	"particle-wui/cmd"
)

// The main goroutine runs on the main OS thread only while init runs, so the
// lock is taken here and held for the command's lifetime.
func init() {
	runtime.LockOSThread()
}

func main() {
	cmd.Execute()
}
