package main

import (
	"log"
	"os"
	"strings"

	"github.com/Davis-3450/repo2text/cmd"
	"github.com/Davis-3450/repo2text/pkg/logging"

	"github.com/fatih/color"
	"golang.org/x/term"
)

func main() {
	// Execute the root command; the logger is configured by the command setup.
	if err := cmd.Execute(); err != nil {
		color.Red("Error: %v", err)
		syncLogger()
		os.Exit(1)
	}
	syncLogger()
}

// syncLogger flushes the global logger, but only when stderr can accept the
// flush; syncing against a closed terminal reports a spurious error.
func syncLogger() {
	logger := logging.Logger
	if logger == nil {
		return
	}
	if term.IsTerminal(int(os.Stderr.Fd())) || isRegularFile(os.Stderr) {
		if syncErr := logger.Sync(); syncErr != nil {
			lowerErr := strings.ToLower(syncErr.Error())
			if !strings.Contains(lowerErr, "invalid argument") { // Still check for other errors
				log.Printf("Logger sync failed: %v", syncErr)
			}
		}
	}
}

// isRegularFile checks if the given file is a regular file.
func isRegularFile(f *os.File) bool {
	fileInfo, err := f.Stat()
	if err != nil {
		return false // Assume not a regular file if we can't get the file info
	}
	return fileInfo.Mode().IsRegular()
}
