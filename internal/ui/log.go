package ui

import (
	"log"
	"os"
)

var debugEnabled = os.Getenv("IV_DEBUG") != ""

// debugLog prints diagnostics that are only interesting when chasing cache
// or preload behavior. Enabled with IV_DEBUG=1.
func debugLog(format string, args ...any) {
	if debugEnabled {
		log.Printf("Debug: "+format, args...)
	}
}
