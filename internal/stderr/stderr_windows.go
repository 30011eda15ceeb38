//go:build windows

package stderr

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
)

// Start does nothing on Windows, where the audio backend does not write
// to the console.
func Start(*log.Logger) error { return nil }

// Stop does nothing on Windows.
func Stop() {}

// WriteOriginal writes msg to the console.
func WriteOriginal(msg string) {
	fmt.Fprint(os.Stderr, msg)
}
