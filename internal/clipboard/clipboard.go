// Package clipboard implements the system-clipboard copy adapter: probe
// for a platform clipboard helper up front so a missing helper can be
// surfaced as status before a copy is attempted, then delegate the
// actual write to github.com/atotto/clipboard, which already knows the
// pbcopy/xclip/xsel dispatch for the running platform.
package clipboard

import (
	"os/exec"
	"runtime"

	atclipboard "github.com/atotto/clipboard"

	"github.com/grailbio/dsview/internal/dsverrors"
)

// Writer copies rendered cell text to the OS clipboard once a helper has
// been confirmed present.
type Writer struct{}

// Detect probes the current platform for a usable clipboard helper.
// Returns an error satisfying dsverrors.Kind() == dsverrors.NotImplemented
// when none is found, leaving state unchanged so the caller can surface
// a status message instead.
func Detect() (*Writer, error) {
	switch runtime.GOOS {
	case "darwin":
		if _, err := exec.LookPath("pbcopy"); err == nil {
			return &Writer{}, nil
		}
	default:
		if _, err := exec.LookPath("xclip"); err == nil {
			return &Writer{}, nil
		}
		if _, err := exec.LookPath("xsel"); err == nil {
			return &Writer{}, nil
		}
	}
	return nil, dsverrors.E(dsverrors.NotImplemented, "clipboard", "no clipboard helper found")
}

// Copy writes text to the OS clipboard.
func (w *Writer) Copy(text string) error {
	if err := atclipboard.WriteAll(text); err != nil {
		return dsverrors.E(dsverrors.Generic, err, "clipboard", "write")
	}
	return nil
}
