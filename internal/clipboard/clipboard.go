// Package clipboard writes text to the system clipboard.
package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

var ErrUnavailable = errors.New("system clipboard unavailable")

// System copies to the OS clipboard (pbcopy, xclip/xsel, wl-copy, Windows API).
type System struct{}

// New returns the system clipboard writer.
func New() System {
	return System{}
}

// Available reports whether a clipboard backend was found.
func (System) Available() bool {
	return !clipboard.Unsupported
}

// Copy replaces the clipboard contents with text.
func (s System) Copy(text string) error {
	if !s.Available() {
		return ErrUnavailable
	}
	return clipboard.WriteAll(text)
}
