package output

import (
	"errors"

	"github.com/atotto/clipboard"
)

// Clipboard replaces the contents of a clipboard.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard is the desktop clipboard. On Linux it needs xclip, xsel or
// wl-clipboard on PATH.
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return errors.New("no clipboard utility found (install xclip, xsel or wl-clipboard)")
	}
	return clipboard.WriteAll(text)
}
