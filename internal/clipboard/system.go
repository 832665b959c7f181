package clipboard

import (
	"errors"

	"github.com/atotto/clipboard"
)

// ErrUnsupported means no clipboard utility is available on this system.
var ErrUnsupported = errors.New("system clipboard unsupported")

// System writes to the operating system clipboard.
type System struct{}

func (System) WriteText(text string) error {
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	return clipboard.WriteAll(text)
}
