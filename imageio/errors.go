// SPDX-License-Identifier: MIT

package imageio

import (
	"errors"
	"fmt"
)

// ErrUnsupportedFormat indicates data that no registered decoder recognises.
var ErrUnsupportedFormat = errors.New("imageio: unsupported format")

// ErrIO indicates a failure to read, decode or write image data; the cause
// is wrapped alongside it.
var ErrIO = errors.New("imageio: i/o error")

func ioError(op string, cause error) error {
	return fmt.Errorf("%w: %s: %w", ErrIO, op, cause)
}
