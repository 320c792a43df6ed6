// SPDX-License-Identifier: MIT

package sequence

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/katalvlaran/cellnet/matrix"
)

// ErrBadReference indicates a reference that cannot be resolved: a result
// index that is not yet computed, an empty path, or a missing first init.
var ErrBadReference = errors.New("sequence: bad reference")

// ErrEmptySequence indicates Run was given no steps.
var ErrEmptySequence = errors.New("sequence: no steps")

type refKind int

const (
	refNone refKind = iota
	refMatrix
	refPath
	refResult
)

// Ref names a matrix: a literal one, an image file, or an earlier result.
// The zero Ref means "use the default".
type Ref struct {
	kind  refKind
	m     *matrix.Matrix
	path  string
	index int
}

// Matrix references m directly. m has no halo.
func Matrix(m *matrix.Matrix) Ref { return Ref{kind: refMatrix, m: m} }

// Path references an image file.
func Path(p string) Ref { return Ref{kind: refPath, path: p} }

// Result references result i: 0 is the first init, i > 0 the output of step i.
func Result(i int) Ref { return Ref{kind: refResult, index: i} }

// ParseRef reads the textual form used by config files and flags:
// "" is the default, "#N" or a bare integer N is Result(N), anything else is
// a Path.
func ParseRef(s string) Ref {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ref{}
	}
	if n, err := strconv.Atoi(strings.TrimPrefix(s, "#")); err == nil {
		return Result(n)
	}

	return Path(s)
}

// IsZero reports whether r is the default reference.
func (r Ref) IsZero() bool { return r.kind == refNone }

// String renders r in the form accepted by ParseRef.
func (r Ref) String() string {
	switch r.kind {
	case refMatrix:
		return fmt.Sprintf("matrix(%dx%d)", r.m.Width(), r.m.Height())
	case refPath:
		return r.path
	case refResult:
		return "#" + strconv.Itoa(r.index)
	default:
		return ""
	}
}

// resolve returns the referenced matrix.
func (r Ref) resolve(results []*matrix.Matrix, load Loader) (*matrix.Matrix, error) {
	switch r.kind {
	case refMatrix:
		if r.m == nil {
			return nil, fmt.Errorf("nil matrix: %w", ErrBadReference)
		}
		return r.m, nil
	case refPath:
		if r.path == "" {
			return nil, fmt.Errorf("empty path: %w", ErrBadReference)
		}
		return load(r.path)
	case refResult:
		if r.index < 0 || r.index >= len(results) {
			return nil, fmt.Errorf("result #%d of %d: %w", r.index, len(results), ErrBadReference)
		}
		return results[r.index], nil
	default:
		return nil, fmt.Errorf("no reference: %w", ErrBadReference)
	}
}
