// SPDX-License-Identifier: MIT

// Package matrix provides the dense cell-state buffer shared by every stage
// of the simulator.
//
// What:
//
//   - Matrix is a w×h row-major grid of float64 values; (x,y) lives at y*w+x.
//   - Expand/Shrink add or remove halo rings around the grid.
//   - Blacks counts saturated ("black", value ≥ 1) interior cells.
//
// Ownership:
//
//   - Every transform (Clone, Expand, Shrink) allocates and returns a fresh
//     Matrix; the receiver is never modified.
//   - Set, Fill, CopyFrom and Clamp mutate the receiver in place.
//   - Values exposes the backing slice for hot loops of the engine; callers
//     must not keep it after handing the Matrix to someone else.
//
// Errors:
//
//   - ErrInvalidDimension: negative sizes or over-shrinking.
//   - ErrOutOfBounds: coordinate access outside [0,w)×[0,h).
//   - ErrInvalidRegion: unknown Blacks region selector.
//
// Complexity:
//
//   - New, Clone, Expand, Shrink: O(w×h) time and memory.
//   - At/Set: O(1). Blacks: O(w×h) for All, O(w+h) for edges.
package matrix
