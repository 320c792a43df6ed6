// SPDX-License-Identifier: MIT

// Package regions analyses converged CNN outputs as black/white grids.
//
// What:
//
//   - Label finds connected regions ("blobs") of black cells, i.e. cells with
//     value ≥ Options.Threshold, under 4- or 8-connectivity.
//   - Bridge finds the fewest white cells that must turn black to join two
//     regions (0-1 BFS).
//   - Summarize aggregates matrix.Blacks counts with region statistics.
//
// Like matrix.Blacks, only interior cells are considered: the outermost ring
// of the matrix is the boundary halo and never belongs to a region.
// Coordinates are reported in the frame of the analysed matrix.
//
// Complexity:
//
//   - Label:  O(W×H×d), Memory: O(W×H)   (d = 4 or 8).
//   - Bridge: O(W×H×d), Memory: O(W×H).
//
// Errors:
//
//   - ErrNilMatrix: no matrix given.
//   - ErrRegionIndex: requested region index out of range.
//   - ErrNoPath: the regions cannot be joined through interior cells.
package regions
