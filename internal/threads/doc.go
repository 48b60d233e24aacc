// Package threads groups the cells of a stitch chart into threads.
//
// A thread is a run of same-colored stitches that a crafter would work from
// one continuous length of yarn or floss without cutting it. Assign walks a
// sampled grid in the order the fabric is stitched and gives every cell
// exactly one thread.
//
// # Stitching Order
//
// Work starts at the bottom row and alternates direction on every row
// (boustrophedon order). The bottom row is worked right-to-left, the one above
// it left-to-right, and so on:
//
//	rows=2, columns=3:  (2,1) (1,1) (0,1)  then  (0,0) (1,0) (2,0)
//
// # Matching
//
// Threads live in a registry that records both creation order (which fixes the
// labels) and recency of use. For every visited cell the registry is scanned
// from the most recently used thread backward:
//
//   - the scan stops at the first thread last used more than two rows below
//     the current cell
//   - threads of another color are skipped
//   - the first thread whose last column is within one column of the cell is
//     extended to it and moved to the most-recent end
//
// If nothing matches, a new thread is created. The recency order is only an
// approximation of row order, so the row cutoff is a heuristic bound on the
// scan rather than an exact distance check.
//
// # Labels
//
// Labels are derived from the creation index. Index 0 is "A". Larger indices
// take index%26 as a letter, divide by 26 and repeat, then reverse the
// letters. This is not spreadsheet column numbering: 26 becomes "BA" and no
// two-letter label starts with "A".
package threads
