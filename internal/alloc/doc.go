// Package alloc hands out file addresses while a container is flushed.
//
// Allocation is append-only: every Flush lays the whole object tree out
// again after the superblock, so space is never reclaimed in place. Each
// allocation carries a tag naming what was placed there, which the
// validator and diagnostics use to report overlaps.
package alloc
