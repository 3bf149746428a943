package alloc

import (
	"fmt"
	"sort"
	"sync"
)

// Allocator manages space allocation within a container file.
type Allocator struct {
	mu sync.Mutex

	// eofAddr is the next allocation point.
	eofAddr uint64

	// baseAddr is the minimum address that can be allocated
	// (right after the superblock).
	baseAddr uint64

	allocations []Allocation
	stats       Stats
}

// Allocation represents a single allocation made.
type Allocation struct {
	Addr uint64
	Size uint64
	Tag  string
}

// Stats contains allocation statistics.
type Stats struct {
	TotalAllocations uint64
	TotalBytesAlloc  uint64
	LargestAlloc     uint64
	PaddingBytes     uint64
}

// New creates a new Allocator starting at the given base address.
func New(baseAddr uint64) *Allocator {
	return &Allocator{
		eofAddr:  baseAddr,
		baseAddr: baseAddr,
	}
}

// Alloc allocates a block of the given size at EOF and returns its address.
func (a *Allocator) Alloc(size uint64, tag string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	return a.allocLocked(size, tag)
}

// AllocAligned allocates a block whose address is a multiple of alignment.
func (a *Allocator) AllocAligned(size, alignment uint64, tag string) uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()

	if alignment > 1 {
		if remainder := a.eofAddr % alignment; remainder != 0 {
			padding := alignment - remainder
			a.eofAddr += padding
			a.stats.PaddingBytes += padding
		}
	}
	return a.allocLocked(size, tag)
}

func (a *Allocator) allocLocked(size uint64, tag string) uint64 {
	addr := a.eofAddr
	if size == 0 {
		return addr
	}
	a.eofAddr += size

	a.allocations = append(a.allocations, Allocation{Addr: addr, Size: size, Tag: tag})

	a.stats.TotalAllocations++
	a.stats.TotalBytesAlloc += size
	if size > a.stats.LargestAlloc {
		a.stats.LargestAlloc = size
	}
	return addr
}

// EOFAddr returns the current end-of-file address.
func (a *Allocator) EOFAddr() uint64 {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.eofAddr
}

// Stats returns a copy of the allocation statistics.
func (a *Allocator) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stats
}

// Validate checks that allocations don't overlap and are within bounds.
func (a *Allocator) Validate() error {
	a.mu.Lock()
	defer a.mu.Unlock()

	sorted := make([]Allocation, len(a.allocations))
	copy(sorted, a.allocations)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Addr < sorted[j].Addr })

	for i, cur := range sorted {
		if cur.Addr < a.baseAddr {
			return fmt.Errorf("%s at 0x%x is before base address 0x%x", cur.Tag, cur.Addr, a.baseAddr)
		}
		if cur.Addr+cur.Size > a.eofAddr {
			return fmt.Errorf("%s at 0x%x size %d extends past EOF 0x%x", cur.Tag, cur.Addr, cur.Size, a.eofAddr)
		}
		if i > 0 {
			prev := sorted[i-1]
			if prev.Addr+prev.Size > cur.Addr {
				return fmt.Errorf("overlapping allocations: %s [0x%x, size %d] and %s [0x%x, size %d]",
					prev.Tag, prev.Addr, prev.Size, cur.Tag, cur.Addr, cur.Size)
			}
		}
	}
	return nil
}
