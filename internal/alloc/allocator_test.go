package alloc

import (
	"strings"
	"testing"
)

func TestAllocatorBasic(t *testing.T) {
	a := New(48)

	addr1 := a.Alloc(100, "dataset")
	if addr1 != 48 {
		t.Errorf("first allocation: got 0x%x, want 0x%x", addr1, 48)
	}

	addr2 := a.Alloc(200, "header")
	if addr2 != 148 {
		t.Errorf("second allocation: got 0x%x, want 0x%x", addr2, 148)
	}

	if a.EOFAddr() != 348 {
		t.Errorf("EOF: got 0x%x, want 0x%x", a.EOFAddr(), 348)
	}
}

func TestAllocatorZeroSize(t *testing.T) {
	a := New(100)

	if addr := a.Alloc(0, "empty"); addr != 100 {
		t.Errorf("zero allocation: got 0x%x, want 0x%x", addr, 100)
	}
	if a.EOFAddr() != 100 {
		t.Errorf("EOF after zero alloc: got 0x%x, want 0x%x", a.EOFAddr(), 100)
	}
	if len(a.allocations) != 0 {
		t.Errorf("zero allocation was recorded")
	}
}

func TestAllocatorAligned(t *testing.T) {
	a := New(48)
	a.Alloc(3, "data")

	addr := a.AllocAligned(16, 8, "header")
	if addr != 56 {
		t.Errorf("aligned allocation: got %d, want 56", addr)
	}
	if got := a.Stats().PaddingBytes; got != 5 {
		t.Errorf("padding: got %d, want 5", got)
	}
}

func TestAllocatorStats(t *testing.T) {
	a := New(0)
	a.Alloc(10, "a")
	a.Alloc(30, "b")
	a.Alloc(20, "c")

	stats := a.Stats()
	if stats.TotalAllocations != 3 {
		t.Errorf("TotalAllocations: got %d, want 3", stats.TotalAllocations)
	}
	if stats.TotalBytesAlloc != 60 {
		t.Errorf("TotalBytesAlloc: got %d, want 60", stats.TotalBytesAlloc)
	}
	if stats.LargestAlloc != 30 {
		t.Errorf("LargestAlloc: got %d, want 30", stats.LargestAlloc)
	}
}

func TestAllocatorValidate(t *testing.T) {
	a := New(48)
	a.Alloc(64, "header")
	a.AllocAligned(7, 8, "data")
	if err := a.Validate(); err != nil {
		t.Fatalf("Validate failed: %v", err)
	}

	a.allocations = append(a.allocations, Allocation{Addr: 60, Size: 8, Tag: "bogus"})
	err := a.Validate()
	if err == nil || !strings.Contains(err.Error(), "overlapping") {
		t.Errorf("expected overlap error, got %v", err)
	}
}
