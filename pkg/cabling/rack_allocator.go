package cabling

import "fmt"

// SlotRef is one reserved (u, slot) coordinate on a rack.
type SlotRef struct {
	RackID string
	U      int
	Slot   int
}

// RackOverflowError reports a reservation that fell outside 1..max_u.
// Index is the allocation index that could not be placed.
type RackOverflowError struct {
	RackID string
	Index  int
	MaxU   int
}

func (e *RackOverflowError) Error() string {
	return fmt.Sprintf("rack %s: allocation index %d exceeds %dU", e.RackID, e.Index, e.MaxU)
}

// RackSlotAllocator hands out (u, slot) coordinates on one rack in the
// configured fill direction. The allocation index only moves forward;
// reserved slots are never released.
type RackSlotAllocator struct {
	rackID    string
	slotsPerU int
	maxU      int
	direction Direction
	index     int
}

// NewRackSlotAllocator creates the slot state machine for one rack.
func NewRackSlotAllocator(rackID string, slotsPerU, maxU int, direction Direction) *RackSlotAllocator {
	return &RackSlotAllocator{
		rackID:    rackID,
		slotsPerU: slotsPerU,
		maxU:      maxU,
		direction: direction,
	}
}

// locate maps an allocation index to its (u, slot) coordinate.
func (a *RackSlotAllocator) locate(index int) (u, slot int) {
	slot = index%a.slotsPerU + 1
	if a.direction == DirectionBottomUp {
		u = a.maxU - index/a.slotsPerU
	} else {
		u = index/a.slotsPerU + 1
	}
	return u, slot
}

// inRange reports whether the index maps inside the rack.
func (a *RackSlotAllocator) inRange(index int) bool {
	u, _ := a.locate(index)
	return u >= 1 && u <= a.maxU
}

// ReserveOne returns the next (u, slot) and advances the index. On
// overflow it returns a RackOverflowError; the index still advances so
// every failing site carries a distinct index.
func (a *RackSlotAllocator) ReserveOne() (SlotRef, error) {
	index := a.index
	a.index++
	if !a.inRange(index) {
		return SlotRef{}, &RackOverflowError{RackID: a.rackID, Index: index, MaxU: a.maxU}
	}
	u, slot := a.locate(index)
	return SlotRef{RackID: a.rackID, U: u, Slot: slot}, nil
}

// ReserveContiguous atomically reserves n consecutive allocation
// indexes. If any of them would overflow, nothing is consumed and the
// error names the first index that does not fit.
func (a *RackSlotAllocator) ReserveContiguous(n int) ([]SlotRef, error) {
	for i := 0; i < n; i++ {
		if !a.inRange(a.index + i) {
			return nil, &RackOverflowError{RackID: a.rackID, Index: a.index + i, MaxU: a.maxU}
		}
	}
	refs := make([]SlotRef, n)
	for i := 0; i < n; i++ {
		u, slot := a.locate(a.index + i)
		refs[i] = SlotRef{RackID: a.rackID, U: u, Slot: slot}
	}
	a.index += n
	return refs, nil
}

// Reserved returns how many allocation indexes have been consumed,
// overflowed attempts included.
func (a *RackSlotAllocator) Reserved() int {
	return a.index
}
