package layout

import (
	"sort"
	"sync"
)

// SlotAllocator assigns row indexes to keys. Released indexes go to a free
// list and are handed out again lowest first, so the arena never grows past
// the largest number of keys live at once.
type SlotAllocator struct {
	mu    sync.Mutex
	slots map[string]int
	free  []int // ascending
	next  int
}

func NewSlotAllocator() *SlotAllocator {
	return &SlotAllocator{slots: make(map[string]int)}
}

// Assign returns the slot already held by key, or claims the lowest free one.
func (a *SlotAllocator) Assign(key string) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	if slot, ok := a.slots[key]; ok {
		return slot
	}
	var slot int
	if len(a.free) > 0 {
		slot = a.free[0]
		a.free = a.free[1:]
	} else {
		slot = a.next
		a.next++
	}
	a.slots[key] = slot
	return slot
}

// Release returns key's slot to the free list. Unknown keys are ignored.
func (a *SlotAllocator) Release(key string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.release(key)
}

// Retain releases every key not in live.
func (a *SlotAllocator) Retain(live []string) {
	keep := make(map[string]bool, len(live))
	for _, k := range live {
		keep[k] = true
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	for k := range a.slots {
		if !keep[k] {
			a.release(k)
		}
	}
}

// Slot returns the slot held by key.
func (a *SlotAllocator) Slot(key string) (int, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	slot, ok := a.slots[key]
	return slot, ok
}

// Len is the number of keys holding a slot.
func (a *SlotAllocator) Len() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.slots)
}

// Capacity is the number of slot indexes ever created.
func (a *SlotAllocator) Capacity() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.next
}

func (a *SlotAllocator) release(key string) {
	slot, ok := a.slots[key]
	if !ok {
		return
	}
	delete(a.slots, key)
	i := sort.SearchInts(a.free, slot)
	a.free = append(a.free, 0)
	copy(a.free[i+1:], a.free[i:])
	a.free[i] = slot
}
