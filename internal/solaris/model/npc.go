package model

// NPC: a moderator-controlled character that can join games like a player.
// NPC IDs are negative so they never collide with platform user IDs.
type NPC struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Profile string `json:"profile"`
}

// IDAllocator hands out NPC IDs. The cursor starts at -1 and moves downward;
// AdvancePast skips it below any ID already persisted.
type IDAllocator struct {
	next int64
}

// NewIDAllocator creates an allocator with the cursor at -1.
func NewIDAllocator() *IDAllocator {
	return &IDAllocator{next: -1}
}

// Next returns the current cursor value and decrements it.
func (a *IDAllocator) Next() int64 {
	id := a.next
	a.next--
	return id
}

// AdvancePast moves the cursor below the given ID when needed. Call with the
// minimum persisted NPC ID after loading the registry.
func (a *IDAllocator) AdvancePast(minID int64) {
	if minID < 0 && minID <= a.next {
		a.next = minID - 1
	}
}
