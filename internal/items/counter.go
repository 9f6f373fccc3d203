package items

// Counter hands out sequential ids for markup-derived items. Each controller owns
// its own counter so ids never leak across accordion instances.
type Counter struct {
	next     int
	reserved map[int]struct{}
}

// NewCounter returns a counter starting at zero.
func NewCounter() *Counter {
	return &Counter{reserved: make(map[int]struct{})}
}

// Reserve marks ids as taken so Next skips them.
func (c *Counter) Reserve(ids ...int) {
	if c.reserved == nil {
		c.reserved = make(map[int]struct{})
	}
	for _, id := range ids {
		c.reserved[id] = struct{}{}
	}
}

// Next returns the lowest unreserved id at or above the cursor and reserves it.
func (c *Counter) Next() int {
	if c.reserved == nil {
		c.reserved = make(map[int]struct{})
	}
	for {
		id := c.next
		c.next++
		if _, taken := c.reserved[id]; taken {
			continue
		}
		c.reserved[id] = struct{}{}
		return id
	}
}

// Reset rewinds the counter and forgets reservations.
func (c *Counter) Reset() {
	c.next = 0
	c.reserved = make(map[int]struct{})
}
