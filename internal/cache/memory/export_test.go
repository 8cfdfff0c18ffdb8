package memory

import "time"

// SetClock — подмена часов в тестах.
func (c *LRUCacheTTL) SetClock(now func() time.Time) { c.now = now }
