package suggest

// cursor tracks the highlighted row of the panel, including the trailing
// "view all" row.
type cursor struct {
	pos   int
	total int
}

func (c *cursor) reset(total int) {
	c.total = total
	c.pos = 0
}

func (c *cursor) moveBy(delta int) bool {
	if c.total == 0 {
		c.pos = 0
		return false
	}
	old := c.pos
	c.pos += delta
	if c.pos < 0 {
		c.pos = 0
	}
	if c.pos >= c.total {
		c.pos = c.total - 1
	}
	return c.pos != old
}

func (c *cursor) home() bool {
	return c.moveBy(-c.pos)
}

func (c *cursor) end() bool {
	return c.moveBy(c.total - 1 - c.pos)
}
