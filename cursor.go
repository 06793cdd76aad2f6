package cellui

// cursorState tracks what the terminal was last told so EndFrame can skip
// redundant moves and style changes. A nil field means "unknown".
type cursorState struct {
	last *Pos
	fg   *Color
	bg   *Color
	attr *CellAttr
}

// maybeMove records p and reports whether a cursor move is needed to write
// there, i.e. p is not directly right of the previous write.
func (c *cursorState) maybeMove(p Pos) bool {
	move := c.last == nil || c.last.Y != p.Y || c.last.X != max(p.X-1, 0)
	c.last = &p
	return move
}

func (c *cursorState) maybeAttr(attr CellAttr) (CellAttr, bool) {
	if attr.Mode == AttrModeReset {
		if c.attr == nil {
			c.attr = &attr
			return attr, true
		}
		if c.attr.Mode == AttrModeReset {
			return attr, false
		}
	}
	changed := c.attr == nil || *c.attr != attr
	c.attr = &attr
	return attr, changed
}

func (c *cursorState) maybeFG(color Color, resetting bool) (Color, bool) {
	return maybeColor(color, resetting, &c.fg)
}

func (c *cursorState) maybeBG(color Color, resetting bool) (Color, bool) {
	return maybeColor(color, resetting, &c.bg)
}

func maybeColor(color Color, resetting bool, cache **Color) (Color, bool) {
	// reusing a color never writes one
	if color.IsReuse() {
		return color, false
	}

	if resetting {
		*cache = &color
		return color, true
	}

	if color.IsReset() {
		if *cache == nil {
			*cache = &color
			return color, true
		}
		// already at the default
		if (*cache).IsReset() {
			return color, false
		}
	}

	changed := *cache == nil || **cache != color
	*cache = &color
	return color, changed
}
