package clicker

import "fmt"

// position moves the pointer to this tick's click location.
//
// The anchor is the fixed target, or the live cursor read now. With no
// spread and no fixed target the pointer is left alone so a user moving the
// mouse is never fought over.
func (c *Clicker) position() error {
	if c.cfg.Spread.IsZero() {
		if c.cfg.Target == nil {
			return nil
		}
		return c.pointer.MoveTo(*c.cfg.Target)
	}

	anchor := c.cfg.Target
	if anchor == nil {
		live, err := c.pointer.Position()
		if err != nil {
			return fmt.Errorf("read cursor position: %w", err)
		}
		anchor = &live
	}

	dx, dy := c.jitter.Next()
	return c.pointer.MoveTo(anchor.Add(dx, dy))
}
