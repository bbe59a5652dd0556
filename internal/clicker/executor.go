package clicker

// execute performs this tick's click and returns the sub-clicks completed.
//
// With hold time enabled every sub-click is an explicit press, a sampled
// hold and a release, and the two halves of a double click are separated by
// a short random gap. Otherwise the backend's multi-click primitive is used.
func (c *Clicker) execute() (int, error) {
	n := c.cfg.ClickType.Count()
	button := c.cfg.Button

	if !c.cfg.holdEnabled() {
		if err := c.pointer.Click(button, n); err != nil {
			return 0, err
		}
		return n, nil
	}

	for i := 0; i < n; i++ {
		if i > 0 {
			c.clock.Sleep(c.src.DoubleClickGap())
		}
		if err := c.pointer.Press(button); err != nil {
			return i, err
		}
		c.clock.Sleep(c.src.Hold(c.cfg.Hold))
		if err := c.pointer.Release(button); err != nil {
			return i, err
		}
	}
	return n, nil
}
