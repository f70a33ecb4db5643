package walker

// TokenStats contains token counts for one walk of a structure block.
type TokenStats struct {
	BeginNodes int
	EndNodes   int
	Props      int
	MaxDepth   int

	// PropBytes is the sum of all property value lengths.
	PropBytes int
}

// Counter tallies tokens. It is useful for debugging, validation, and
// understanding blob structure.
type Counter struct {
	stats TokenStats
}

// Count walks w once and returns statistics about every reported token.
//
// Example:
//
//	stats, err := walker.Count(w)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("nodes: %d\n", stats.BeginNodes)
func Count(w *Walker) (*TokenStats, error) {
	c := &Counter{}
	if err := w.Walk(MaskAll, c); err != nil {
		return nil, err
	}
	return &c.stats, nil
}

// Stats returns the counts gathered so far.
func (c *Counter) Stats() TokenStats { return c.stats }

func (c *Counter) BeginNode(ev *Event) error {
	c.stats.BeginNodes++
	if ev.Depth > c.stats.MaxDepth {
		c.stats.MaxDepth = ev.Depth
	}
	return nil
}

func (c *Counter) EndNode(*Event) error {
	c.stats.EndNodes++
	return nil
}

func (c *Counter) Property(ev *Event) error {
	c.stats.Props++
	c.stats.PropBytes += len(ev.Data)
	return nil
}
