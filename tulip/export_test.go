package tulip

// Current exposes the bin pointer to the external tests.
func (b *Bins) Current() int { return b.current }
