package biquad

// Chain is a fixed-size cascade of bypassable sections processed in series.
// The number of sections is set at construction and never changes; a filter
// of lower order is expressed by bypassing the unused tail sections.
type Chain struct {
	sections []Section
}

// NewChain returns a cascade of n identity sections, none bypassed.
func NewChain(n int) *Chain {
	if n < 0 {
		n = 0
	}
	c := &Chain{sections: make([]Section, n)}
	for i := range c.sections {
		c.sections[i].SetCoefficients(nil)
	}
	return c
}

// NewChainFrom returns a cascade with one section per coefficient handle.
func NewChainFrom(coeffs []*Coefficients) *Chain {
	c := &Chain{sections: make([]Section, len(coeffs))}
	for i := range coeffs {
		c.sections[i].SetCoefficients(coeffs[i])
	}
	return c
}

// ProcessSample cascades input through all non-bypassed sections in order.
func (c *Chain) ProcessSample(x float64) float64 {
	for i := range c.sections {
		x = c.sections[i].ProcessSample(x)
	}
	return x
}

// ProcessBlock filters a block in-place through the cascade.
func (c *Chain) ProcessBlock(buf []float64) {
	for i := range c.sections {
		c.sections[i].ProcessBlock(buf)
	}
}

// Reset clears all section states.
func (c *Chain) Reset() {
	for i := range c.sections {
		c.sections[i].Reset()
	}
}

// NumSections returns the number of biquad sections.
func (c *Chain) NumSections() int {
	return len(c.sections)
}

// Section returns a pointer to the i-th section.
func (c *Chain) Section(i int) *Section {
	return &c.sections[i]
}

// SetBypassed toggles the bypass flag of section i.
func (c *Chain) SetBypassed(i int, b bool) {
	c.sections[i].SetBypassed(b)
}

// IsBypassed reports the bypass flag of section i.
func (c *Chain) IsBypassed(i int) bool {
	return c.sections[i].IsBypassed()
}

// ActiveSections returns how many sections are not bypassed.
func (c *Chain) ActiveSections() int {
	n := 0
	for i := range c.sections {
		if !c.sections[i].IsBypassed() {
			n++
		}
	}
	return n
}

// State returns a snapshot of all section delay-line states.
func (c *Chain) State() [][2]float64 {
	states := make([][2]float64, len(c.sections))
	for i := range c.sections {
		states[i] = c.sections[i].State()
	}
	return states
}

// SetState restores previously saved section states.
// The slice length must match NumSections.
func (c *Chain) SetState(states [][2]float64) {
	for i := range c.sections {
		c.sections[i].SetState(states[i])
	}
}
