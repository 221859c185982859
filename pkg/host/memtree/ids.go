package memtree

import "fmt"

// idGenerator hands out node IDs ("n1", "n2", ...).
type idGenerator struct {
	counter uint32
}

// Next returns the next node ID.
func (g *idGenerator) Next() string {
	g.counter++
	return fmt.Sprintf("n%d", g.counter)
}

// Current returns the current counter value without incrementing.
func (g *idGenerator) Current() uint32 {
	return g.counter
}
