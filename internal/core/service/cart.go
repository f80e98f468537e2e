package service

import (
	"sync"

	"github.com/vyom/tryon-store/internal/core/domain"
)

// Cart is the in-memory cart for the current session.
//
// Adding a product that is already in the cart appends a second line rather
// than bumping the quantity; existing clients depend on that.
type Cart struct {
	mu    sync.RWMutex
	items []domain.CartItem
}

func NewCart() *Cart {
	return &Cart{}
}

// Add snapshots p as a new line with quantity 1.
func (c *Cart) Add(p domain.Product) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, domain.CartItem{Product: p, Quantity: 1})
}

// Remove drops every line whose id is itemID. Unknown ids are ignored.
func (c *Cart) Remove(itemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, it := range c.items {
		if it.ID != itemID {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// Items returns a copy of the lines in insertion order.
func (c *Cart) Items() []domain.CartItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]domain.CartItem{}, c.items...)
}

// Total is recomputed from the current lines on every call.
func (c *Cart) Total() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return domain.SumItems(c.items)
}

func (c *Cart) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Drain returns the lines and empties the cart under one lock, so a line
// added concurrently is either taken or left for the next checkout.
func (c *Cart) Drain() []domain.CartItem {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := c.items
	c.items = nil
	if items == nil {
		return []domain.CartItem{}
	}
	return items
}

// Restore puts drained lines back ahead of anything added since.
func (c *Cart) Restore(items []domain.CartItem) {
	if len(items) == 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(append([]domain.CartItem{}, items...), c.items...)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
