package repository

import (
	"context"
	"strings"
	"sync"

	"TradeCommittee/internal/domain/models"
	"TradeCommittee/internal/domain/repository"
)

// CatalystCalendar is an in-memory CatalystSource fed through the API.
// One upcoming event per symbol; a new entry replaces the old one.
type CatalystCalendar struct {
	mu     sync.RWMutex
	events map[string]models.CatalystDescriptor
}

// NewCatalystCalendar creates an empty calendar.
func NewCatalystCalendar() *CatalystCalendar {
	return &CatalystCalendar{events: make(map[string]models.CatalystDescriptor)}
}

// Set registers or replaces the upcoming event for a symbol.
func (c *CatalystCalendar) Set(symbol string, event models.CatalystDescriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events[strings.ToUpper(symbol)] = event
}

// Remove drops the event for a symbol, if present.
func (c *CatalystCalendar) Remove(symbol string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.events, strings.ToUpper(symbol))
}

// Upcoming returns the registered event, or nil when none is known.
func (c *CatalystCalendar) Upcoming(_ context.Context, symbol string) (*models.CatalystDescriptor, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	event, ok := c.events[strings.ToUpper(symbol)]
	if !ok {
		return nil, nil
	}
	out := event
	return &out, nil
}

// Snapshot returns a copy of every registered event keyed by symbol.
func (c *CatalystCalendar) Snapshot() map[string]models.CatalystDescriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]models.CatalystDescriptor, len(c.events))
	for k, v := range c.events {
		out[k] = v
	}
	return out
}

var _ repository.CatalystSource = (*CatalystCalendar)(nil)
