package state

import (
	"context"
	"sync"

	"github.com/rs/zerolog/log"
)

// Controller serialises every read and write of the AppState. Each Update
// runs to completion, and has its entries saved, before the next one starts.
type Controller struct {
	mu   sync.Mutex
	st   *AppState
	repo Repository
}

func NewController(st *AppState, repo Repository) *Controller {
	return &Controller{st: st, repo: repo}
}

// View runs fn with the current state. fn must not keep references past its return.
func (c *Controller) View(fn func(st *AppState)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fn(c.st)
}

// Update runs fn and, when it succeeds, saves entries. fn must leave the
// state untouched when it returns an error.
//
// Persistence is fire-and-forget: a failed save is logged and the in-memory
// state stays authoritative until the next successful write.
func (c *Controller) Update(ctx context.Context, fn func(st *AppState) error, entries ...Entry) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := fn(c.st); err != nil {
		return err
	}
	c.persist(ctx, entries)
	return nil
}

// Replace swaps in a whole new state and saves every entry.
func (c *Controller) Replace(ctx context.Context, st *AppState) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.st = st
	c.persist(ctx, AllEntries)
}

func (c *Controller) persist(ctx context.Context, entries []Entry) {
	if c.repo == nil || len(entries) == 0 {
		return
	}
	// The request that triggered the write may already be gone.
	if err := c.repo.Save(context.WithoutCancel(ctx), c.st, entries...); err != nil {
		log.Error().Err(err).Interface("entries", entries).Msg("state: persist failed")
	}
}
