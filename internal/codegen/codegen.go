// Package codegen issues the human-readable codes printed on receipts
// (HS2026000123, LH00001234, ...) and the numeric ids of contact tickets
// and subscriptions.
package codegen

import (
	"fmt"
	"sync"
	"time"

	"github.com/BearBump/DVCPortal/internal/apperr"
	"github.com/bwmarrin/snowflake"
	"github.com/pkg/errors"
)

type Format struct {
	Prefix   string
	Digits   int
	WithYear bool
}

var (
	Application   = Format{Prefix: "HS", Digits: 6, WithYear: true}
	Appointment   = Format{Prefix: "LH", Digits: 8}
	SupportTicket = Format{Prefix: "TK", Digits: 8}
	Feedback      = Format{Prefix: "FB", Digits: 8}
)

const (
	ContactPrefix      = "DVC"
	SubscriptionPrefix = "SUB"

	defaultMaxAttempts = 16
)

// TakenFunc reports whether a candidate code is already used in the target
// registry.
type TakenFunc func(code string) bool

// Generator hands out codes from a per-prefix counter. The counter starts at
// the wall-clock milliseconds so codes differ across restarts, then only
// moves forward; every candidate is checked with TakenFunc before it is
// returned.
type Generator struct {
	mu          sync.Mutex
	seq         map[string]uint64
	now         func() time.Time
	maxAttempts int

	node *snowflake.Node
}

func New(nodeID int64) (*Generator, error) {
	node, err := snowflake.NewNode(nodeID)
	if err != nil {
		return nil, errors.Wrap(err, "snowflake node")
	}
	return &Generator{
		seq:         make(map[string]uint64),
		now:         time.Now,
		maxAttempts: defaultMaxAttempts,
		node:        node,
	}, nil
}

// WithClock replaces the time source (tests).
func (g *Generator) WithClock(now func() time.Time) *Generator {
	g.now = now
	return g
}

// Next returns a fresh code of format f that taken does not report as used.
// After maxAttempts collisions it gives up with apperr.ErrDuplicateCode.
//
// The check only guards against codes that exist at generation time; the
// registry insert must still reject a duplicate.
func (g *Generator) Next(f Format, taken TakenFunc) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	mod := pow10(f.Digits)
	now := g.now()
	n, ok := g.seq[f.Prefix]
	if !ok {
		n = uint64(now.UnixMilli()) % mod
	}

	for i := 0; i < g.maxAttempts; i++ {
		n = (n + 1) % mod
		code := f.render(now, n)
		if taken == nil || !taken(code) {
			g.seq[f.Prefix] = n
			return code, nil
		}
	}
	g.seq[f.Prefix] = n
	return "", apperr.ErrDuplicateCode
}

// Numeric returns prefix followed by a snowflake id, e.g. DVC1790000000000000000.
func (g *Generator) Numeric(prefix string) string {
	return prefix + g.node.Generate().String()
}

func (f Format) render(now time.Time, n uint64) string {
	if f.WithYear {
		return fmt.Sprintf("%s%04d%0*d", f.Prefix, now.Year(), f.Digits, n)
	}
	return fmt.Sprintf("%s%0*d", f.Prefix, f.Digits, n)
}

func pow10(d int) uint64 {
	m := uint64(1)
	for i := 0; i < d; i++ {
		m *= 10
	}
	return m
}
