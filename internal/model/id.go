package model

import (
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

type IDGenerator interface {
	NewID() string
}

type UUIDGenerator struct{}

func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

// ClockGenerator issues millisecond timestamps as decimal strings. Two calls in
// the same tick get consecutive values so ids never repeat within a process.
type ClockGenerator struct {
	mu   sync.Mutex
	last int64
	Now  func() time.Time
}

func NewClockGenerator() *ClockGenerator {
	return &ClockGenerator{Now: time.Now}
}

func (g *ClockGenerator) NewID() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	next := now().UnixMilli()
	if next <= g.last {
		next = g.last + 1
	}
	g.last = next
	return strconv.FormatInt(next, 10)
}

// Seed makes the generator continue after the largest numeric id in c, so ids
// loaded from storage are not reissued after a clock step back.
func (g *ClockGenerator) Seed(c Collection) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, t := range c {
		v, err := strconv.ParseInt(t.ID, 10, 64)
		if err == nil && v > g.last {
			g.last = v
		}
	}
}
