package clock

import (
	"sync/atomic"
	"time"
)

// Clock supplies the current time to the staking pool as unix seconds.
// It is an injected collaborator so transitions can be driven through
// arbitrary points of the lock and accrual timeline in tests.
type Clock interface {
	Now() int64
}

type systemClock struct{}

func (systemClock) Now() int64 {
	return time.Now().Unix()
}

// System returns a Clock backed by the wall clock.
func System() Clock {
	return systemClock{}
}

// Manual is a hand-driven Clock for tests. The zero value starts at 0.
type Manual struct {
	now atomic.Int64
}

func NewManual(start int64) *Manual {
	m := &Manual{}
	m.now.Store(start)
	return m
}

func (m *Manual) Now() int64 {
	return m.now.Load()
}

func (m *Manual) Set(t int64) {
	m.now.Store(t)
}

func (m *Manual) Advance(d time.Duration) {
	m.now.Add(int64(d.Seconds()))
}
