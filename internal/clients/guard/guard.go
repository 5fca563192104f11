package guard

import "sync/atomic"

// Gate is the access and pause collaborator consulted before transitions:
// deposits are blocked while paused, administrative operations are
// restricted to the owner.
type Gate interface {
	IsPaused() bool
	IsOwner(caller string) bool
	Pause()
	Unpause()
}

// StaticGate is a Gate with a fixed owner identity and an in-process
// pause flag. Ownership is set at construction and never governed
// afterwards.
type StaticGate struct {
	owner  string
	paused atomic.Bool
}

func NewStaticGate(owner string) *StaticGate {
	return &StaticGate{owner: owner}
}

func (g *StaticGate) IsPaused() bool {
	return g.paused.Load()
}

func (g *StaticGate) IsOwner(caller string) bool {
	return g.owner != "" && caller == g.owner
}

func (g *StaticGate) Pause() {
	g.paused.Store(true)
}

func (g *StaticGate) Unpause() {
	g.paused.Store(false)
}
