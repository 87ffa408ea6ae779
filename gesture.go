package quickswipe

import (
	"sync/atomic"

	"github.com/google/uuid"
)

// GestureStateFlag is a bit in GestureState's flag set.
type GestureStateFlag uint32

const (
	StateOverscrollWindowCreated GestureStateFlag = 1 << iota // overscroll window took over
	StateRecentsAnimationStarted
	StateRecentsAnimationCanceled
	StateRecentsAnimationFinished
)

// GestureState describes one gesture. The input core reads it and never
// mutates it; the interaction handler sets flags.
type GestureState struct {
	id      uuid.UUID
	navBar  NavBarPosition
	navMode NavMode
	flags   atomic.Uint32
}

// NewGestureState creates a state with a fresh gesture id.
func NewGestureState(navBar NavBarPosition, navMode NavMode) *GestureState {
	return &GestureState{id: uuid.New(), navBar: navBar, navMode: navMode}
}

// ID returns the gesture identifier.
func (g *GestureState) ID() uuid.UUID { return g.id }

// NavBarPosition returns the edge the navigation bar is on.
func (g *GestureState) NavBarPosition() NavBarPosition { return g.navBar }

// NavMode returns the navigation mode.
func (g *GestureState) NavMode() NavMode { return g.navMode }

// SetState sets the given flags.
func (g *GestureState) SetState(f GestureStateFlag) {
	g.flags.Or(uint32(f))
}

// ClearState clears the given flags.
func (g *GestureState) ClearState(f GestureStateFlag) {
	g.flags.And(^uint32(f))
}

// HasState reports whether every bit in f is set.
func (g *GestureState) HasState(f GestureStateFlag) bool {
	return GestureStateFlag(g.flags.Load())&f == f
}

// LaunchIntent describes the activity the system starts for the recents
// animation.
type LaunchIntent struct {
	Target    string
	GestureID uuid.UUID
}
