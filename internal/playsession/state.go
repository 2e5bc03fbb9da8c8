package playsession

import (
	"errors"
	"fmt"
)

// Action is a recorded session activity kind.
type Action string

const (
	ActionStart Action = "Start"
	ActionStop  Action = "Stop"
)

var ErrInvalidAction = errors.New("playsession: action must be Start or Stop")

func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionStart:
		return ActionStart, nil
	case ActionStop:
		return ActionStop, nil
	default:
		return "", ErrInvalidAction
	}
}

// State is the lifecycle position of a session, derived from its
// at-most-two stored activity rows.
type State int

const (
	NoActivity State = iota
	Started
	Stopped
)

func (s State) String() string {
	switch s {
	case Started:
		return "Started"
	case Stopped:
		return "Stopped"
	default:
		return "NoActivity"
	}
}

// Conflict conditions. Each is distinct and reported as-is, never
// merged into the existing record.
var (
	ErrSessionNotFound  = errors.New("playsession: game session not found")
	ErrDuplicateStart   = errors.New("playsession: Start activity already exists for game session")
	ErrStopWithoutStart = errors.New("playsession: unable to stop a session that has not recorded Start")
	ErrDuplicateStop    = errors.New("playsession: Stop activity already exists for game session")
	ErrStartRequired    = errors.New("playsession: cannot finalize a game session without a Start activity")
	ErrStopRequired     = errors.New("playsession: cannot finalize a game session without a Stop activity")
	ErrGameNotFound     = errors.New("playsession: game not found")
)

// StateOf derives the current state from which activity rows exist.
func StateOf(activities []Activity) State {
	var hasStart, hasStop bool
	for _, a := range activities {
		switch a.Action {
		case ActionStart:
			hasStart = true
		case ActionStop:
			hasStop = true
		}
	}
	switch {
	case hasStart && hasStop:
		return Stopped
	case hasStart:
		return Started
	default:
		return NoActivity
	}
}

// Transition applies an action to a state, returning the next state or
// a typed conflict. It is a pure function.
func (s State) Transition(a Action) (State, error) {
	switch a {
	case ActionStart:
		if s != NoActivity {
			return s, ErrDuplicateStart
		}
		return Started, nil
	case ActionStop:
		switch s {
		case NoActivity:
			return s, ErrStopWithoutStart
		case Stopped:
			return s, ErrDuplicateStop
		default:
			return Stopped, nil
		}
	default:
		return s, fmt.Errorf("%w: %q", ErrInvalidAction, a)
	}
}
