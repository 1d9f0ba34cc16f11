package consent

import (
	"errors"
	"time"
)

// ErrInvalidAction is returned by Decide for an unknown action.
var ErrInvalidAction = errors.New("consent: invalid action")

// Status is the visitor's overall decision.
type Status string

const (
	StatusPending Status = "pending"
	StatusGranted Status = "granted"
	StatusDenied  Status = "denied"
	StatusCustom  Status = "custom"
)

// Action is what the visitor chose in the banner.
type Action string

const (
	ActionAccept Action = "accept"
	ActionReject Action = "reject"
	ActionCustom Action = "custom"
)

// State is the consent record stored in the cookie.
type State struct {
	UpdatedAt time.Time `json:"updatedAt,omitzero"`
	ID        string    `json:"id,omitempty"`
	Status    Status    `json:"status"`
	Version   string    `json:"version"`
	Analytics bool      `json:"analytics"`
	Marketing bool      `json:"marketing"`
}

// Pending returns the state of a visitor who has not decided yet.
func Pending(version string) State {
	return State{Status: StatusPending, Version: version}
}

// Decided reports whether the visitor made a choice.
func (s State) Decided() bool {
	return s.Status != "" && s.Status != StatusPending
}

// Current returns s as seen under policy version. A decision recorded for
// another version is reset to pending; the id is kept.
func (s State) Current(version string) State {
	if !s.Decided() {
		p := Pending(version)
		p.ID = s.ID
		return p
	}
	if s.Version != version {
		return State{ID: s.ID, Status: StatusPending, Version: version, UpdatedAt: s.UpdatedAt}
	}
	return s
}

// Decide applies action. Categories are only read for ActionCustom.
func (s State) Decide(action Action, analytics, marketing bool, version string, now time.Time) (State, error) {
	next := State{ID: s.ID, Version: version, UpdatedAt: now.UTC()}

	switch action {
	case ActionAccept:
		next.Status = StatusGranted
		next.Analytics, next.Marketing = true, true
	case ActionReject:
		next.Status = StatusDenied
	case ActionCustom:
		next.Status = StatusCustom
		next.Analytics, next.Marketing = analytics, marketing
	default:
		return s, ErrInvalidAction
	}

	return next, nil
}

// Withdraw revokes every category.
func (s State) Withdraw(version string, now time.Time) State {
	return State{ID: s.ID, Status: StatusDenied, Version: version, UpdatedAt: now.UTC()}
}

// Allows reports whether category ("analytics" or "marketing") may be used.
func (s State) Allows(category string) bool {
	if !s.Decided() {
		return false
	}
	switch category {
	case "analytics":
		return s.Analytics
	case "marketing":
		return s.Marketing
	default:
		return false
	}
}
