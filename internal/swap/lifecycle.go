package swap

import (
	"errors"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusRejected  Status = "rejected"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

// Terminal reports whether no accept, reject or cancel may follow.
func (s Status) Terminal() bool {
	return s == StatusRejected || s == StatusCancelled || s == StatusCompleted
}

// Role is how the acting member relates to a swap request.
type Role string

const (
	RoleNone      Role = ""
	RoleRequester Role = "requester"
	RoleProvider  Role = "provider"
)

type Action string

const (
	ActionAccept   Action = "accept"
	ActionReject   Action = "reject"
	ActionCancel   Action = "cancel"
	ActionComplete Action = "complete"
)

var (
	ErrNotParticipant    = errors.New("not a participant of this swap request")
	ErrWrongRole         = errors.New("you cannot perform this action on this swap request")
	ErrInvalidTransition = errors.New("swap request is not in a state that allows this action")
	ErrStaleStatus       = errors.New("swap request was changed by someone else, reload and try again")
	ErrUnknownAction     = errors.New("unknown action")
)

type transitionKey struct {
	from   Status
	role   Role
	action Action
}

// Respond transitions. Completion is handled separately in Transition because it
// depends on the feedback policy.
var transitions = map[transitionKey]Status{
	{StatusPending, RoleProvider, ActionAccept}:  StatusAccepted,
	{StatusPending, RoleProvider, ActionReject}:  StatusRejected,
	{StatusPending, RoleRequester, ActionCancel}: StatusCancelled,
}

// actionRoles names the only role allowed to take each respond action.
var actionRoles = map[Action]Role{
	ActionAccept: RoleProvider,
	ActionReject: RoleProvider,
	ActionCancel: RoleRequester,
}

// RoleOf returns the role of userID on the request.
func RoleOf(s *SwapRequest, userID uuid.UUID) Role {
	switch userID {
	case s.RequesterID:
		return RoleRequester
	case s.ProviderID:
		return RoleProvider
	default:
		return RoleNone
	}
}

// Transition returns the status that follows current when role takes action.
// With strict set, completion requires an accepted (or already completed) request;
// otherwise feedback completes the request from any status.
func Transition(current Status, role Role, action Action, strict bool) (Status, error) {
	if role == RoleNone {
		return "", ErrNotParticipant
	}

	if action == ActionComplete {
		if strict && current != StatusAccepted && current != StatusCompleted {
			return "", ErrInvalidTransition
		}
		return StatusCompleted, nil
	}

	allowed, known := actionRoles[action]
	if !known {
		return "", ErrUnknownAction
	}
	if allowed != role {
		return "", ErrWrongRole
	}
	next, ok := transitions[transitionKey{current, role, action}]
	if !ok {
		return "", ErrInvalidTransition
	}
	return next, nil
}
