package swap

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		role    Role
		action  Action
		strict  bool
		want    Status
		wantErr error
	}{
		{"provider accepts pending", StatusPending, RoleProvider, ActionAccept, false, StatusAccepted, nil},
		{"provider rejects pending", StatusPending, RoleProvider, ActionReject, false, StatusRejected, nil},
		{"requester cancels pending", StatusPending, RoleRequester, ActionCancel, false, StatusCancelled, nil},
		{"requester cannot accept", StatusPending, RoleRequester, ActionAccept, false, "", ErrWrongRole},
		{"provider cannot cancel", StatusPending, RoleProvider, ActionCancel, false, "", ErrWrongRole},
		{"stranger cannot act", StatusPending, RoleNone, ActionAccept, false, "", ErrNotParticipant},
		{"accepted cannot be rejected", StatusAccepted, RoleProvider, ActionReject, false, "", ErrInvalidTransition},
		{"cancelled is terminal", StatusCancelled, RoleRequester, ActionCancel, false, "", ErrInvalidTransition},
		{"completed cannot be accepted", StatusCompleted, RoleProvider, ActionAccept, false, "", ErrInvalidTransition},
		{"unknown action", StatusPending, RoleProvider, Action("archive"), false, "", ErrUnknownAction},
		{"lenient feedback on pending", StatusPending, RoleRequester, ActionComplete, false, StatusCompleted, nil},
		{"lenient feedback on rejected", StatusRejected, RoleProvider, ActionComplete, false, StatusCompleted, nil},
		{"strict feedback on accepted", StatusAccepted, RoleRequester, ActionComplete, true, StatusCompleted, nil},
		{"strict feedback on completed", StatusCompleted, RoleProvider, ActionComplete, true, StatusCompleted, nil},
		{"strict feedback on pending", StatusPending, RoleRequester, ActionComplete, true, "", ErrInvalidTransition},
		{"stranger cannot rate", StatusAccepted, RoleNone, ActionComplete, false, "", ErrNotParticipant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.from, tt.role, tt.action, tt.strict)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRoleOf(t *testing.T) {
	s := &SwapRequest{RequesterID: uuid.New(), ProviderID: uuid.New()}
	assert.Equal(t, RoleRequester, RoleOf(s, s.RequesterID))
	assert.Equal(t, RoleProvider, RoleOf(s, s.ProviderID))
	assert.Equal(t, RoleNone, RoleOf(s, uuid.New()))
	assert.True(t, StatusRejected.Terminal())
	assert.False(t, StatusAccepted.Terminal())
}
