package rating

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/skillswap/internal/testutil"
	"github.com/DhavalSuthar-24/skillswap/internal/user"
)

func TestMean(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   float64
	}{
		{"empty", nil, 0},
		{"single", []int{4}, 4},
		{"rounds down", []int{4, 5, 5}, 4.7},
		{"rounds half up", []int{1, 2}, 1.5},
		{"thirds", []int{1, 1, 2}, 1.3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Mean(tt.scores))
		})
	}
}

func TestRepository(t *testing.T) {
	db := testutil.NewDB(t, &user.User{}, &Rating{})
	repo := NewRatingRepository(db)
	ctx := context.Background()

	ada := testutil.CreateUser(t, db, "Ada", "ada@example.com")
	bob := testutil.CreateUser(t, db, "Bob", "bob@example.com")
	swapID := uuid.New()

	require.NoError(t, repo.Create(ctx, &Rating{SwapRequestID: swapID, RaterID: ada.ID, RatedID: bob.ID, Rating: 5, Feedback: "great"}))
	assert.ErrorIs(t, repo.Create(ctx, &Rating{SwapRequestID: swapID, RaterID: ada.ID, RatedID: bob.ID, Rating: 1}), ErrDuplicateRating)
	require.NoError(t, repo.Create(ctx, &Rating{SwapRequestID: swapID, RaterID: bob.ID, RatedID: ada.ID, Rating: 3}))
	require.NoError(t, repo.Create(ctx, &Rating{SwapRequestID: uuid.New(), RaterID: ada.ID, RatedID: bob.ID, Rating: 4}))

	received, err := repo.ListReceived(ctx, bob.ID)
	require.NoError(t, err)
	require.Len(t, received, 2)
	require.NotNil(t, received[0].Rater)
	assert.Equal(t, "Ada", received[0].Rater.FullName)
	assert.Equal(t, 4.5, MeanOf(received))

	scores, err := repo.ScoresFor(ctx, []uuid.UUID{ada.ID, bob.ID, uuid.New()})
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{5, 4}, scores[bob.ID])
	assert.Equal(t, []int{3}, scores[ada.ID])

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
