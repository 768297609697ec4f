package auth

import (
	"context"

	"github.com/google/uuid"

	"github.com/DhavalSuthar-24/skillswap/internal/user"
)

// AuthRepository is the slice of member storage the identity provider needs.
// user.UserRepository satisfies it.
type AuthRepository interface {
	CreateUser(ctx context.Context, u *user.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*user.User, error)
	GetUserByEmail(ctx context.Context, email string) (*user.User, error)

	SaveRefreshToken(ctx context.Context, token *user.RefreshToken) error
	GetRefreshToken(ctx context.Context, tokenString string) (*user.RefreshToken, error)
	RevokeAllRefreshTokens(ctx context.Context, userID uuid.UUID) error
}

// AdminChecker reports whether a member holds an admin grant.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
}
