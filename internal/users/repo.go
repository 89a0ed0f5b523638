package users

import "context"

// Repo defines persistence operations for users. Email uniqueness is
// enforced by the store and surfaced as ErrEmailTaken.
type Repo interface {
	Create(ctx context.Context, user User) (int64, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, userID int64) (User, error)
}
