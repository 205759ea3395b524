package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/carex-health/carex-api/internal/model"
	"github.com/carex-health/carex-api/internal/store"
)

type userRepository struct {
	store      store.Store
	collection string
}

func NewUserRepository(s store.Store, collection string) UserRepository {
	return &userRepository{store: s, collection: collection}
}

func (r *userRepository) Create(ctx context.Context, user *model.UserAccount) error {
	if err := r.store.Create(ctx, r.collection, user.ID, user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) Get(ctx context.Context, id uuid.UUID) (*model.UserAccount, error) {
	var user model.UserAccount
	if err := r.store.Get(ctx, r.collection, id, &user); err != nil {
		if err == store.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

// FindByEmail returns the first account with an exact email match, or
// store.ErrNotFound. Email is the resolution key; duplicates created by
// racing submissions resolve to whichever the store lists first.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.UserAccount, error) {
	var users []*model.UserAccount
	filters := []store.Filter{{Field: "email", Value: email}}
	if err := r.store.List(ctx, r.collection, filters, &users); err != nil {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}
	if len(users) == 0 {
		return nil, store.ErrNotFound
	}
	return users[0], nil
}
