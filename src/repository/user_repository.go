package repository

import (
	"context"
	"fmt"
	"time"

	"carscout/src/model"
)

type (
	// UserRepository persists user profile documents keyed by the auth
	// identity.
	UserRepository struct {
		store DocumentStore
	}

	// ProfileFields are the fields the profile screen may change. The
	// business flag and credentials are set at registration and never
	// touched by a merge.
	ProfileFields struct {
		Name      string
		Email     string
		City      string
		AvatarURL string
	}
)

func NewUserRepository(store DocumentStore) *UserRepository {
	return &UserRepository{store: store}
}

// Create writes the profile document at registration time.
func (r *UserRepository) Create(ctx context.Context, id, email, passwordHash string, isBusiness bool) error {
	fields := map[string]any{
		"email":        email,
		"isBusiness":   isBusiness,
		"passwordHash": passwordHash,
		"createdAt":    time.Now().UnixMilli(),
	}
	if err := r.store.Set(ctx, collUsers, id, fields); err != nil {
		return fmt.Errorf("UserRepository.Create: %w", err)
	}
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id string) (model.User, bool, error) {
	doc, ok, err := r.store.Get(ctx, collUsers, id)
	if err != nil {
		return model.User{}, false, fmt.Errorf("UserRepository.Get: %w", err)
	}
	if !ok {
		return model.User{}, false, nil
	}
	return userFromDocument(doc), true, nil
}

// Merge applies the profile fields as a partial update, leaving the
// registration-time fields alone.
func (r *UserRepository) Merge(ctx context.Context, id string, fields ProfileFields) error {
	update := map[string]any{
		"name":      fields.Name,
		"email":     fields.Email,
		"city":      fields.City,
		"avatarUrl": fields.AvatarURL,
	}
	if err := r.store.Update(ctx, collUsers, id, update); err != nil {
		return fmt.Errorf("UserRepository.Merge: %w", err)
	}
	return nil
}

// IsBusiness reports the business flag of the user record. A missing record
// or missing flag reads as false.
func (r *UserRepository) IsBusiness(ctx context.Context, id string) (bool, error) {
	user, ok, err := r.Get(ctx, id)
	if err != nil || !ok {
		return false, err
	}
	return user.IsBusiness, nil
}

// FindByEmail scans the users collection for a matching email. The store
// exposes no secondary queries, so this is a full-collection scan, same as
// the client-side filtering on listings.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (model.User, bool, error) {
	docs, err := r.store.List(ctx, collUsers)
	if err != nil {
		return model.User{}, false, fmt.Errorf("UserRepository.FindByEmail: %w", err)
	}
	for _, doc := range docs {
		user := userFromDocument(doc)
		if user.Email == email {
			return user, true, nil
		}
	}
	return model.User{}, false, nil
}
