package repository

import (
	"context"
	"fmt"
	"time"

	"carscout/src/model"
)

type (
	// DealershipRepository persists dealership records. Creation and edit
	// require the caller's user record to carry the business flag. There is
	// no delete operation.
	DealershipRepository struct {
		store DocumentStore
		blobs BlobStore
		auth  IdentityProvider
		users *UserRepository
	}

	DealershipFields struct {
		Name        string
		Address     string
		PhoneNumber string
		Email       string
	}
)

func NewDealershipRepository(store DocumentStore, blobs BlobStore, auth IdentityProvider, users *UserRepository) *DealershipRepository {
	return &DealershipRepository{store: store, blobs: blobs, auth: auth, users: users}
}

func (r *DealershipRepository) ListAll(ctx context.Context) ([]model.Dealership, error) {
	docs, err := r.store.List(ctx, collDealerships)
	if err != nil {
		return nil, fmt.Errorf("DealershipRepository.ListAll: %w", err)
	}
	dealerships := make([]model.Dealership, 0, len(docs))
	for _, doc := range docs {
		dealerships = append(dealerships, dealershipFromDocument(doc))
	}
	return dealerships, nil
}

func (r *DealershipRepository) GetByID(ctx context.Context, id string) (model.Dealership, bool, error) {
	doc, ok, err := r.store.Get(ctx, collDealerships, id)
	if err != nil {
		return model.Dealership{}, false, fmt.Errorf("DealershipRepository.GetByID: %w", err)
	}
	if !ok {
		return model.Dealership{}, false, nil
	}
	return dealershipFromDocument(doc), true, nil
}

// Create writes a new dealership owned by the current identity. Only
// business accounts may create dealerships.
func (r *DealershipRepository) Create(ctx context.Context, fields DealershipFields, images []ImageHandle) (string, error) {
	ident, err := r.requireBusiness(ctx)
	if err != nil {
		return "", err
	}
	urls, err := reconcileImages(ctx, r.blobs, ident.ID, nil, images)
	if err != nil {
		return "", fmt.Errorf("DealershipRepository.Create: %w", err)
	}
	doc := dealershipFieldsMap(fields)
	doc["imageUrls"] = urls
	doc["ownerId"] = ident.ID
	doc["createdAt"] = time.Now().UnixMilli()

	id, err := r.store.Add(ctx, collDealerships, doc)
	if err != nil {
		return "", fmt.Errorf("DealershipRepository.Create: %w", err)
	}
	return id, nil
}

// Edit updates the dealership fields and reconciles the image set the same
// way listing updates do. Business accounts only.
func (r *DealershipRepository) Edit(ctx context.Context, id string, fields DealershipFields, images []ImageHandle) error {
	ident, err := r.requireBusiness(ctx)
	if err != nil {
		return err
	}
	existing, found, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("DealershipRepository.Edit %s: %w", id, ErrNotFound)
	}

	urls, err := reconcileImages(ctx, r.blobs, ident.ID, existing.ImageURLs, images)
	if err != nil {
		return fmt.Errorf("DealershipRepository.Edit: %w", err)
	}

	doc := dealershipFieldsMap(fields)
	doc["imageUrls"] = urls
	if err := r.store.Update(ctx, collDealerships, id, doc); err != nil {
		return fmt.Errorf("DealershipRepository.Edit: %w", err)
	}
	return nil
}

// requireBusiness resolves the caller and checks the business flag on their
// user record. An absent record or absent flag counts as not-business.
func (r *DealershipRepository) requireBusiness(ctx context.Context) (Identity, error) {
	ident, ok := r.auth.Current(ctx)
	if !ok {
		return Identity{}, ErrUnauthenticated
	}
	isBusiness, err := r.users.IsBusiness(ctx, ident.ID)
	if err != nil {
		return Identity{}, fmt.Errorf("DealershipRepository: business check: %w", err)
	}
	if !isBusiness {
		return Identity{}, ErrUnauthorized
	}
	return ident, nil
}

func dealershipFieldsMap(f DealershipFields) map[string]any {
	return map[string]any{
		"name":        f.Name,
		"address":     f.Address,
		"phoneNumber": f.PhoneNumber,
		"email":       f.Email,
	}
}
