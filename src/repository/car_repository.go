package repository

import (
	"context"
	"fmt"
	"time"

	"carscout/src/model"
)

type (
	// CarRepository persists vehicle listings in the document store and
	// their images in the blob store.
	CarRepository struct {
		store DocumentStore
		blobs BlobStore
		auth  IdentityProvider
	}

	// CarFields are the caller-editable fields of a listing. Owner and
	// creation timestamp are stamped by the repository and never change.
	CarFields struct {
		Manufacturer string
		Model        string
		Year         int
		Mileage      int
		Condition    string
		Description  string
		Price        float64
	}
)

func NewCarRepository(store DocumentStore, blobs BlobStore, auth IdentityProvider) *CarRepository {
	return &CarRepository{store: store, blobs: blobs, auth: auth}
}

// ListAll fetches the entire listings collection. No pagination.
func (r *CarRepository) ListAll(ctx context.Context) ([]model.Car, error) {
	docs, err := r.store.List(ctx, collListings)
	if err != nil {
		return nil, fmt.Errorf("CarRepository.ListAll: %w", err)
	}
	cars := make([]model.Car, 0, len(docs))
	for _, doc := range docs {
		cars = append(cars, carFromDocument(doc))
	}
	return cars, nil
}

// GetByID looks up one listing. An absent record is reported through the
// found flag, not an error.
func (r *CarRepository) GetByID(ctx context.Context, id string) (model.Car, bool, error) {
	doc, ok, err := r.store.Get(ctx, collListings, id)
	if err != nil {
		return model.Car{}, false, fmt.Errorf("CarRepository.GetByID: %w", err)
	}
	if !ok {
		return model.Car{}, false, nil
	}
	return carFromDocument(doc), true, nil
}

// Create uploads the images, then writes a new listing owned by the current
// identity. Returns the id assigned by the store.
func (r *CarRepository) Create(ctx context.Context, fields CarFields, images []ImageHandle) (string, error) {
	ident, ok := r.auth.Current(ctx)
	if !ok {
		return "", ErrUnauthenticated
	}
	urls, err := reconcileImages(ctx, r.blobs, ident.ID, nil, images)
	if err != nil {
		return "", fmt.Errorf("CarRepository.Create: %w", err)
	}
	doc := carFieldsMap(fields)
	doc["imageUrls"] = urls
	doc["ownerId"] = ident.ID
	doc["createdAt"] = time.Now().UnixMilli()

	id, err := r.store.Add(ctx, collListings, doc)
	if err != nil {
		return "", fmt.Errorf("CarRepository.Create: %w", err)
	}
	return id, nil
}

// Update reconciles the image set (see reconcileImages) and writes the merged
// fields. It never panics or propagates a raw failure to keep the
// boolean-success shape: the returned error carries the cause, the bool says
// whether the write landed.
func (r *CarRepository) Update(ctx context.Context, id string, fields CarFields, images []ImageHandle) (bool, error) {
	ident, ok := r.auth.Current(ctx)
	if !ok {
		return false, ErrUnauthenticated
	}
	existing, found, err := r.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	if !found {
		return false, fmt.Errorf("CarRepository.Update %s: %w", id, ErrNotFound)
	}

	urls, err := reconcileImages(ctx, r.blobs, ident.ID, existing.ImageURLs, images)
	if err != nil {
		return false, fmt.Errorf("CarRepository.Update: %w", err)
	}

	doc := carFieldsMap(fields)
	doc["imageUrls"] = urls
	if err := r.store.Update(ctx, collListings, id, doc); err != nil {
		return false, fmt.Errorf("CarRepository.Update: %w", err)
	}
	return true, nil
}

// Delete removes the listing. Backend errors propagate to the caller;
// deleting an absent listing is absorbed by the store.
func (r *CarRepository) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, collListings, id); err != nil {
		return fmt.Errorf("CarRepository.Delete: %w", err)
	}
	return nil
}

func carFieldsMap(f CarFields) map[string]any {
	return map[string]any{
		"manufacturer": f.Manufacturer,
		"model":        f.Model,
		"year":         f.Year,
		"mileage":      f.Mileage,
		"condition":    f.Condition,
		"description":  f.Description,
		"price":        f.Price,
	}
}
