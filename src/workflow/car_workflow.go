package workflow

import (
	"context"
	"sync/atomic"

	"carscout/src/model"
	"carscout/src/repository"
)

// ManufacturerAll is the filter sentinel meaning "no manufacturer filter".
const ManufacturerAll = "All"

// CarWorkflow orchestrates the listing screens: it sequences repository
// calls one at a time, publishes results through observables, and is bound
// to the lifetime of the screen that owns it. Close cancels whatever is in
// flight and closes the observables, so a late result is dropped rather
// than delivered into a dead holder.
type CarWorkflow struct {
	repo *repository.CarRepository
	auth repository.IdentityProvider

	ctx    context.Context
	cancel context.CancelFunc
	busy   atomic.Bool

	Items      *Observable[[]model.Car]
	Current    *Observable[model.Car]
	Loading    *Observable[bool]
	LastStatus *Observable[Status]
}

// NewCarWorkflow binds a workflow to the owning scope's context.
func NewCarWorkflow(ctx context.Context, repo *repository.CarRepository, auth repository.IdentityProvider) *CarWorkflow {
	scoped, cancel := context.WithCancel(ctx)
	return &CarWorkflow{
		repo:       repo,
		auth:       auth,
		ctx:        scoped,
		cancel:     cancel,
		Items:      NewObservable[[]model.Car](),
		Current:    NewObservable[model.Car](),
		Loading:    NewObservable[bool](),
		LastStatus: NewObservable[Status](),
	}
}

// Close tears the workflow down.
func (w *CarWorkflow) Close() {
	w.cancel()
	w.Items.Close()
	w.Current.Close()
	w.Loading.Close()
	w.LastStatus.Close()
}

// LoadAll replaces Items with a fresh fetch of the whole collection.
func (w *CarWorkflow) LoadAll() {
	if !w.begin() {
		return
	}
	defer w.finish()

	cars, err := w.repo.ListAll(w.ctx)
	if w.done() {
		return
	}
	if err != nil {
		w.LastStatus.Set(StatusFromError(err))
		return
	}
	w.Items.Set(cars)
}

// LoadOne replaces Current with a point lookup.
func (w *CarWorkflow) LoadOne(id string) {
	if !w.begin() {
		return
	}
	defer w.finish()

	car, found, err := w.repo.GetByID(w.ctx, id)
	if w.done() {
		return
	}
	if err != nil {
		w.LastStatus.Set(StatusFromError(err))
		return
	}
	if !found {
		w.LastStatus.Set(ErrStatus(StatusNotFound, "listing not found"))
		return
	}
	w.Current.Set(car)
}

// Add validates the input, then creates the listing. On success LastStatus
// carries the new id.
func (w *CarWorkflow) Add(in CarInput, images []repository.ImageHandle) {
	fields, err := in.validate(len(images))
	if err != nil {
		w.LastStatus.Set(StatusFromError(err))
		return
	}
	if !w.begin() {
		return
	}
	defer w.finish()

	id, err := w.repo.Create(w.ctx, fields, images)
	if w.done() {
		return
	}
	if err != nil {
		w.LastStatus.Set(StatusFromError(err))
		return
	}
	w.LastStatus.Set(CreatedStatus("listing created", id))
}

// Update validates, writes, and on success reloads the record so Current
// reflects the store's view rather than the submitted form.
func (w *CarWorkflow) Update(id string, in CarInput, images []repository.ImageHandle) {
	fields, err := in.validate(len(images))
	if err != nil {
		w.LastStatus.Set(StatusFromError(err))
		return
	}
	if !w.begin() {
		return
	}
	defer w.finish()

	ok, err := w.repo.Update(w.ctx, id, fields, images)
	if w.done() {
		return
	}
	if !ok {
		w.LastStatus.Set(StatusFromError(err))
		return
	}
	if car, found, err := w.repo.GetByID(w.ctx, id); err == nil && found && !w.done() {
		w.Current.Set(car)
	}
	w.LastStatus.Set(OkStatus("listing updated"))
}

// Delete removes the listing.
func (w *CarWorkflow) Delete(id string) {
	if !w.begin() {
		return
	}
	defer w.finish()

	if err := w.repo.Delete(w.ctx, id); err != nil {
		if w.done() {
			return
		}
		w.LastStatus.Set(StatusFromError(err))
		return
	}
	if w.done() {
		return
	}
	w.LastStatus.Set(OkStatus("listing deleted"))
}

// Filter fetches the full collection and applies the optional predicates
// client-side, replacing Items. The store exposes no query pushdown.
func (w *CarWorkflow) Filter(manufacturer string, minPrice, maxPrice *float64) {
	if !w.begin() {
		return
	}
	defer w.finish()

	cars, err := w.repo.ListAll(w.ctx)
	if w.done() {
		return
	}
	if err != nil {
		w.LastStatus.Set(StatusFromError(err))
		return
	}

	filtered := make([]model.Car, 0, len(cars))
	for _, car := range cars {
		if manufacturer != "" && manufacturer != ManufacturerAll && car.Manufacturer != manufacturer {
			continue
		}
		if minPrice != nil && car.Price < *minPrice {
			continue
		}
		if maxPrice != nil && car.Price > *maxPrice {
			continue
		}
		filtered = append(filtered, car)
	}
	w.Items.Set(filtered)
}

// FilterByOwner replaces Items with the caller's own listings.
func (w *CarWorkflow) FilterByOwner(userID string) {
	if !w.begin() {
		return
	}
	defer w.finish()

	cars, err := w.repo.ListAll(w.ctx)
	if w.done() {
		return
	}
	if err != nil {
		w.LastStatus.Set(StatusFromError(err))
		return
	}

	owned := make([]model.Car, 0, len(cars))
	for _, car := range cars {
		if car.OwnerID == userID {
			owned = append(owned, car)
		}
	}
	w.Items.Set(owned)
}

// IsOwner reports whether the given owner id belongs to the current
// identity. No identity means false, never an error.
func (w *CarWorkflow) IsOwner(ownerID string) bool {
	ident, ok := w.auth.Current(w.ctx)
	return ok && ident.ID == ownerID
}

// begin flips the single-flight gate. Operations attempted while another one
// is outstanding are refused; the screens disable their controls while
// Loading is true, so this only triggers on misuse.
func (w *CarWorkflow) begin() bool {
	if !w.busy.CompareAndSwap(false, true) {
		w.LastStatus.Set(ErrStatus(StatusValidation, "another operation is still in progress"))
		return false
	}
	w.Loading.Set(true)
	return true
}

func (w *CarWorkflow) finish() {
	w.Loading.Set(false)
	w.busy.Store(false)
}

// done reports whether the owning scope was torn down mid-call.
func (w *CarWorkflow) done() bool {
	return w.ctx.Err() != nil
}
