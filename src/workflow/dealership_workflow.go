package workflow

import (
	"context"
	"sync/atomic"

	"carscout/src/model"
	"carscout/src/repository"
)

// DealershipWorkflow mirrors CarWorkflow for the dealership screens. There
// is no delete operation; business-account failures surface as an
// unauthorized status.
type DealershipWorkflow struct {
	repo *repository.DealershipRepository
	auth repository.IdentityProvider

	ctx    context.Context
	cancel context.CancelFunc
	busy   atomic.Bool

	Items      *Observable[[]model.Dealership]
	Current    *Observable[model.Dealership]
	Loading    *Observable[bool]
	LastStatus *Observable[Status]
}

func NewDealershipWorkflow(ctx context.Context, repo *repository.DealershipRepository, auth repository.IdentityProvider) *DealershipWorkflow {
	scoped, cancel := context.WithCancel(ctx)
	return &DealershipWorkflow{
		repo:       repo,
		auth:       auth,
		ctx:        scoped,
		cancel:     cancel,
		Items:      NewObservable[[]model.Dealership](),
		Current:    NewObservable[model.Dealership](),
		Loading:    NewObservable[bool](),
		LastStatus: NewObservable[Status](),
	}
}

func (w *DealershipWorkflow) Close() {
	w.cancel()
	w.Items.Close()
	w.Current.Close()
	w.Loading.Close()
	w.LastStatus.Close()
}

func (w *DealershipWorkflow) LoadAll() {
	if !w.begin() {
		return
	}
	defer w.finish()

	dealerships, err := w.repo.ListAll(w.ctx)
	if w.done() {
		return
	}
	if err != nil {
		w.LastStatus.Set(StatusFromError(err))
		return
	}
	w.Items.Set(dealerships)
}

func (w *DealershipWorkflow) LoadOne(id string) {
	if !w.begin() {
		return
	}
	defer w.finish()

	dealership, found, err := w.repo.GetByID(w.ctx, id)
	if w.done() {
		return
	}
	if err != nil {
		w.LastStatus.Set(StatusFromError(err))
		return
	}
	if !found {
		w.LastStatus.Set(ErrStatus(StatusNotFound, "dealership not found"))
		return
	}
	w.Current.Set(dealership)
}

func (w *DealershipWorkflow) Add(in DealershipInput, images []repository.ImageHandle) {
	fields, err := in.validate()
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
	w.LastStatus.Set(CreatedStatus("dealership created", id))
}

// Update edits the dealership and reloads it into Current on success.
func (w *DealershipWorkflow) Update(id string, in DealershipInput, images []repository.ImageHandle) {
	fields, err := in.validate()
	if err != nil {
		w.LastStatus.Set(StatusFromError(err))
		return
	}
	if !w.begin() {
		return
	}
	defer w.finish()

	if err := w.repo.Edit(w.ctx, id, fields, images); err != nil {
		if w.done() {
			return
		}
		w.LastStatus.Set(StatusFromError(err))
		return
	}
	if w.done() {
		return
	}
	if dealership, found, err := w.repo.GetByID(w.ctx, id); err == nil && found && !w.done() {
		w.Current.Set(dealership)
	}
	w.LastStatus.Set(OkStatus("dealership updated"))
}

func (w *DealershipWorkflow) IsOwner(ownerID string) bool {
	ident, ok := w.auth.Current(w.ctx)
	return ok && ident.ID == ownerID
}

func (w *DealershipWorkflow) begin() bool {
	if !w.busy.CompareAndSwap(false, true) {
		w.LastStatus.Set(ErrStatus(StatusValidation, "another operation is still in progress"))
		return false
	}
	w.Loading.Set(true)
	return true
}

func (w *DealershipWorkflow) finish() {
	w.Loading.Set(false)
	w.busy.Store(false)
}

func (w *DealershipWorkflow) done() bool {
	return w.ctx.Err() != nil
}
