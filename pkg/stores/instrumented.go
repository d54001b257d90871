package stores

import (
	"context"
	"errors"

	"github.com/todolist/todolist/pkg/items"
	"github.com/todolist/todolist/pkg/telemetry"
)

// InstrumentedStore decorates an ItemStore with logging, tracing, metrics, and events.
type InstrumentedStore struct {
	next ItemStore
	tel  *telemetry.Telemetry
}

// NewInstrumentedStore wraps next with the given telemetry.
func NewInstrumentedStore(next ItemStore, tel *telemetry.Telemetry) *InstrumentedStore {
	return &InstrumentedStore{
		next: next,
		tel:  tel,
	}
}

// ListAll implements ItemStore.
func (s *InstrumentedStore) ListAll(ctx context.Context) ([]items.Item, error) {
	op := s.tel.StartOperation(ctx, OpListAll)
	all, err := s.next.ListAll(op.Ctx)
	if err == nil {
		op.Span.SetAttributes(telemetry.AttrItemCount.Int(len(all)))
		s.tel.Metrics.SetItemsListed(len(all))
	}
	s.finish(op, op.Logger, err)
	return all, err
}

// ClearAll implements ItemStore.
func (s *InstrumentedStore) ClearAll(ctx context.Context) error {
	op := s.tel.StartOperation(ctx, OpClearAll)
	err := s.next.ClearAll(op.Ctx)
	if err == nil {
		op.Logger.NewComponentLogger("stores").Info("all items cleared")
		_ = s.tel.Events.PublishItemsCleared()
	}
	s.finish(op, op.Logger, err)
	return err
}

// FindByID implements ItemStore.
func (s *InstrumentedStore) FindByID(ctx context.Context, id int64) (items.Item, error) {
	op := s.tel.StartOperation(ctx, OpFindByID, telemetry.AttrItemID.Int64(id))
	item, err := s.next.FindByID(op.Ctx, id)
	if errors.Is(err, ErrNotFound) {
		_ = s.tel.Events.PublishItemNotFound(id)
	}
	s.finish(op, op.Logger.WithItemID(id), err)
	return item, err
}

// Save implements ItemStore.
func (s *InstrumentedStore) Save(ctx context.Context, item items.Item) (items.Item, error) {
	op := s.tel.StartOperation(ctx, OpSave)
	saved, err := s.next.Save(op.Ctx, item)
	logger := op.Logger
	if err == nil {
		op.Span.SetAttributes(telemetry.AttrItemID.Int64(saved.ID))
		logger = logger.WithItemID(saved.ID)
		_ = s.tel.Events.PublishItemSaved(saved.ID, saved.Description)
	}
	s.finish(op, logger, err)
	return saved, err
}

// finish ends op and logs its outcome through logger, which carries the
// operation's fields.
func (s *InstrumentedStore) finish(op *telemetry.InstrumentedContext, logger *telemetry.Logger, err error) {
	op.End(err)

	logger = logger.NewComponentLogger("stores").WithField("duration", op.Timer.Duration().String())
	switch {
	case err == nil:
		logger.Debug("store operation completed")
	case IsStorageError(err):
		_ = s.tel.Events.PublishStorageFailed(op.Operation(), err)
		logger.WithError(err).Error("store operation failed")
	default:
		logger.WithError(err).Debug("store operation rejected")
	}
}
