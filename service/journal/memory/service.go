package memory

import (
	"context"

	"github.com/MezMezMezMez/P2/service/dao"
	"github.com/MezMezMezMez/P2/service/dao/criteria"
	"github.com/MezMezMezMez/P2/service/dao/store"
	"github.com/MezMezMezMez/P2/service/journal"
)

// Service implements an in-memory, thread-safe run-record store. It embeds
// the generic memory store and narrows List with slot filtering.
type Service struct {
	*store.MemoryStore[string, journal.RunRecord]
}

var _ dao.Service[string, journal.RunRecord] = (*Service)(nil)

// Save persists the supplied record.
func (s *Service) Save(ctx context.Context, record *journal.RunRecord) error {
	if record == nil {
		return dao.ErrNilEntity
	}
	if record.ID == "" {
		return dao.ErrInvalidID
	}
	return s.MemoryStore.Save(ctx, record)
}

// List returns all records passing the supplied parameters; use
// dao.NewParameter("Slot", n) to narrow to a single instance.
func (s *Service) List(ctx context.Context, parameters ...*dao.Parameter) ([]*journal.RunRecord, error) {
	records, err := s.MemoryStore.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*journal.RunRecord, 0, len(records))
	for _, record := range records {
		if !criteria.FilterBySlot(record.Slot, parameters) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

// New constructor.
func New() *Service {
	return &Service{
		MemoryStore: store.NewMemoryStore[string, journal.RunRecord](func(r *journal.RunRecord) string {
			return r.ID
		}),
	}
}
