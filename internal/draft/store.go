// Package draft owns the lifecycle of in-progress operation drafts:
// lazy creation, section reads and wholesale writes, vuelta list
// mutation, submission to the collector and disposal.
package draft

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/collector"
	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/domain"
	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/storage"
)

// Identity is the ambient user captured into every new draft.
type Identity struct {
	UserID   string
	UserName string
}

// Store mediates all access to stored drafts. A single mutex
// serializes mutations; writes are load-replace-store with no version
// check, so two callers racing on the same key get last-writer-wins.
// That matches the single-active-session assumption of the original
// design and is a documented limitation, not a guarantee.
type Store struct {
	mu        sync.Mutex
	repo      storage.Repository
	collector *collector.Client
	log       *zap.Logger
}

func NewStore(repo storage.Repository, col *collector.Client, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}

	return &Store{
		repo:      repo,
		collector: col,
		log:       log,
	}
}

func draftKey(id Identity, variant domain.Variant, edit bool) string {
	return id.UserID + "/" + variant.StorageKey(edit)
}

// Load returns the user's draft for the variant, creating and
// persisting an empty skeleton when none exists. A stored value that
// fails to parse counts as absent and is recreated from scratch.
func (s *Store) Load(id Identity, variant domain.Variant, edit bool) (*domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.load(id, variant, edit)
}

func (s *Store) load(id Identity, variant domain.Variant, edit bool) (*domain.Draft, error) {
	key := draftKey(id, variant, edit)

	value, ok, err := s.repo.Get(key)
	if err != nil {
		return nil, err
	}

	if ok {
		var d domain.Draft
		if err := json.Unmarshal(value, &d); err == nil {
			return &d, nil
		}
		s.log.Warn("stored draft unparseable, recreating",
			zap.String("key", key))
	}

	d := domain.NewDraft(variant, id.UserID, id.UserName)
	if err := s.persist(key, d); err != nil {
		return nil, err
	}
	return d, nil
}

func (s *Store) persist(key string, d *domain.Draft) error {
	value, err := json.Marshal(d)
	if err != nil {
		return err
	}
	return s.repo.Set(key, value)
}

// ReadSection returns the named section of the draft. Reading the
// third step runs the vuelta synchronization first so the caller sees
// vuelta 1 mirroring the earlier sections; the sync is persisted with
// the next save, as in the wizard flow.
func (s *Store) ReadSection(id Identity, variant domain.Variant, edit bool, name string) (any, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.load(id, variant, edit)
	if err != nil {
		return nil, err
	}

	if name == domain.SectionTercerProceso {
		domain.SyncVueltas(d, variant)
	}
	return d.Section(name)
}

// WriteSection replaces the named section wholesale and stores the
// draft back. Saving the third step re-runs the synchronization so
// vuelta 1 always leaves here consistent with the other sections.
func (s *Store) WriteSection(id Identity, variant domain.Variant, edit bool, name string, raw json.RawMessage) (*domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.load(id, variant, edit)
	if err != nil {
		return nil, err
	}

	if err := d.SetSection(name, raw); err != nil {
		return nil, err
	}
	if name == domain.SectionTercerProceso {
		domain.SyncVueltas(d, variant)
	}

	if err := s.persist(draftKey(id, variant, edit), d); err != nil {
		return nil, err
	}
	return d, nil
}

// AddVuelta appends an empty numbered vuelta, synthesizing vuelta 1
// first if the list is still empty.
func (s *Store) AddVuelta(id Identity, variant domain.Variant, edit bool) (*domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.load(id, variant, edit)
	if err != nil {
		return nil, err
	}

	domain.SyncVueltas(d, variant)
	if err := domain.AddVuelta(d); err != nil {
		return nil, err
	}

	if err := s.persist(draftKey(id, variant, edit), d); err != nil {
		return nil, err
	}
	return d, nil
}

// RemoveVuelta removes the numbered vuelta and renumbers the rest.
// Vuelta 1 is protected at the domain layer.
func (s *Store) RemoveVuelta(id Identity, variant domain.Variant, edit bool, numero int) (*domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.load(id, variant, edit)
	if err != nil {
		return nil, err
	}

	if err := domain.RemoveVuelta(d, numero); err != nil {
		return nil, err
	}

	if err := s.persist(draftKey(id, variant, edit), d); err != nil {
		return nil, err
	}
	return d, nil
}

// EditVuelta overwrites one subtime of a vuelta. Edits addressed to
// vuelta 1 are silent no-ops.
func (s *Store) EditVuelta(id Identity, variant domain.Variant, edit bool, numero int, field domain.VueltaField, value domain.Subtime) (*domain.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.load(id, variant, edit)
	if err != nil {
		return nil, err
	}

	domain.SyncVueltas(d, variant)
	if err := domain.EditVueltaField(d, variant, numero, field, value); err != nil {
		return nil, err
	}

	if err := s.persist(draftKey(id, variant, edit), d); err != nil {
		return nil, err
	}
	return d, nil
}

// Submit validates the draft, sends it to the collector as one
// request, archives it and deletes the stored key. Validation or
// collector failure leaves the draft untouched for a manual retry.
func (s *Store) Submit(ctx context.Context, id Identity, variant domain.Variant, edit bool) (*storage.OperationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.load(id, variant, edit)
	if err != nil {
		return nil, err
	}

	domain.SyncVueltas(d, variant)
	if err := d.Validate(); err != nil {
		return nil, err
	}

	if err := s.collector.Submit(ctx, d); err != nil {
		s.log.Warn("submission failed, draft kept",
			zap.String("draft", d.ID),
			zap.Error(err))
		return nil, err
	}

	record, err := storage.FromDraft(d)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveOperation(record); err != nil {
		return nil, err
	}
	if err := s.repo.Delete(draftKey(id, variant, edit)); err != nil {
		return nil, err
	}

	s.log.Info("operation submitted",
		zap.String("draft", d.ID),
		zap.String("variant", variant.Name),
		zap.String("user", id.UserID))
	return record, nil
}

// Discard deletes the stored draft unconditionally. The confirmation
// step guarding this lives at the transport layer.
func (s *Store) Discard(id Identity, variant domain.Variant, edit bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Delete(draftKey(id, variant, edit))
}

func newOperationID() string {
	return uuid.New().String()
}
