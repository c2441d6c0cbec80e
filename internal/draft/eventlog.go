package draft

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/domain"
	"github.com/AdoDeveloper/sistema-demoras-sub003/internal/storage"
)

const eventLogKey = "acontecimientosDraft"

func logKey(id Identity) string {
	return id.UserID + "/" + eventLogKey
}

// LoadEventLog mirrors Load for the acontecimientos draft: absent or
// corrupt state becomes a fresh log.
func (s *Store) LoadEventLog(id Identity) (*domain.EventLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadEventLog(id)
}

func (s *Store) loadEventLog(id Identity) (*domain.EventLog, error) {
	key := logKey(id)

	value, ok, err := s.repo.Get(key)
	if err != nil {
		return nil, err
	}

	if ok {
		var l domain.EventLog
		if err := json.Unmarshal(value, &l); err == nil {
			return &l, nil
		}
		s.log.Warn("stored event log unparseable, recreating",
			zap.String("key", key))
	}

	l := domain.NewEventLog(id.UserID, id.UserName)
	if err := s.persistEventLog(key, l); err != nil {
		return nil, err
	}
	return l, nil
}

func (s *Store) persistEventLog(key string, l *domain.EventLog) error {
	value, err := json.Marshal(l)
	if err != nil {
		return err
	}
	return s.repo.Set(key, value)
}

// SaveEventLog replaces the whole stored log. Used when the client
// pushes its working copy (current entry, edit index, extended reason
// list) on navigation.
func (s *Store) SaveEventLog(id Identity, l *domain.EventLog) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.persistEventLog(logKey(id), l)
}

// AddEvent validates and records one acontecimiento, honoring a
// pending edit index, and stores the log back.
func (s *Store) AddEvent(id Identity, e domain.Acontecimiento) (*domain.EventLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.loadEventLog(id)
	if err != nil {
		return nil, err
	}

	if err := l.AddOrUpdate(e); err != nil {
		return nil, err
	}

	if err := s.persistEventLog(logKey(id), l); err != nil {
		return nil, err
	}
	return l, nil
}

// RemoveEvent deletes one entry; confirmation happens upstream.
func (s *Store) RemoveEvent(id Identity, index int) (*domain.EventLog, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.loadEventLog(id)
	if err != nil {
		return nil, err
	}

	if err := l.Remove(index); err != nil {
		return nil, err
	}

	if err := s.persistEventLog(logKey(id), l); err != nil {
		return nil, err
	}
	return l, nil
}

// SubmitEventLog sends the log to the collector, archives it and
// clears the stored draft. Failure keeps the draft for retry.
func (s *Store) SubmitEventLog(ctx context.Context, id Identity) (*storage.OperationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.loadEventLog(id)
	if err != nil {
		return nil, err
	}

	if len(l.Eventos) == 0 {
		return nil, domain.ErrEventoIncompleto
	}

	if err := s.collector.Submit(ctx, l); err != nil {
		s.log.Warn("event log submission failed, draft kept",
			zap.String("user", id.UserID),
			zap.Error(err))
		return nil, err
	}

	record, err := storage.FromEventLog(newOperationID(), l)
	if err != nil {
		return nil, err
	}
	if err := s.repo.SaveOperation(record); err != nil {
		return nil, err
	}
	if err := s.repo.Delete(logKey(id)); err != nil {
		return nil, err
	}

	s.log.Info("event log submitted",
		zap.String("user", id.UserID),
		zap.Int("eventos", len(l.Eventos)))
	return record, nil
}

// DiscardEventLog drops the stored log unconditionally.
func (s *Store) DiscardEventLog(id Identity) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.repo.Delete(logKey(id))
}

// EventLogSnapshot renders the current log as plain text without
// touching it — the escape hatch offered before a discard.
func (s *Store) EventLogSnapshot(id Identity) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	l, err := s.loadEventLog(id)
	if err != nil {
		return "", err
	}
	return l.Snapshot(), nil
}
