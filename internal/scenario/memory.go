package scenario

import (
	"context"
	"fmt"
	"sync"

	"github.com/Veraticus/metalcycle/internal/common"
	"github.com/Veraticus/metalcycle/internal/model"
)

// MemoryBackend keeps scenarios in process memory.
type MemoryBackend struct {
	records map[string]model.ScenarioRecord
	mu      sync.RWMutex
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{records: make(map[string]model.ScenarioRecord)}
}

// LoadScenario returns a copy of the record under key.
func (m *MemoryBackend) LoadScenario(_ context.Context, key string) (*model.ScenarioRecord, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.records[key]
	if !ok {
		return nil, fmt.Errorf("%w: scenario %q", common.ErrNotFound, key)
	}
	return cloneRecord(record), nil
}

// SaveScenario stores a copy of record under key.
func (m *MemoryBackend) SaveScenario(_ context.Context, key string, record *model.ScenarioRecord) error {
	if record == nil {
		return fmt.Errorf("%w: nil scenario record", model.ErrInvalidScenario)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[key] = *cloneRecord(*record)
	return nil
}

// DeleteScenario removes key. Deleting a missing key is not an error.
func (m *MemoryBackend) DeleteScenario(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.records, key)
	return nil
}

func cloneRecord(r model.ScenarioRecord) *model.ScenarioRecord {
	if r.Extension != nil {
		ext := *r.Extension
		ext.WasteStreams = append([]string(nil), r.Extension.WasteStreams...)
		ext.EndOfLife = append([]string(nil), r.Extension.EndOfLife...)
		r.Extension = &ext
	}
	return &r
}
