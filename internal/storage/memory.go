package storage

import (
	"context"
	"fmt"
	"sort"
	"sync"
)

// MemoryBackend keeps everything in process memory. Nothing survives a restart.
type MemoryBackend struct {
	mu    sync.RWMutex
	slots map[Slot]map[string][]byte
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{slots: make(map[Slot]map[string][]byte)}
}

func (m *MemoryBackend) Get(_ context.Context, slot Slot, key string) ([]byte, bool, error) {
	if !slot.valid() {
		return nil, false, fmt.Errorf("unknown storage slot %d", int(slot))
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	value, ok := m.slots[slot][key]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), value...), true, nil
}

func (m *MemoryBackend) Values(_ context.Context, slot Slot) ([][]byte, error) {
	if !slot.valid() {
		return nil, fmt.Errorf("unknown storage slot %d", int(slot))
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	records := m.slots[slot]
	keys := make([]string, 0, len(records))
	for k := range records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	values := make([][]byte, 0, len(keys))
	for _, k := range keys {
		values = append(values, append([]byte(nil), records[k]...))
	}
	return values, nil
}

func (m *MemoryBackend) Commit(_ context.Context, entries ...Entry) error {
	if err := validateEntries(entries); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, e := range entries {
		records, ok := m.slots[e.Slot]
		if !ok {
			records = make(map[string][]byte)
			m.slots[e.Slot] = records
		}
		records[e.Key] = append([]byte(nil), e.Value...)
	}
	return nil
}

func (m *MemoryBackend) Close() error { return nil }
