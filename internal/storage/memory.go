package storage

import (
	"context"
	"sync"
)

// Memory keeps the blob in process memory. Data is lost on exit.
type Memory struct {
	mu   sync.RWMutex
	data []byte
	set  bool
}

func NewMemory() *Memory {
	return &Memory{}
}

// NewMemoryWith returns a Memory already holding data, as if written earlier.
func NewMemoryWith(data []byte) *Memory {
	m := &Memory{}
	m.data = append([]byte(nil), data...)
	m.set = true
	return m
}

func (m *Memory) Read(ctx context.Context) ([]byte, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.set {
		return nil, false, nil
	}
	return append([]byte(nil), m.data...), true, nil
}

func (m *Memory) Write(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.set = true
	return nil
}
