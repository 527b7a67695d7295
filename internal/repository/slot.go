package repository

import (
	"context"
	"errors"
	"sync"
)

// ErrSlotContention is returned when an optimistic slot write keeps losing
// to concurrent writers.
var ErrSlotContention = errors.New("slot update contended")

// Slot is a single durable key holding the whole serialized collection.
// Reads return the full value; every write replaces it.
type Slot interface {
	// Load returns the stored value, or nil when the slot is empty.
	Load(ctx context.Context) ([]byte, error)
	// Update reads the current value, passes it to fn and stores what fn
	// returns. Readers observe either the old or the new value. If fn
	// returns an error nothing is written and the error is returned.
	Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error
}

// MemorySlot keeps the value in process memory.
type MemorySlot struct {
	mu    sync.Mutex
	value []byte
}

// NewMemorySlot returns an empty in-memory slot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

func (s *MemorySlot) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneBytes(s.value), nil
}

func (s *MemorySlot) Update(ctx context.Context, fn func(current []byte) ([]byte, error)) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := fn(cloneBytes(s.value))
	if err != nil {
		return err
	}
	s.value = cloneBytes(next)
	return nil
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append([]byte(nil), b...)
}
