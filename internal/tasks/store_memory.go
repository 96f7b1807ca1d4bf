package tasks

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-process store for tests and local development. It
// mirrors the Postgres ordering: newest first, insertion order breaking
// created-at ties.
type MemoryStore struct {
	mu      sync.RWMutex
	nextSeq int64
	records map[string]memoryRecord
}

type memoryRecord struct {
	task Task
	seq  int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]memoryRecord)}
}

func (s *MemoryStore) Create(_ context.Context, req CreateRequest) (Task, error) {
	req, err := req.normalize()
	if err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	task := Task{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Description: req.Description,
		Status:      StatusPending,
		CreatedAt:   time.Now().UTC(),
	}
	s.nextSeq++
	s.records[task.ID] = memoryRecord{task: task, seq: s.nextSeq}
	return task, nil
}

func (s *MemoryStore) List(_ context.Context) ([]Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := make([]memoryRecord, 0, len(s.records))
	for _, rec := range s.records {
		recs = append(recs, rec)
	}
	sort.Slice(recs, func(i, j int) bool {
		if !recs[i].task.CreatedAt.Equal(recs[j].task.CreatedAt) {
			return recs[i].task.CreatedAt.After(recs[j].task.CreatedAt)
		}
		return recs[i].seq > recs[j].seq
	})

	out := make([]Task, 0, len(recs))
	for _, rec := range recs {
		out = append(out, rec.task)
	}
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, id string, req UpdateRequest) (Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Task{}, ErrInvalidID
	}
	req, err := req.normalize()
	if err != nil {
		return Task{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	if req.Title != nil {
		rec.task.Title = *req.Title
	}
	if req.Description != nil {
		rec.task.Description = *req.Description
	}
	if req.Status != nil {
		rec.task.Status = *req.Status
	}
	s.records[id] = rec
	return rec.task, nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) (Task, error) {
	if _, err := uuid.Parse(id); err != nil {
		return Task{}, ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[id]
	if !ok {
		return Task{}, ErrNotFound
	}
	delete(s.records, id)
	return rec.task, nil
}

func (s *MemoryStore) Close() error { return nil }
