package playcount

import (
	"context"
	"sync"

	"MusicHub/core/apperror"
	"MusicHub/model"
	"MusicHub/repository"
)

const MsgSongIDRequired = "song_id is required"

// Listener is notified after every successful increment.
type Listener func(model.StreamCount)

// Service counts plays per song.
type Service struct {
	streams repository.StreamRepository

	mu        sync.RWMutex
	listeners []Listener
}

func NewService(streams repository.StreamRepository) *Service {
	return &Service{streams: streams}
}

// OnIncrement registers l to be called with each updated counter.
func (s *Service) OnIncrement(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

// Increment adds one play to songID.
func (s *Service) Increment(ctx context.Context, songID string) (*model.StreamCount, error) {
	if songID == "" {
		return nil, apperror.Validation(MsgSongIDRequired)
	}

	count, err := s.streams.Increment(ctx, songID)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to update stream")
	}

	s.mu.RLock()
	listeners := s.listeners
	s.mu.RUnlock()
	for _, l := range listeners {
		l(*count)
	}
	return count, nil
}

// ListAll returns every counter in storage order.
func (s *Service) ListAll(ctx context.Context) ([]model.StreamCount, error) {
	counts, err := s.streams.ListAll(ctx)
	if err != nil {
		return nil, apperror.Wrap(err, "failed to list streams")
	}
	if counts == nil {
		counts = []model.StreamCount{}
	}
	return counts, nil
}
