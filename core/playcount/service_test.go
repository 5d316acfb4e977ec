package playcount

import (
	"context"
	"errors"
	"testing"

	"MusicHub/core/apperror"
	"MusicHub/model"
	"MusicHub/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type failingRepo struct{ err error }

func (f failingRepo) Increment(context.Context, string) (*model.StreamCount, error) {
	return nil, f.err
}

func (f failingRepo) ListAll(context.Context) ([]model.StreamCount, error) {
	return nil, f.err
}

func TestIncrement_Sequential(t *testing.T) {
	ctx := context.Background()
	svc := NewService(repository.NewMemoryStreamRepository())

	var seen []model.StreamCount
	svc.OnIncrement(func(c model.StreamCount) { seen = append(seen, c) })

	for i := 1; i <= 3; i++ {
		got, err := svc.Increment(ctx, "song1")
		require.NoError(t, err)
		assert.Equal(t, int64(i), got.Streams)
	}

	all, err := svc.ListAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.StreamCount{{SongID: "song1", Streams: 3}}, all)

	require.Len(t, seen, 3)
	assert.Equal(t, int64(3), seen[2].Streams)
}

func TestIncrement_MissingSongID(t *testing.T) {
	svc := NewService(repository.NewMemoryStreamRepository())
	called := false
	svc.OnIncrement(func(model.StreamCount) { called = true })

	_, err := svc.Increment(context.Background(), "")
	assert.True(t, apperror.Is(err, apperror.KindValidation))
	assert.False(t, called)
}

func TestStoreFailuresAreServerErrors(t *testing.T) {
	svc := NewService(failingRepo{err: errors.New("db down")})

	_, err := svc.Increment(context.Background(), "x")
	assert.True(t, apperror.Is(err, apperror.KindServer))

	_, err = svc.ListAll(context.Background())
	assert.True(t, apperror.Is(err, apperror.KindServer))
}

func TestListAll_EmptyIsNotNil(t *testing.T) {
	all, err := NewService(repository.NewMemoryStreamRepository()).ListAll(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}
