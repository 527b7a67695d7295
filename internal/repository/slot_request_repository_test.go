package repository_test

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/repair-tracker/internal/domain"
	"github.com/spec-kit/repair-tracker/internal/repository"
)

var baseTime = time.Date(2025, 4, 7, 10, 30, 0, 0, time.UTC)

func sampleRequest(id string, offset time.Duration) domain.Request {
	return domain.Request{
		ID:          id,
		Title:       "Broken monitor " + id,
		Location:    "Computer Lab 3",
		Description: "Screen flickers and goes black",
		IssueType:   domain.IssueTypeHardware,
		AssetID:     "PC-LAB3-0" + id,
		Status:      domain.RequestStatusPending,
		Priority:    domain.RequestPriorityHigh,
		Requester:   "faculty-1",
		CreatedAt:   baseTime.Add(offset),
		UpdatedAt:   baseTime.Add(offset),
	}
}

func acceptPatch(tech string, at time.Time) domain.RequestPatch {
	status := domain.RequestStatusInProgress
	return domain.RequestPatch{Status: &status, AssignedTo: &tech, UpdatedAt: at}
}

type slotFactory func(t *testing.T) repository.Slot

func slotFactories() map[string]slotFactory {
	return map[string]slotFactory{
		"memory": func(t *testing.T) repository.Slot {
			return repository.NewMemorySlot()
		},
		"file": func(t *testing.T) repository.Slot {
			slot, err := repository.NewFileSlot(filepath.Join(t.TempDir(), "data", "repairRequests.json"))
			require.NoError(t, err)
			return slot
		},
		"redis": func(t *testing.T) repository.Slot {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return repository.NewRedisSlot(client, "repairRequests")
		},
	}
}

func TestSlotRequestRepository(t *testing.T) {
	for name, factory := range slotFactories() {
		factory := factory
		t.Run(name, func(t *testing.T) {
			t.Run("EmptyCollection", func(t *testing.T) {
				repo := repository.NewSlotRequestRepository(factory(t))
				all, err := repo.FetchAll(context.Background())
				require.NoError(t, err)
				assert.Empty(t, all)
			})

			t.Run("InsertKeepsNewestFirst", func(t *testing.T) {
				ctx := context.Background()
				repo := repository.NewSlotRequestRepository(factory(t))
				first := sampleRequest("1", 0)
				second := sampleRequest("2", time.Minute)
				require.NoError(t, repo.Insert(ctx, &first))
				require.NoError(t, repo.Insert(ctx, &second))

				all, err := repo.FetchAll(ctx)
				require.NoError(t, err)
				require.Len(t, all, 2)
				assert.Equal(t, "2", all[0].ID)
				assert.Equal(t, "1", all[1].ID)
				assert.True(t, all[1].CreatedAt.Equal(first.CreatedAt))
				assert.Nil(t, all[1].AssignedTo)
			})

			t.Run("InsertRejectsDuplicateID", func(t *testing.T) {
				ctx := context.Background()
				repo := repository.NewSlotRequestRepository(factory(t))
				req := sampleRequest("1", 0)
				require.NoError(t, repo.Insert(ctx, &req))
				assert.ErrorIs(t, repo.Insert(ctx, &req), repository.ErrDuplicateID)

				all, err := repo.FetchAll(ctx)
				require.NoError(t, err)
				assert.Len(t, all, 1)
			})

			t.Run("GetByID", func(t *testing.T) {
				ctx := context.Background()
				repo := repository.NewSlotRequestRepository(factory(t))
				req := sampleRequest("1", 0)
				require.NoError(t, repo.Insert(ctx, &req))

				got, err := repo.GetByID(ctx, "1")
				require.NoError(t, err)
				assert.Equal(t, req.Title, got.Title)

				_, err = repo.GetByID(ctx, "missing")
				assert.ErrorIs(t, err, repository.ErrNotFound)
			})

			t.Run("UpdateIfAppliesPatch", func(t *testing.T) {
				ctx := context.Background()
				repo := repository.NewSlotRequestRepository(factory(t))
				req := sampleRequest("1", 0)
				require.NoError(t, repo.Insert(ctx, &req))

				at := baseTime.Add(time.Hour)
				updated, err := repo.UpdateIf(ctx, "1", domain.RequestStatusPending, acceptPatch("tech-1", at))
				require.NoError(t, err)
				assert.Equal(t, domain.RequestStatusInProgress, updated.Status)
				require.NotNil(t, updated.AssignedTo)
				assert.Equal(t, "tech-1", *updated.AssignedTo)
				assert.True(t, updated.UpdatedAt.Equal(at))
				assert.True(t, updated.CreatedAt.Equal(req.CreatedAt))

				stored, err := repo.GetByID(ctx, "1")
				require.NoError(t, err)
				assert.Equal(t, domain.RequestStatusInProgress, stored.Status)
			})

			t.Run("UpdateIfRejectsStaleStatus", func(t *testing.T) {
				ctx := context.Background()
				repo := repository.NewSlotRequestRepository(factory(t))
				req := sampleRequest("1", 0)
				require.NoError(t, repo.Insert(ctx, &req))

				_, err := repo.UpdateIf(ctx, "1", domain.RequestStatusInProgress, acceptPatch("tech-1", baseTime))
				assert.ErrorIs(t, err, repository.ErrStatusMismatch)

				stored, err := repo.GetByID(ctx, "1")
				require.NoError(t, err)
				assert.Equal(t, domain.RequestStatusPending, stored.Status)
				assert.Nil(t, stored.AssignedTo)
			})

			t.Run("UpdateIfMissing", func(t *testing.T) {
				repo := repository.NewSlotRequestRepository(factory(t))
				_, err := repo.UpdateIf(context.Background(), "nope", domain.RequestStatusPending, acceptPatch("tech-1", baseTime))
				assert.ErrorIs(t, err, repository.ErrNotFound)
			})

			t.Run("ConcurrentUpdateIfHasOneWinner", func(t *testing.T) {
				ctx := context.Background()
				repo := repository.NewSlotRequestRepository(factory(t))
				req := sampleRequest("1", 0)
				require.NoError(t, repo.Insert(ctx, &req))

				techs := []string{"tech-a", "tech-b", "tech-c", "tech-d"}
				errs := make([]error, len(techs))
				start := make(chan struct{})
				var wg sync.WaitGroup
				for i, tech := range techs {
					wg.Add(1)
					go func(i int, tech string) {
						defer wg.Done()
						<-start
						_, errs[i] = repo.UpdateIf(ctx, "1", domain.RequestStatusPending, acceptPatch(tech, baseTime))
					}(i, tech)
				}
				close(start)
				wg.Wait()

				winner := ""
				for i, err := range errs {
					if err == nil {
						require.Empty(t, winner, "more than one writer won")
						winner = techs[i]
						continue
					}
					assert.ErrorIs(t, err, repository.ErrStatusMismatch)
				}
				require.NotEmpty(t, winner)

				stored, err := repo.GetByID(ctx, "1")
				require.NoError(t, err)
				require.NotNil(t, stored.AssignedTo)
				assert.Equal(t, winner, *stored.AssignedTo)
			})
		})
	}
}

func TestFileSlotSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "repairRequests.json")

	slot, err := repository.NewFileSlot(path)
	require.NoError(t, err)
	req := sampleRequest("1", 0)
	require.NoError(t, repository.NewSlotRequestRepository(slot).Insert(ctx, &req))

	reopened, err := repository.NewFileSlot(path)
	require.NoError(t, err)
	all, err := repository.NewSlotRequestRepository(reopened).FetchAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, "1", all[0].ID)

	matches, err := filepath.Glob(path + ".*.tmp")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestRedisSlotRetriesAfterConcurrentWrite(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	slot := repository.NewRedisSlot(client, "slot")

	require.NoError(t, slot.Update(ctx, func([]byte) ([]byte, error) { return []byte("v1"), nil }))

	calls := 0
	err := slot.Update(ctx, func(current []byte) ([]byte, error) {
		calls++
		if calls == 1 {
			require.NoError(t, client.Set(ctx, "slot", "v2", 0).Err())
		}
		return append(current, '+'), nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v2+", string(got))
}

func TestSlotUpdateErrorLeavesValue(t *testing.T) {
	ctx := context.Background()
	slot := repository.NewMemorySlot()
	require.NoError(t, slot.Update(ctx, func([]byte) ([]byte, error) { return []byte("keep"), nil }))

	err := slot.Update(ctx, func([]byte) ([]byte, error) { return []byte("drop"), repository.ErrNotFound })
	assert.ErrorIs(t, err, repository.ErrNotFound)

	got, err := slot.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "keep", string(got))
}

func TestSlotsHonorCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for name, factory := range slotFactories() {
		if name == "redis" {
			continue
		}
		factory := factory
		t.Run(name, func(t *testing.T) {
			slot := factory(t)
			_, err := slot.Load(ctx)
			assert.ErrorIs(t, err, context.Canceled)

			called := false
			err = slot.Update(ctx, func([]byte) ([]byte, error) {
				called = true
				return []byte("x"), nil
			})
			assert.ErrorIs(t, err, context.Canceled)
			assert.False(t, called)
		})
	}
}
