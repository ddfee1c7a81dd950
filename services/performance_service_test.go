package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/Dosada05/fitness-challenge/feed"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type perfFixture struct {
	svc       PerformanceService
	perfRepo  *fakePerformanceRepo
	sportRepo *fakeSportRepo
	userRepo  *fakeUserRepo
	hub       *fakeHub
	userID    int
	runningID int
}

func newPerfFixture(t *testing.T) *perfFixture {
	t.Helper()
	perfRepo := newFakePerformanceRepo()
	sportRepo := newFakeSportRepo()
	userRepo := newFakeUserRepo()
	hub := &fakeHub{}

	user := seedUser(t, userRepo, "alice")
	running := sportRepo.add("Running", "km", 10)

	return &perfFixture{
		svc:       NewPerformanceService(perfRepo, sportRepo, userRepo, hub),
		perfRepo:  perfRepo,
		sportRepo: sportRepo,
		userRepo:  userRepo,
		hub:       hub,
		userID:    user.ID,
		runningID: running.ID,
	}
}

func TestRecordPerformance(t *testing.T) {
	t.Run("points computed from the sport rate", func(t *testing.T) {
		f := newPerfFixture(t)

		perf, err := f.svc.Record(context.Background(), f.userID, RecordPerformanceInput{
			SportID: f.runningID,
			Value:   5,
			Date:    "2024-06-01",
		})
		require.NoError(t, err)
		assert.Equal(t, 50.0, perf.Points)
		assert.Equal(t, "Running", perf.SportName)
		assert.Equal(t, "km", perf.SportUnit)
		assert.NotZero(t, perf.ID)
	})

	t.Run("zero value earns zero points", func(t *testing.T) {
		f := newPerfFixture(t)

		perf, err := f.svc.Record(context.Background(), f.userID, RecordPerformanceInput{
			SportID: f.runningID,
			Value:   0,
			Date:    "2024-06-01",
		})
		require.NoError(t, err)
		assert.Equal(t, 0.0, perf.Points)
	})

	t.Run("negative value rejected", func(t *testing.T) {
		f := newPerfFixture(t)

		_, err := f.svc.Record(context.Background(), f.userID, RecordPerformanceInput{
			SportID: f.runningID,
			Value:   -1,
			Date:    "2024-06-01",
		})
		assert.ErrorIs(t, err, ErrNegativeValue)
	})

	t.Run("malformed date rejected", func(t *testing.T) {
		f := newPerfFixture(t)

		for _, date := range []string{"01-06-2024", "2024/06/01", "2024-13-01", "yesterday", ""} {
			_, err := f.svc.Record(context.Background(), f.userID, RecordPerformanceInput{
				SportID: f.runningID,
				Value:   1,
				Date:    date,
			})
			assert.ErrorIs(t, err, ErrInvalidDate, "date %q", date)
		}
	})

	t.Run("unknown sport", func(t *testing.T) {
		f := newPerfFixture(t)

		_, err := f.svc.Record(context.Background(), f.userID, RecordPerformanceInput{
			SportID: 9999,
			Value:   1,
			Date:    "2024-06-01",
		})
		assert.ErrorIs(t, err, ErrSportNotFound)
	})

	t.Run("unknown user", func(t *testing.T) {
		f := newPerfFixture(t)

		_, err := f.svc.Record(context.Background(), 9999, RecordPerformanceInput{
			SportID: f.runningID,
			Value:   1,
			Date:    "2024-06-01",
		})
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("stored points survive a later rate change", func(t *testing.T) {
		f := newPerfFixture(t)

		perf, err := f.svc.Record(context.Background(), f.userID, RecordPerformanceInput{
			SportID: f.runningID,
			Value:   5,
			Date:    "2024-06-01",
		})
		require.NoError(t, err)
		require.Equal(t, 50.0, perf.Points)

		sport, err := f.sportRepo.GetByID(context.Background(), f.runningID)
		require.NoError(t, err)
		sport.PointsPerUnit = 99
		require.NoError(t, f.sportRepo.Update(context.Background(), sport))

		stored, err := f.perfRepo.GetByID(context.Background(), perf.ID)
		require.NoError(t, err)
		assert.Equal(t, 50.0, stored.Points)
	})

	t.Run("broadcasts a live feed event", func(t *testing.T) {
		f := newPerfFixture(t)

		_, err := f.svc.Record(context.Background(), f.userID, RecordPerformanceInput{
			SportID: f.runningID,
			Value:   5,
			Date:    "2024-06-01",
		})
		require.NoError(t, err)

		events := f.hub.Events()
		require.Len(t, events, 1)
		assert.Equal(t, "PERFORMANCE_RECORDED", events[0].Type)
		payload, ok := events[0].Payload.(feed.PerformanceEvent)
		require.True(t, ok)
		assert.Equal(t, "alice", payload.Username)
		assert.Equal(t, "Running", payload.SportName)
		assert.Equal(t, 50.0, payload.Points)
		assert.Equal(t, "2024-06-01", payload.Date)
	})

	t.Run("nil hub skips the broadcast", func(t *testing.T) {
		f := newPerfFixture(t)
		svc := NewPerformanceService(f.perfRepo, f.sportRepo, f.userRepo, nil)

		_, err := svc.Record(context.Background(), f.userID, RecordPerformanceInput{
			SportID: f.runningID,
			Value:   5,
			Date:    "2024-06-01",
		})
		require.NoError(t, err)
		assert.Empty(t, f.hub.Events())
	})
}

func TestPerformanceHistory(t *testing.T) {
	f := newPerfFixture(t)

	for i := 0; i < 30; i++ {
		_, err := f.svc.Record(context.Background(), f.userID, RecordPerformanceInput{
			SportID: f.runningID,
			Value:   1,
			Date:    fmt.Sprintf("2024-06-%02d", i%28+1),
		})
		require.NoError(t, err)
	}

	t.Run("default limit", func(t *testing.T) {
		history, err := f.svc.History(context.Background(), f.userID, 0, 0)
		require.NoError(t, err)
		assert.Len(t, history, defaultHistoryLimit)
	})

	t.Run("limit clamped to maximum", func(t *testing.T) {
		history, err := f.svc.History(context.Background(), f.userID, 10000, 0)
		require.NoError(t, err)
		assert.Len(t, history, 30)
	})

	t.Run("newest first", func(t *testing.T) {
		history, err := f.svc.History(context.Background(), f.userID, 100, 0)
		require.NoError(t, err)
		for i := 1; i < len(history); i++ {
			prev, cur := history[i-1], history[i]
			if prev.DateRecorded.Equal(cur.DateRecorded) {
				assert.Greater(t, prev.ID, cur.ID)
			} else {
				assert.True(t, prev.DateRecorded.After(cur.DateRecorded))
			}
		}
	})

	t.Run("offset pages through", func(t *testing.T) {
		history, err := f.svc.History(context.Background(), f.userID, 100, 25)
		require.NoError(t, err)
		assert.Len(t, history, 5)
	})
}
