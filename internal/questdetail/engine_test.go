package questdetail_test

import (
	"context"
	"slices"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	errorvalues "github.com/limbo/cherries/internal/error_values"
	"github.com/limbo/cherries/internal/questdetail"
	"github.com/limbo/cherries/internal/service/mocks"
	"github.com/limbo/cherries/pkg/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

func june(d int) time.Time {
	return time.Date(2024, 6, d, 0, 0, 0, 0, time.UTC)
}

func testQuest() *entity.Quest {
	return &entity.Quest{
		ID:        "q-1",
		Name:      "June challenge",
		StartDate: entity.NewTimestamp(june(1)),
		EndDate:   entity.NewTimestamp(june(30)),
		DailyTasks: []entity.DailyTask{
			{ID: "t-1", QuestID: "q-1", Title: "Run", Points: 5},
			{ID: "t-2", QuestID: "q-1", Title: "Stretch", Points: 3},
		},
	}
}

func serverCheckIn(id, taskID string, day, count int) *entity.CheckIn {
	return &entity.CheckIn{
		ID:          id,
		QuestID:     "q-1",
		DailyTaskID: taskID,
		CheckInDate: entity.NewTimestamp(june(day)),
		Count:       count,
	}
}

type fixture struct {
	engine   *questdetail.Engine
	checkIns *mocks.MockCheckInServiceI
	quests   *mocks.MockQuestServiceI
}

// newFixture builds an engine and, when seed is not nil, loads it as the
// current month. Stats reloads always succeed.
func newFixture(t *testing.T, quest *entity.Quest, seed []entity.CheckIn) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	f := &fixture{
		checkIns: mocks.NewMockCheckInServiceI(ctrl),
		quests:   mocks.NewMockQuestServiceI(ctrl),
	}
	f.engine = questdetail.New(quest, f.checkIns, f.quests, questdetail.WithClock(func() time.Time { return today }))
	t.Cleanup(f.engine.Wait)
	f.checkIns.EXPECT().GetStats(gomock.Any(), "q-1").Return(&entity.CheckInStats{QuestID: "q-1", TotalPoints: 10}, nil).AnyTimes()
	if seed != nil {
		f.checkIns.EXPECT().GetCheckIns(gomock.Any(), "q-1", gomock.Any()).Return(slices.Clone(seed), nil)
		require.NoError(t, f.engine.LoadData(context.Background()))
	}
	return f
}

func TestNewClampsSelectedDate(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		Desc     string
		Now      time.Time
		Selected string
		Month    time.Month
	}{
		{Desc: "inside range", Now: today, Selected: "2024-06-15", Month: time.June},
		{Desc: "before start", Now: time.Date(2024, 5, 20, 8, 0, 0, 0, time.UTC), Selected: "2024-06-01", Month: time.June},
		{Desc: "after end", Now: time.Date(2024, 8, 2, 8, 0, 0, 0, time.UTC), Selected: "2024-06-30", Month: time.June},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			e := questdetail.New(testQuest(), mocks.NewMockCheckInServiceI(ctrl), mocks.NewMockQuestServiceI(ctrl),
				questdetail.WithClock(func() time.Time { return tc.Now }))
			state := e.State()
			assert.Equal(t, tc.Selected, entity.DayKey(state.SelectedDate))
			assert.Equal(t, tc.Month, state.CurrentMonth.Month())
			assert.Equal(t, 1, state.CurrentMonth.Day())
		})
	}
}

func TestLoadData(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("replaces state", func(t *testing.T) {
		f := newFixture(t, testQuest(), []entity.CheckIn{*serverCheckIn("c-1", "t-1", 3, 2)})
		state := f.engine.State()
		require.NotNil(t, state.Stats)
		assert.Equal(t, 10, state.Stats.TotalPoints)
		assert.Len(t, state.CheckIns, 1)
		assert.False(t, state.IsLoading)
		assert.NoError(t, state.Err)
	})
	t.Run("failure keeps state and records error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		checkIns := mocks.NewMockCheckInServiceI(ctrl)
		e := questdetail.New(testQuest(), checkIns, mocks.NewMockQuestServiceI(ctrl),
			questdetail.WithClock(func() time.Time { return today }))
		checkIns.EXPECT().GetStats(gomock.Any(), "q-1").Return(nil, errorvalues.ServerError("status 500"))
		checkIns.EXPECT().GetCheckIns(gomock.Any(), "q-1", gomock.Any()).Return([]entity.CheckIn{*serverCheckIn("c-1", "t-1", 3, 2)}, nil).AnyTimes()

		err := e.LoadData(ctx)
		assert.ErrorIs(t, err, errorvalues.ErrServer)
		state := e.State()
		assert.Empty(t, state.CheckIns)
		assert.Nil(t, state.Stats)
		assert.ErrorIs(t, state.Err, errorvalues.ErrServer)
	})
}

func TestIncrementAccumulates(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), []entity.CheckIn{})
	var server atomic.Int32
	f.checkIns.EXPECT().Increment(gomock.Any(), "q-1", "t-1", gomock.Any()).DoAndReturn(
		func(ctx context.Context, questID, taskID string, date time.Time) (*entity.CheckIn, error) {
			return serverCheckIn("c-1", "t-1", 15, int(server.Add(1))), nil
		}).Times(3)

	ctx := context.Background()
	for range 3 {
		require.NoError(t, f.engine.Increment(ctx, "t-1", today))
	}
	assert.Equal(t, 3, f.engine.Count("t-1", today))
	assert.True(t, f.engine.IsCompleted("t-1", today))
	state := f.engine.State()
	require.Len(t, state.CheckIns, 1)
	assert.Equal(t, "c-1", state.CheckIns[0].ID)
}

func TestIncrementOptimisticEntry(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), []entity.CheckIn{})
	var seen []entity.CheckIn
	f.checkIns.EXPECT().Increment(gomock.Any(), "q-1", "t-2", gomock.Any()).DoAndReturn(
		func(ctx context.Context, questID, taskID string, date time.Time) (*entity.CheckIn, error) {
			seen = f.engine.State().CheckIns
			return serverCheckIn("c-9", "t-2", 10, 1), nil
		})

	require.NoError(t, f.engine.Increment(context.Background(), "t-2", june(10)))
	require.Len(t, seen, 1)
	assert.True(t, strings.HasPrefix(seen[0].ID, questdetail.TempIDPrefix))
	assert.Equal(t, 1, seen[0].Count)
	assert.Equal(t, "2024-06-10", entity.DayKey(seen[0].CheckInDate.Time))

	state := f.engine.State()
	require.Len(t, state.CheckIns, 1)
	assert.Equal(t, "c-9", state.CheckIns[0].ID)
}

func TestDecrement(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		Desc      string
		Seed      *entity.CheckIn
		Response  *entity.CheckIn
		WantCount int
		WantLen   int
	}{
		{
			Desc:      "from one removes the entry",
			Seed:      serverCheckIn("c-1", "t-1", 10, 1),
			Response:  nil,
			WantCount: 0,
			WantLen:   0,
		},
		{
			Desc:      "updated record replaces the entry",
			Seed:      serverCheckIn("c-1", "t-1", 10, 3),
			Response:  serverCheckIn("c-1", "t-1", 10, 2),
			WantCount: 2,
			WantLen:   1,
		},
		{
			Desc:      "server deletion wins over local count",
			Seed:      serverCheckIn("c-1", "t-1", 10, 3),
			Response:  nil,
			WantCount: 0,
			WantLen:   0,
		},
		{
			Desc:      "server count wins over local removal",
			Seed:      serverCheckIn("c-1", "t-1", 10, 1),
			Response:  serverCheckIn("c-1", "t-1", 10, 2),
			WantCount: 2,
			WantLen:   1,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			f := newFixture(t, testQuest(), []entity.CheckIn{*tc.Seed, *serverCheckIn("c-2", "t-2", 10, 1)})
			f.checkIns.EXPECT().Decrement(gomock.Any(), "q-1", "t-1", gomock.Any()).Return(tc.Response, nil)

			require.NoError(t, f.engine.Decrement(context.Background(), "t-1", june(10)))
			assert.Equal(t, tc.WantCount, f.engine.Count("t-1", june(10)))
			assert.Equal(t, 1, f.engine.Count("t-2", june(10)))
			assert.Len(t, f.engine.State().CheckIns, tc.WantLen+1)
		})
	}
}

func TestDecrementAbsentCellIsNoop(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), []entity.CheckIn{})
	require.NoError(t, f.engine.Decrement(context.Background(), "t-1", june(10)))
	assert.Empty(t, f.engine.State().CheckIns)
}

func TestRollback(t *testing.T) {
	t.Parallel()
	seed := []entity.CheckIn{*serverCheckIn("c-1", "t-1", 10, 2), *serverCheckIn("c-2", "t-2", 12, 1)}
	testCases := []struct {
		Desc         string
		Task         string
		Day          int
		Error        error
		MockPrepFunc func(f *fixture)
		Mutate       func(e *questdetail.Engine) error
	}{
		{
			Desc:  "increment of existing entry",
			Error: errorvalues.ErrNetwork,
			MockPrepFunc: func(f *fixture) {
				f.checkIns.EXPECT().Increment(gomock.Any(), "q-1", "t-1", gomock.Any()).Return(nil, errorvalues.NetworkError(context.DeadlineExceeded))
			},
			Mutate: func(e *questdetail.Engine) error {
				return e.Increment(context.Background(), "t-1", june(10))
			},
		},
		{
			Desc:  "increment of new entry",
			Error: errorvalues.ErrServer,
			MockPrepFunc: func(f *fixture) {
				f.checkIns.EXPECT().Increment(gomock.Any(), "q-1", "t-2", gomock.Any()).Return(nil, errorvalues.ServerError("status 500"))
			},
			Mutate: func(e *questdetail.Engine) error {
				return e.Increment(context.Background(), "t-2", june(14))
			},
		},
		{
			Desc:  "decrement to removal",
			Error: errorvalues.ErrTokenExpired,
			MockPrepFunc: func(f *fixture) {
				f.checkIns.EXPECT().Decrement(gomock.Any(), "q-1", "t-2", gomock.Any()).Return(nil, errorvalues.Unauthorized(errorvalues.ReasonTokenExpired))
			},
			Mutate: func(e *questdetail.Engine) error {
				return e.Decrement(context.Background(), "t-2", june(12))
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			f := newFixture(t, testQuest(), seed)
			tc.MockPrepFunc(f)
			before := f.engine.State().CheckIns

			err := tc.Mutate(f.engine)
			assert.ErrorIs(t, err, tc.Error)
			state := f.engine.State()
			assert.Equal(t, before, state.CheckIns)
			assert.ErrorIs(t, state.Err, tc.Error)

			f.engine.ClearError()
			assert.NoError(t, f.engine.State().Err)
		})
	}
}

func TestHungRequestRollsBackOnTimeout(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), []entity.CheckIn{})
	f.checkIns.EXPECT().Increment(gomock.Any(), "q-1", "t-1", gomock.Any()).DoAndReturn(
		func(ctx context.Context, questID, taskID string, date time.Time) (*entity.CheckIn, error) {
			<-ctx.Done()
			return nil, errorvalues.NetworkError(ctx.Err())
		})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := f.engine.Increment(ctx, "t-1", today)
	assert.ErrorIs(t, err, errorvalues.ErrNetwork)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 0, f.engine.Count("t-1", today))
	assert.Error(t, f.engine.State().Err)
}

func TestCanCheckIn(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), nil)
	testCases := []struct {
		Desc    string
		Date    time.Time
		InRange bool
		Allowed bool
	}{
		{Desc: "first day", Date: june(1), InRange: true, Allowed: true},
		{Desc: "today late evening", Date: time.Date(2024, 6, 15, 23, 59, 0, 0, time.UTC), InRange: true, Allowed: true},
		{Desc: "tomorrow", Date: june(16), InRange: true, Allowed: false},
		{Desc: "last day", Date: june(30), InRange: true, Allowed: false},
		{Desc: "before start", Date: time.Date(2024, 5, 31, 23, 0, 0, 0, time.UTC), InRange: false, Allowed: false},
		{Desc: "after end", Date: time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC), InRange: false, Allowed: false},
	}
	for _, tc := range testCases {
		t.Run(tc.Desc, func(t *testing.T) {
			assert.Equal(t, tc.InRange, f.engine.IsDateInQuestRange(tc.Date))
			assert.Equal(t, tc.Allowed, f.engine.CanCheckIn(tc.Date))
		})
	}
}

func TestMutationsRejectClosedDates(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), []entity.CheckIn{})
	ctx := context.Background()

	assert.ErrorIs(t, f.engine.Increment(ctx, "t-1", june(16)), errorvalues.ErrInvalidRequest)
	assert.ErrorIs(t, f.engine.Decrement(ctx, "t-1", time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)), errorvalues.ErrInvalidRequest)
	assert.ErrorIs(t, f.engine.Increment(ctx, "t-404", today), errorvalues.ErrInvalidRequest)
	assert.Empty(t, f.engine.State().CheckIns)
}

func TestCompletionStatus(t *testing.T) {
	t.Parallel()
	quest := testQuest()
	quest.DailyTasks = []entity.DailyTask{{ID: "A", Points: 1}, {ID: "B", Points: 1}}
	f := newFixture(t, quest, []entity.CheckIn{})
	var server atomic.Int32
	f.checkIns.EXPECT().Increment(gomock.Any(), "q-1", gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, questID, taskID string, date time.Time) (*entity.CheckIn, error) {
			return serverCheckIn("c-"+taskID, taskID, 1, int(server.Add(1))), nil
		}).Times(2)
	ctx := context.Background()
	first := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	assert.Equal(t, questdetail.StatusNone, f.engine.CompletionStatus(first))
	require.NoError(t, f.engine.Increment(ctx, "A", first))
	assert.Equal(t, questdetail.StatusPartial, f.engine.CompletionStatus(first))
	require.NoError(t, f.engine.Increment(ctx, "B", first))
	assert.Equal(t, questdetail.StatusComplete, f.engine.CompletionStatus(first))

	assert.Equal(t, questdetail.StatusNone, f.engine.CompletionStatus(june(2)))
	assert.Equal(t, questdetail.StatusNone, f.engine.CompletionStatus(time.Date(2024, 7, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "complete", questdetail.StatusComplete.String())
}

func TestCompletionStatusWithoutTasks(t *testing.T) {
	t.Parallel()
	quest := testQuest()
	quest.DailyTasks = nil
	f := newFixture(t, quest, []entity.CheckIn{*serverCheckIn("c-1", "t-1", 1, 1)})
	assert.Equal(t, questdetail.StatusNone, f.engine.CompletionStatus(june(1)))
}

func TestToggle(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), []entity.CheckIn{})
	f.checkIns.EXPECT().Increment(gomock.Any(), "q-1", "t-1", gomock.Any()).Return(serverCheckIn("c-1", "t-1", 15, 1), nil)
	f.checkIns.EXPECT().Decrement(gomock.Any(), "q-1", "t-1", gomock.Any()).Return(nil, nil)
	ctx := context.Background()

	require.NoError(t, f.engine.Toggle(ctx, "t-1"))
	assert.Equal(t, 1, f.engine.Count("t-1", today))
	require.NoError(t, f.engine.Toggle(ctx, "t-1"))
	assert.Equal(t, 0, f.engine.Count("t-1", today))
}

func TestToggleUsesSelectedDate(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), []entity.CheckIn{})
	f.checkIns.EXPECT().Increment(gomock.Any(), "q-1", "t-2", gomock.Any()).DoAndReturn(
		func(ctx context.Context, questID, taskID string, date time.Time) (*entity.CheckIn, error) {
			assert.Equal(t, "2024-06-05", entity.DayKey(date))
			return serverCheckIn("c-1", "t-2", 5, 1), nil
		})
	f.engine.SelectDate(june(5))
	require.NoError(t, f.engine.Toggle(context.Background(), "t-2"))
	assert.Equal(t, 1, f.engine.Count("t-2", june(5)))
}

func TestReleasedEngineDropsResults(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), []entity.CheckIn{})
	var notified atomic.Int32
	f.engine.Subscribe(func(questdetail.State) { notified.Add(1) })
	f.checkIns.EXPECT().Increment(gomock.Any(), "q-1", "t-1", gomock.Any()).DoAndReturn(
		func(ctx context.Context, questID, taskID string, date time.Time) (*entity.CheckIn, error) {
			f.engine.Release()
			return serverCheckIn("c-1", "t-1", 15, 1), nil
		})
	ctx := context.Background()

	require.NoError(t, f.engine.Increment(ctx, "t-1", today))
	state := f.engine.State()
	require.Len(t, state.CheckIns, 1)
	assert.True(t, strings.HasPrefix(state.CheckIns[0].ID, questdetail.TempIDPrefix))
	assert.Equal(t, int32(1), notified.Load())

	assert.ErrorIs(t, f.engine.Increment(ctx, "t-1", today), errorvalues.ErrEngineReleased)
	assert.ErrorIs(t, f.engine.LoadData(ctx), errorvalues.ErrEngineReleased)
}

func TestReleasedEngineDropsFailures(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), []entity.CheckIn{})
	f.checkIns.EXPECT().Increment(gomock.Any(), "q-1", "t-1", gomock.Any()).DoAndReturn(
		func(ctx context.Context, questID, taskID string, date time.Time) (*entity.CheckIn, error) {
			f.engine.Release()
			return nil, errorvalues.ServerError("status 503")
		})

	err := f.engine.Increment(context.Background(), "t-1", today)
	assert.ErrorIs(t, err, errorvalues.ErrServer)
	assert.NoError(t, f.engine.State().Err)
}

func TestMonthNavigation(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), []entity.CheckIn{*serverCheckIn("c-1", "t-1", 10, 1)})
	f.checkIns.EXPECT().GetCheckIns(gomock.Any(), "q-1", gomock.Any()).DoAndReturn(
		func(ctx context.Context, questID string, month *time.Time) ([]entity.CheckIn, error) {
			switch month.Month() {
			case time.July:
				return []entity.CheckIn{}, nil
			case time.June:
				return []entity.CheckIn{*serverCheckIn("c-1", "t-1", 10, 1), *serverCheckIn("c-2", "t-2", 11, 1)}, nil
			}
			return nil, errorvalues.ServerError("unexpected month")
		}).Times(2)
	ctx := context.Background()

	require.NoError(t, f.engine.NextMonth(ctx))
	state := f.engine.State()
	assert.Equal(t, time.July, state.CurrentMonth.Month())
	assert.Empty(t, state.CheckIns)

	require.NoError(t, f.engine.PreviousMonth(ctx))
	state = f.engine.State()
	assert.Equal(t, time.June, state.CurrentMonth.Month())
	assert.Len(t, state.CheckIns, 2)
}

func TestMonthNavigationFailure(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), []entity.CheckIn{*serverCheckIn("c-1", "t-1", 10, 1)})
	f.checkIns.EXPECT().GetCheckIns(gomock.Any(), "q-1", gomock.Any()).Return(nil, errorvalues.NetworkError(context.Canceled))

	err := f.engine.PreviousMonth(context.Background())
	assert.ErrorIs(t, err, errorvalues.ErrNetwork)
	state := f.engine.State()
	assert.Equal(t, time.May, state.CurrentMonth.Month())
	assert.NoError(t, state.Err)
}

func TestOverlappingIncrementsReconcile(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), []entity.CheckIn{})
	started := []chan struct{}{make(chan struct{}), make(chan struct{})}
	gates := []chan struct{}{make(chan struct{}), make(chan struct{})}
	var calls atomic.Int32
	f.checkIns.EXPECT().Increment(gomock.Any(), "q-1", "t-1", gomock.Any()).DoAndReturn(
		func(ctx context.Context, questID, taskID string, date time.Time) (*entity.CheckIn, error) {
			n := int(calls.Add(1))
			close(started[n-1])
			<-gates[n-1]
			return serverCheckIn("c-1", "t-1", 15, n), nil
		}).Times(2)
	ctx := context.Background()
	done := []chan error{make(chan error, 1), make(chan error, 1)}

	go func() { done[0] <- f.engine.Increment(ctx, "t-1", today) }()
	<-started[0]
	assert.Equal(t, 1, f.engine.Count("t-1", today))

	go func() { done[1] <- f.engine.Increment(ctx, "t-1", today) }()
	<-started[1]
	assert.Equal(t, 2, f.engine.Count("t-1", today))

	close(gates[0])
	require.NoError(t, <-done[0])
	close(gates[1])
	require.NoError(t, <-done[1])

	state := f.engine.State()
	require.Len(t, state.CheckIns, 1)
	assert.Equal(t, "c-1", state.CheckIns[0].ID)
	assert.Equal(t, 2, state.CheckIns[0].Count)
}

func TestReconcileAfterTempEntryReplaced(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), []entity.CheckIn{})
	started := make(chan struct{})
	gate := make(chan struct{})
	f.checkIns.EXPECT().Increment(gomock.Any(), "q-1", "t-1", gomock.Any()).DoAndReturn(
		func(ctx context.Context, questID, taskID string, date time.Time) (*entity.CheckIn, error) {
			close(started)
			<-gate
			return serverCheckIn("c-1", "t-1", 15, 1), nil
		})
	f.checkIns.EXPECT().GetCheckIns(gomock.Any(), "q-1", gomock.Any()).Return([]entity.CheckIn{*serverCheckIn("c-1", "t-1", 15, 1)}, nil)
	ctx := context.Background()
	done := make(chan error, 1)

	go func() { done <- f.engine.Increment(ctx, "t-1", today) }()
	<-started
	require.NoError(t, f.engine.LoadCheckInsForCurrentMonth(ctx))
	close(gate)
	require.NoError(t, <-done)

	state := f.engine.State()
	require.Len(t, state.CheckIns, 1)
	assert.Equal(t, "c-1", state.CheckIns[0].ID)
}

func TestHandleScoreboardUpdate(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), nil)
	ctx := context.Background()
	name := "cherry"
	joined := testQuest()
	joined.Participants = []entity.Participant{{UserID: "u-1", Username: &name, TotalPoints: 8}}
	f.quests.EXPECT().GetQuests(gomock.Any()).Return([]entity.Quest{{ID: "q-2"}, *joined}, nil)

	require.NoError(t, f.engine.HandleScoreboardUpdate(ctx, "q-2-other"))
	require.NoError(t, f.engine.HandleScoreboardUpdate(ctx, "q-1"))
	state := f.engine.State()
	require.Len(t, state.Quest.Participants, 1)
	assert.Equal(t, 8, state.Quest.Participants[0].TotalPoints)
	require.NotNil(t, state.Stats)
}

func TestSubscribe(t *testing.T) {
	t.Parallel()
	f := newFixture(t, testQuest(), nil)
	var last atomic.Value
	unsubscribe := f.engine.Subscribe(func(s questdetail.State) { last.Store(entity.DayKey(s.SelectedDate)) })

	f.engine.SelectDate(june(3))
	assert.Equal(t, "2024-06-03", last.Load())
	unsubscribe()
	f.engine.SelectDate(june(4))
	assert.Equal(t, "2024-06-03", last.Load())
}
