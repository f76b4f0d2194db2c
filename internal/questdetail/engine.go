// Package questdetail keeps the check-in state of one quest in sync with the
// backend. Mutations are applied locally first and reconciled with the server
// response, or rolled back to the pre-mutation snapshot on failure.
package questdetail

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/cherries/internal/error_values"
	"github.com/limbo/cherries/internal/service"
	"github.com/limbo/cherries/pkg/entity"
	"github.com/limbo/cherries/pkg/logger"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const TempIDPrefix = "temp-"

type CompletionStatus int

const (
	StatusNone CompletionStatus = iota
	StatusPartial
	StatusComplete
)

func (cs CompletionStatus) String() string {
	switch cs {
	case StatusPartial:
		return "partial"
	case StatusComplete:
		return "complete"
	default:
		return "none"
	}
}

// State is a snapshot handed to subscribers and callers. Slices are copies.
type State struct {
	Quest        entity.Quest
	CheckIns     []entity.CheckIn
	Stats        *entity.CheckInStats
	SelectedDate time.Time
	CurrentMonth time.Time
	IsLoading    bool
	Err          error
}

// Engine is bound to one quest for its whole life.
//
// Overlapping mutations of the same cell are not serialized. Each applies its
// optimistic delta at once and reconciles on its own response, matching by
// temporary id first and by (task, day) second. The mutex guards state only
// and is released across network calls.
type Engine struct {
	checkInService service.CheckInServiceI
	questService   service.QuestServiceI
	logger         *zap.Logger
	now            func() time.Time

	mu           sync.Mutex
	quest        entity.Quest
	checkIns     []entity.CheckIn
	stats        *entity.CheckInStats
	selectedDate time.Time
	currentMonth time.Time
	loading      int
	lastErr      error
	released     bool
	subscribers  map[int]func(State)
	nextSubID    int

	background sync.WaitGroup
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.logger = logger.OrNop(l)
	}
}

// New binds an engine to quest. The selected date and visible month start at
// today, clamped into the quest's date range.
func New(quest *entity.Quest, checkIns service.CheckInServiceI, quests service.QuestServiceI, opts ...Option) *Engine {
	e := &Engine{
		checkInService: checkIns,
		questService:   quests,
		logger:         zap.NewNop(),
		now:            time.Now,
		quest:          *quest,
		subscribers:    make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With(zap.String("quest_id", quest.ID))
	today := e.now()
	switch {
	case entity.DayKey(today) < entity.DayKey(quest.StartDate.Time):
		today = quest.StartDate.Time
	case entity.DayKey(today) > entity.DayKey(quest.EndDate.Time):
		today = quest.EndDate.Time
	}
	e.selectedDate = today
	e.currentMonth = firstOfMonth(today)
	return e
}

// LoadData fetches stats and the visible month's check-ins in parallel and
// replaces both. On failure nothing is replaced and the error is recorded.
func (e *Engine) LoadData(ctx context.Context) error {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return releasedError()
	}
	month := e.currentMonth
	e.loading++
	e.lastErr = nil
	e.mu.Unlock()
	e.notify()

	var (
		stats    *entity.CheckInStats
		checkIns []entity.CheckIn
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats, err = e.checkInService.GetStats(gctx, e.quest.ID)
		return err
	})
	g.Go(func() error {
		var err error
		checkIns, err = e.checkInService.GetCheckIns(gctx, e.quest.ID, &month)
		return err
	})
	err := g.Wait()

	e.mu.Lock()
	e.loading--
	if e.released {
		e.mu.Unlock()
		return releasedError()
	}
	if err != nil {
		apiErr := errorvalues.Classify(err)
		e.lastErr = apiErr
		e.mu.Unlock()
		e.logger.Warn("loading quest data failed", zap.Error(apiErr))
		e.notify()
		return apiErr
	}
	e.stats = stats
	if e.currentMonth.Equal(month) {
		e.checkIns = checkIns
	}
	e.mu.Unlock()
	e.notify()
	return nil
}

// LoadCheckInsForCurrentMonth replaces the local collection with the visible
// month's check-ins. Failures are logged and returned but not recorded.
func (e *Engine) LoadCheckInsForCurrentMonth(ctx context.Context) error {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return releasedError()
	}
	month := e.currentMonth
	e.mu.Unlock()

	checkIns, err := e.checkInService.GetCheckIns(ctx, e.quest.ID, &month)
	if err != nil {
		apiErr := errorvalues.Classify(err)
		e.logger.Warn("loading check-ins failed", zap.Error(apiErr))
		return apiErr
	}
	e.mu.Lock()
	// A later navigation owns the collection now.
	if e.released || !e.currentMonth.Equal(month) {
		e.mu.Unlock()
		return nil
	}
	e.checkIns = checkIns
	e.mu.Unlock()
	e.notify()
	return nil
}

func (e *Engine) PreviousMonth(ctx context.Context) error {
	return e.shiftMonth(ctx, -1)
}

func (e *Engine) NextMonth(ctx context.Context) error {
	return e.shiftMonth(ctx, 1)
}

// shiftMonth moves the visible month and re-fetches it. Local state of the
// previous month is discarded, not merged.
func (e *Engine) shiftMonth(ctx context.Context, delta int) error {
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return releasedError()
	}
	e.currentMonth = e.currentMonth.AddDate(0, delta, 0)
	e.mu.Unlock()
	e.notify()
	return e.LoadCheckInsForCurrentMonth(ctx)
}

func (e *Engine) SelectDate(date time.Time) {
	e.mu.Lock()
	e.selectedDate = date
	e.mu.Unlock()
	e.notify()
}

// Increment adds one completion of the task on date.
func (e *Engine) Increment(ctx context.Context, dailyTaskID string, date time.Time) error {
	if err := e.checkMutable(dailyTaskID, date); err != nil {
		return err
	}
	day := entity.DayKey(date)

	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return releasedError()
	}
	snapshot := slices.Clone(e.checkIns)
	var tempID string
	if i := e.indexOf(dailyTaskID, day); i >= 0 {
		e.checkIns[i].Count++
	} else {
		tempID = TempIDPrefix + uuid.NewString()
		e.checkIns = append(e.checkIns, entity.CheckIn{
			ID:          tempID,
			QuestID:     e.quest.ID,
			DailyTaskID: dailyTaskID,
			CheckInDate: entity.NewTimestamp(entity.StartOfDay(date)),
			Count:       1,
			CreatedAt:   entity.NewTimestamp(e.now()),
		})
	}
	e.mu.Unlock()
	e.notify()

	checkIn, err := e.checkInService.Increment(ctx, e.quest.ID, dailyTaskID, date)

	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		e.logger.Debug("increment result dropped for released engine")
		return droppedError(err)
	}
	if err != nil {
		return e.rollback(snapshot, err, "increment failed")
	}
	switch {
	case tempID != "" && e.replaceByID(tempID, *checkIn):
	case e.replaceByKey(*checkIn):
	default:
		e.checkIns = append(e.checkIns, *checkIn)
	}
	e.mu.Unlock()
	e.notify()
	e.reloadStats(ctx)
	return nil
}

// Decrement removes one completion of the task on date. The local entry is
// removed outright when its count is 1 or less, mirroring the server, which
// deletes the record and answers with null. Decrementing an absent cell is a
// no-op without a request.
func (e *Engine) Decrement(ctx context.Context, dailyTaskID string, date time.Time) error {
	if err := e.checkMutable(dailyTaskID, date); err != nil {
		return err
	}
	day := entity.DayKey(date)

	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return releasedError()
	}
	i := e.indexOf(dailyTaskID, day)
	if i < 0 {
		e.mu.Unlock()
		return nil
	}
	existing := e.checkIns[i]
	snapshot := slices.Clone(e.checkIns)
	if existing.Count > 1 {
		e.checkIns[i].Count--
	} else {
		e.checkIns = slices.Delete(e.checkIns, i, i+1)
	}
	e.mu.Unlock()
	e.notify()

	checkIn, err := e.checkInService.Decrement(ctx, e.quest.ID, dailyTaskID, date)

	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		e.logger.Debug("decrement result dropped for released engine")
		return droppedError(err)
	}
	if err != nil {
		return e.rollback(snapshot, err, "decrement failed")
	}
	if checkIn == nil {
		e.checkIns = slices.DeleteFunc(e.checkIns, func(c entity.CheckIn) bool {
			return c.ID == existing.ID
		})
	} else {
		switch {
		case e.replaceByID(checkIn.ID, *checkIn):
		case e.replaceByKey(*checkIn):
		default:
			e.checkIns = append(e.checkIns, *checkIn)
		}
	}
	e.mu.Unlock()
	e.notify()
	e.reloadStats(ctx)
	return nil
}

// Toggle decrements the task on the selected date when it has a check-in and
// increments it otherwise. Two quick toggles on one cell may race.
func (e *Engine) Toggle(ctx context.Context, dailyTaskID string) error {
	e.mu.Lock()
	date := e.selectedDate
	exists := e.indexOf(dailyTaskID, entity.DayKey(date)) >= 0
	e.mu.Unlock()
	if exists {
		return e.Decrement(ctx, dailyTaskID, date)
	}
	return e.Increment(ctx, dailyTaskID, date)
}

// HandleScoreboardUpdate is the hook for live updates. It re-fetches stats
// and the participant list of the bound quest; events for other quests are ignored.
func (e *Engine) HandleScoreboardUpdate(ctx context.Context, questID string) error {
	if questID != e.quest.ID {
		return nil
	}
	g, gctx := errgroup.WithContext(ctx)
	var (
		stats  *entity.CheckInStats
		quests []entity.Quest
	)
	g.Go(func() error {
		var err error
		stats, err = e.checkInService.GetStats(gctx, questID)
		return err
	})
	g.Go(func() error {
		var err error
		quests, err = e.questService.GetQuests(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		apiErr := errorvalues.Classify(err)
		e.logger.Warn("scoreboard refresh failed", zap.Error(apiErr))
		return apiErr
	}
	e.mu.Lock()
	if e.released {
		e.mu.Unlock()
		return nil
	}
	e.stats = stats
	for _, q := range quests {
		if q.ID == questID {
			e.quest.Participants = q.Participants
			break
		}
	}
	e.mu.Unlock()
	e.notify()
	return nil
}

// Release detaches the engine. Responses arriving afterwards are dropped.
func (e *Engine) Release() {
	e.mu.Lock()
	e.released = true
	clear(e.subscribers)
	e.mu.Unlock()
}

// Wait blocks until background stats reloads have finished.
func (e *Engine) Wait() {
	e.background.Wait()
}

func (e *Engine) Subscribe(fn func(State)) (unsubscribe func()) {
	e.mu.Lock()
	id := e.nextSubID
	e.nextSubID++
	e.subscribers[id] = fn
	e.mu.Unlock()
	return func() {
		e.mu.Lock()
		delete(e.subscribers, id)
		e.mu.Unlock()
	}
}

func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stateLocked()
}

func (e *Engine) ClearError() {
	e.mu.Lock()
	e.lastErr = nil
	e.mu.Unlock()
	e.notify()
}

// Count returns the completions of the task on date, 0 when absent.
func (e *Engine) Count(dailyTaskID string, date time.Time) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	if i := e.indexOf(dailyTaskID, entity.DayKey(date)); i >= 0 {
		return e.checkIns[i].Count
	}
	return 0
}

func (e *Engine) IsCompleted(dailyTaskID string, date time.Time) bool {
	return e.Count(dailyTaskID, date) > 0
}

// CompletionStatus compares the number of distinct tasks checked in on date
// with the quest's task count.
func (e *Engine) CompletionStatus(date time.Time) CompletionStatus {
	if !e.IsDateInQuestRange(date) {
		return StatusNone
	}
	day := entity.DayKey(date)
	e.mu.Lock()
	defer e.mu.Unlock()
	total := len(e.quest.DailyTasks)
	if total == 0 {
		return StatusNone
	}
	done := make(map[string]struct{}, total)
	for _, c := range e.checkIns {
		if c.Count > 0 && entity.DayKey(c.CheckInDate.Time) == day {
			done[c.DailyTaskID] = struct{}{}
		}
	}
	switch {
	case len(done) == 0:
		return StatusNone
	case len(done) >= total:
		return StatusComplete
	default:
		return StatusPartial
	}
}

// IsDateInQuestRange compares at day granularity, both ends inclusive.
func (e *Engine) IsDateInQuestRange(date time.Time) bool {
	day := entity.DayKey(date)
	return day >= entity.DayKey(e.quest.StartDate.Time) && day <= entity.DayKey(e.quest.EndDate.Time)
}

// CanCheckIn is true for days inside the quest range that are not in the future.
func (e *Engine) CanCheckIn(date time.Time) bool {
	return e.IsDateInQuestRange(date) && entity.DayKey(date) <= entity.DayKey(e.now())
}

func (e *Engine) checkMutable(dailyTaskID string, date time.Time) error {
	if !e.CanCheckIn(date) {
		return errorvalues.InvalidRequest("check-ins are closed for "+entity.DayKey(date), nil)
	}
	if !slices.ContainsFunc(e.quest.DailyTasks, func(t entity.DailyTask) bool { return t.ID == dailyTaskID }) {
		return errorvalues.InvalidRequest("unknown daily task "+dailyTaskID, nil)
	}
	return nil
}

// rollback restores snapshot and records err. Called with mu held; unlocks it.
func (e *Engine) rollback(snapshot []entity.CheckIn, err error, msg string) error {
	apiErr := errorvalues.Classify(err)
	e.checkIns = snapshot
	e.lastErr = apiErr
	e.mu.Unlock()
	e.logger.Warn(msg, zap.Error(apiErr))
	e.notify()
	return apiErr
}

// reloadStats re-fetches stats in the background. Its failure is only logged.
func (e *Engine) reloadStats(ctx context.Context) {
	ctx = context.WithoutCancel(ctx)
	e.background.Add(1)
	go func() {
		defer e.background.Done()
		stats, err := e.checkInService.GetStats(ctx, e.quest.ID)
		if err != nil {
			e.logger.Warn("reloading stats failed", zap.Error(err))
			return
		}
		e.mu.Lock()
		if e.released {
			e.mu.Unlock()
			return
		}
		e.stats = stats
		e.mu.Unlock()
		e.notify()
	}()
}

func (e *Engine) indexOf(dailyTaskID, day string) int {
	return slices.IndexFunc(e.checkIns, func(c entity.CheckIn) bool {
		return c.DailyTaskID == dailyTaskID && entity.DayKey(c.CheckInDate.Time) == day
	})
}

func (e *Engine) replaceByID(id string, checkIn entity.CheckIn) bool {
	i := slices.IndexFunc(e.checkIns, func(c entity.CheckIn) bool { return c.ID == id })
	if i < 0 {
		return false
	}
	e.checkIns[i] = checkIn
	return true
}

func (e *Engine) replaceByKey(checkIn entity.CheckIn) bool {
	i := e.indexOf(checkIn.DailyTaskID, entity.DayKey(checkIn.CheckInDate.Time))
	if i < 0 {
		return false
	}
	e.checkIns[i] = checkIn
	return true
}

func (e *Engine) stateLocked() State {
	return State{
		Quest:        e.quest,
		CheckIns:     slices.Clone(e.checkIns),
		Stats:        e.stats,
		SelectedDate: e.selectedDate,
		CurrentMonth: e.currentMonth,
		IsLoading:    e.loading > 0,
		Err:          e.lastErr,
	}
}

func (e *Engine) notify() {
	e.mu.Lock()
	if e.released || len(e.subscribers) == 0 {
		e.mu.Unlock()
		return
	}
	state := e.stateLocked()
	subs := make([]func(State), 0, len(e.subscribers))
	for _, fn := range e.subscribers {
		subs = append(subs, fn)
	}
	e.mu.Unlock()
	for _, fn := range subs {
		fn(state)
	}
}

func droppedError(err error) error {
	if err == nil {
		return nil
	}
	return errorvalues.Classify(err)
}

func releasedError() error {
	return errorvalues.InvalidRequest("quest detail is no longer active", errorvalues.ErrEngineReleased)
}

func firstOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()
	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}
