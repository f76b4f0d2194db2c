package sandbox

import (
	"context"
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	errorvalues "github.com/limbo/cherries/internal/error_values"
	"github.com/limbo/cherries/pkg/entity"
)

const shareCodeTTL = 7 * 24 * time.Hour

type questRecord struct {
	quest        entity.Quest
	participants []string
	joinedAt     map[string]time.Time
}

// MemoryStore keeps the whole backend state in maps behind one mutex.
type MemoryStore struct {
	now func() time.Time

	mu            sync.RWMutex
	users         map[string]*UserRecord
	emails        map[string]string
	refreshTokens map[string]string
	quests        map[string]*questRecord
	checkIns      map[string]*entity.CheckIn
}

func NewMemoryStore(now func() time.Time) *MemoryStore {
	if now == nil {
		now = time.Now
	}
	return &MemoryStore{
		now:           now,
		users:         make(map[string]*UserRecord),
		emails:        make(map[string]string),
		refreshTokens: make(map[string]string),
		quests:        make(map[string]*questRecord),
		checkIns:      make(map[string]*entity.CheckIn),
	}
}

func (ms *MemoryStore) CreateUser(ctx context.Context, email, username string, passwordHash []byte) (*entity.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, ok := ms.emails[email]; ok {
		return nil, errorvalues.ErrUserExists
	}
	rec := &UserRecord{
		User: entity.User{
			ID:        uuid.NewString(),
			Email:     email,
			CreatedAt: entity.NewTimestamp(ms.now().UTC()),
		},
		PasswordHash: passwordHash,
	}
	if username != "" {
		rec.User.Username = &username
	}
	ms.users[rec.User.ID] = rec
	ms.emails[email] = rec.User.ID
	user := rec.User
	return &user, nil
}

func (ms *MemoryStore) UserByEmail(ctx context.Context, email string) (*UserRecord, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	id, ok := ms.emails[strings.ToLower(strings.TrimSpace(email))]
	if !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	rec := *ms.users[id]
	return &rec, nil
}

func (ms *MemoryStore) UserByID(ctx context.Context, userID string) (*entity.User, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	rec, ok := ms.users[userID]
	if !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	user := rec.User
	return &user, nil
}

func (ms *MemoryStore) UpdateUser(ctx context.Context, userID string, upd *entity.UserUpdate) (*entity.User, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	rec, ok := ms.users[userID]
	if !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	if upd.Username != nil {
		username := *upd.Username
		rec.User.Username = &username
	}
	if upd.Avatar != nil {
		avatar := *upd.Avatar
		rec.User.Avatar = &avatar
	}
	updated := entity.NewTimestamp(ms.now().UTC())
	rec.User.UpdatedAt = &updated
	user := rec.User
	return &user, nil
}

func (ms *MemoryStore) DeleteUser(ctx context.Context, userID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	rec, ok := ms.users[userID]
	if !ok {
		return errorvalues.ErrUserNotFound
	}
	delete(ms.emails, rec.User.Email)
	delete(ms.users, userID)
	for token, owner := range ms.refreshTokens {
		if owner == userID {
			delete(ms.refreshTokens, token)
		}
	}
	for id, q := range ms.quests {
		if q.quest.CreatorID == userID {
			ms.deleteQuestLocked(id)
			continue
		}
		q.participants = slices.DeleteFunc(q.participants, func(p string) bool { return p == userID })
		delete(q.joinedAt, userID)
	}
	for id, c := range ms.checkIns {
		if c.UserID == userID {
			delete(ms.checkIns, id)
		}
	}
	return nil
}

func (ms *MemoryStore) SaveRefreshToken(ctx context.Context, token, userID string) error {
	ms.mu.Lock()
	ms.refreshTokens[token] = userID
	ms.mu.Unlock()
	return nil
}

func (ms *MemoryStore) ConsumeRefreshToken(ctx context.Context, token string) (string, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	userID, ok := ms.refreshTokens[token]
	if !ok {
		return "", errorvalues.ErrInvalidRefresh
	}
	delete(ms.refreshTokens, token)
	if _, ok := ms.users[userID]; !ok {
		return "", errorvalues.ErrInvalidRefresh
	}
	return userID, nil
}

func (ms *MemoryStore) RevokeRefreshTokens(ctx context.Context, userID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for token, owner := range ms.refreshTokens {
		if owner == userID {
			delete(ms.refreshTokens, token)
		}
	}
	return nil
}

func (ms *MemoryStore) CreateQuest(ctx context.Context, creatorID string, req *entity.QuestCreate) (*entity.Quest, error) {
	start, err := time.Parse(time.DateOnly, req.StartDate)
	if err != nil {
		return nil, errorvalues.ErrInvalidDate
	}
	end, err := time.Parse(time.DateOnly, req.EndDate)
	if err != nil || end.Before(start) {
		return nil, errorvalues.ErrInvalidDate
	}
	now := ms.now().UTC()
	q := &questRecord{
		quest: entity.Quest{
			ID:                 uuid.NewString(),
			Name:               req.Name,
			Description:        req.Description,
			StartDate:          entity.NewTimestamp(start),
			EndDate:            entity.NewTimestamp(end),
			CreatorID:          creatorID,
			ShareCodeExpiresAt: entity.NewTimestamp(now.Add(shareCodeTTL)),
			CreatedAt:          entity.NewTimestamp(now),
		},
		participants: []string{creatorID},
		joinedAt:     map[string]time.Time{creatorID: now},
	}
	for _, t := range req.DailyTasks {
		q.quest.DailyTasks = append(q.quest.DailyTasks, entity.DailyTask{
			ID:          uuid.NewString(),
			QuestID:     q.quest.ID,
			Title:       t.Title,
			Description: t.Description,
			Points:      t.Points,
			CreatedAt:   entity.NewTimestamp(now),
		})
	}

	ms.mu.Lock()
	defer ms.mu.Unlock()
	if _, ok := ms.users[creatorID]; !ok {
		return nil, errorvalues.ErrUserNotFound
	}
	q.quest.ShareCode = ms.newShareCodeLocked()
	ms.quests[q.quest.ID] = q
	return ms.questViewLocked(q), nil
}

func (ms *MemoryStore) JoinQuest(ctx context.Context, userID, shareCode string) (*entity.Quest, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for _, q := range ms.quests {
		if q.quest.ShareCode != shareCode {
			continue
		}
		if ms.now().After(q.quest.ShareCodeExpiresAt.Time) {
			return nil, errorvalues.ErrInvalidShareCode
		}
		if slices.Contains(q.participants, userID) {
			return nil, errorvalues.ErrAlreadyJoined
		}
		q.participants = append(q.participants, userID)
		q.joinedAt[userID] = ms.now().UTC()
		return ms.questViewLocked(q), nil
	}
	return nil, errorvalues.ErrInvalidShareCode
}

func (ms *MemoryStore) QuestsForUser(ctx context.Context, userID string) ([]entity.Quest, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	quests := make([]entity.Quest, 0)
	for _, q := range ms.quests {
		if slices.Contains(q.participants, userID) {
			quests = append(quests, *ms.questViewLocked(q))
		}
	}
	sort.Slice(quests, func(i, j int) bool {
		return quests[i].CreatedAt.After(quests[j].CreatedAt.Time)
	})
	return quests, nil
}

func (ms *MemoryStore) DeleteQuest(ctx context.Context, userID, questID string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	q, ok := ms.quests[questID]
	if !ok {
		return errorvalues.ErrQuestNotFound
	}
	if q.quest.CreatorID != userID {
		return errorvalues.ErrNotCreator
	}
	ms.deleteQuestLocked(questID)
	return nil
}

func (ms *MemoryStore) Increment(ctx context.Context, userID string, req *entity.CheckInCreate) (*entity.CheckIn, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	day, err := ms.checkInDayLocked(userID, req)
	if err != nil {
		return nil, err
	}
	now := ms.now().UTC()
	if c := ms.findCheckInLocked(userID, req.DailyTaskID, day); c != nil {
		c.Count++
		updated := entity.NewTimestamp(now)
		c.UpdatedAt = &updated
		checkIn := *c
		return &checkIn, nil
	}
	c := &entity.CheckIn{
		ID:          uuid.NewString(),
		UserID:      userID,
		QuestID:     req.QuestID,
		DailyTaskID: req.DailyTaskID,
		CheckInDate: entity.NewTimestamp(day),
		Count:       1,
		Notes:       req.Notes,
		CreatedAt:   entity.NewTimestamp(now),
	}
	ms.checkIns[c.ID] = c
	checkIn := *c
	return &checkIn, nil
}

func (ms *MemoryStore) Decrement(ctx context.Context, userID string, req *entity.CheckInCreate) (*entity.CheckIn, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	day, err := ms.checkInDayLocked(userID, req)
	if err != nil {
		return nil, err
	}
	c := ms.findCheckInLocked(userID, req.DailyTaskID, day)
	if c == nil {
		return nil, nil
	}
	if c.Count <= 1 {
		delete(ms.checkIns, c.ID)
		return nil, nil
	}
	c.Count--
	updated := entity.NewTimestamp(ms.now().UTC())
	c.UpdatedAt = &updated
	checkIn := *c
	return &checkIn, nil
}

func (ms *MemoryStore) CheckIns(ctx context.Context, userID, questID string, month *time.Time) ([]entity.CheckIn, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	if _, err := ms.participantQuestLocked(userID, questID); err != nil {
		return nil, err
	}
	checkIns := make([]entity.CheckIn, 0)
	for _, c := range ms.checkIns {
		if c.UserID != userID || c.QuestID != questID {
			continue
		}
		if month != nil {
			y, m, _ := c.CheckInDate.Date()
			my, mm, _ := month.Date()
			if y != my || m != mm {
				continue
			}
		}
		checkIns = append(checkIns, *c)
	}
	sort.Slice(checkIns, func(i, j int) bool {
		return checkIns[i].CheckInDate.Before(checkIns[j].CheckInDate.Time)
	})
	return checkIns, nil
}

// Stats sums counts and points of the user's check-ins. A streak is a run of
// consecutive days with at least one check-in; the current one ends today or
// yesterday.
func (ms *MemoryStore) Stats(ctx context.Context, userID, questID string) (*entity.CheckInStats, error) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	q, err := ms.participantQuestLocked(userID, questID)
	if err != nil {
		return nil, err
	}
	stats := &entity.CheckInStats{QuestID: questID, UserID: userID}
	days := make(map[string]struct{})
	for _, c := range ms.checkIns {
		if c.UserID != userID || c.QuestID != questID || c.Count <= 0 {
			continue
		}
		stats.TotalCheckIns += c.Count
		stats.TotalPoints += c.Count * taskPoints(&q.quest, c.DailyTaskID)
		days[entity.DayKey(c.CheckInDate.Time)] = struct{}{}
	}
	stats.CurrentStreak, stats.LongestStreak = streaks(days, ms.now().UTC())
	return stats, nil
}

func streaks(days map[string]struct{}, today time.Time) (current, longest int) {
	if len(days) == 0 {
		return 0, 0
	}
	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	run := 0
	var prev time.Time
	for i, k := range keys {
		d, _ := time.Parse(time.DateOnly, k)
		if i > 0 && d.Sub(prev) == 24*time.Hour {
			run++
		} else {
			run = 1
		}
		longest = max(longest, run)
		prev = d
	}
	last := keys[len(keys)-1]
	todayKey := entity.DayKey(today)
	yesterdayKey := entity.DayKey(today.AddDate(0, 0, -1))
	if last == todayKey || last == yesterdayKey {
		current = run
	}
	return current, longest
}

func taskPoints(q *entity.Quest, taskID string) int {
	for _, t := range q.DailyTasks {
		if t.ID == taskID {
			return t.Points
		}
	}
	return 0
}

func (ms *MemoryStore) checkInDayLocked(userID string, req *entity.CheckInCreate) (time.Time, error) {
	q, err := ms.participantQuestLocked(userID, req.QuestID)
	if err != nil {
		return time.Time{}, err
	}
	if !slices.ContainsFunc(q.quest.DailyTasks, func(t entity.DailyTask) bool { return t.ID == req.DailyTaskID }) {
		return time.Time{}, errorvalues.ErrTaskNotFound
	}
	day, err := time.Parse(time.DateOnly, req.CheckInDate)
	if err != nil {
		return time.Time{}, errorvalues.ErrInvalidDate
	}
	if day.Before(q.quest.StartDate.Time) || day.After(q.quest.EndDate.Time) {
		return time.Time{}, errorvalues.ErrOutOfQuestRange
	}
	return day, nil
}

func (ms *MemoryStore) participantQuestLocked(userID, questID string) (*questRecord, error) {
	q, ok := ms.quests[questID]
	if !ok {
		return nil, errorvalues.ErrQuestNotFound
	}
	if !slices.Contains(q.participants, userID) {
		return nil, errorvalues.ErrNotParticipant
	}
	return q, nil
}

func (ms *MemoryStore) findCheckInLocked(userID, taskID string, day time.Time) *entity.CheckIn {
	for _, c := range ms.checkIns {
		if c.UserID == userID && c.DailyTaskID == taskID && c.CheckInDate.Equal(day) {
			return c
		}
	}
	return nil
}

func (ms *MemoryStore) deleteQuestLocked(questID string) {
	delete(ms.quests, questID)
	for id, c := range ms.checkIns {
		if c.QuestID == questID {
			delete(ms.checkIns, id)
		}
	}
}

func (ms *MemoryStore) newShareCodeLocked() string {
	for {
		code := fmt.Sprintf("%09d", rand.IntN(1_000_000_000))
		taken := false
		for _, q := range ms.quests {
			if q.quest.ShareCode == code {
				taken = true
				break
			}
		}
		if !taken {
			return code
		}
	}
}

// questViewLocked copies the quest and fills participants with their points.
func (ms *MemoryStore) questViewLocked(q *questRecord) *entity.Quest {
	view := q.quest
	view.DailyTasks = slices.Clone(q.quest.DailyTasks)
	view.Participants = make([]entity.Participant, 0, len(q.participants))
	for _, userID := range q.participants {
		p := entity.Participant{
			UserID:   userID,
			JoinedAt: entity.NewTimestamp(q.joinedAt[userID]),
		}
		if rec, ok := ms.users[userID]; ok {
			p.Username = rec.User.Username
			p.Avatar = rec.User.Avatar
		}
		for _, c := range ms.checkIns {
			if c.UserID == userID && c.QuestID == q.quest.ID {
				p.TotalPoints += c.Count * taskPoints(&q.quest, c.DailyTaskID)
			}
		}
		view.Participants = append(view.Participants, p)
	}
	sort.SliceStable(view.Participants, func(i, j int) bool {
		return view.Participants[i].TotalPoints > view.Participants[j].TotalPoints
	})
	return &view
}
