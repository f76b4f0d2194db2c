package service

import (
	"context"
	"time"

	"github.com/limbo/cherries/pkg/entity"
)

type AuthServiceI interface {
	// Exchanges credentials for a token pair. Wrong credentials give errorvalues.ErrInvalidCredentials
	Login(ctx context.Context, email, password string) (*entity.AuthResponse, error)
	// Registers new account and returns its token pair
	Signup(ctx context.Context, email, username, password string) (*entity.AuthResponse, error)
	// Exchanges refresh token for new token pair. Rejected refresh token gives errorvalues.ErrTokenExpired
	Refresh(ctx context.Context, refreshToken string) (*entity.AuthResponse, error)
	Logout(ctx context.Context, accessToken string) error
	DeleteAccount(ctx context.Context, accessToken string) error
}

// RequesterI is the authenticated gateway.
type RequesterI interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, body, out any) error
	Patch(ctx context.Context, path string, body, out any) error
	Delete(ctx context.Context, path string, out any) error
}

type SessionUpdaterI interface {
	// Replaces cached user and re-persists the active session with it
	UpdateUser(ctx context.Context, user *entity.User) error
}

type CreateQuestRequest struct {
	Name        string             `validate:"required,max=100"`
	Description *string            `validate:"omitempty,max=500"`
	StartDate   time.Time          `validate:"required"`
	EndDate     time.Time          `validate:"required,gtefield=StartDate"`
	DailyTasks  []DailyTaskRequest `validate:"dive"`
}

type DailyTaskRequest struct {
	Title       string  `validate:"required,max=100"`
	Description *string `validate:"omitempty,max=500"`
	Points      int     `validate:"gt=0"`
}

type QuestServiceI interface {
	// Lists quests the current user created or joined
	GetQuests(ctx context.Context) ([]entity.Quest, error)
	// Validates request and creates quest with its daily tasks
	CreateQuest(ctx context.Context, req *CreateQuestRequest) (*entity.Quest, error)
	// Normalizes share code to digits and joins quest by it
	JoinQuest(ctx context.Context, shareCode string) (*entity.Quest, error)
	DeleteQuest(ctx context.Context, questID string) error
}

type CheckInServiceI interface {
	// Adds one completion of the task on the date. Returns authoritative check-in
	Increment(ctx context.Context, questID, dailyTaskID string, date time.Time) (*entity.CheckIn, error)
	// Removes one completion. Returns nil check-in when the server deleted the record
	Decrement(ctx context.Context, questID, dailyTaskID string, date time.Time) (*entity.CheckIn, error)
	// Lists quest check-ins, limited to the month of the given date when it is not nil
	GetCheckIns(ctx context.Context, questID string, month *time.Time) ([]entity.CheckIn, error)
	GetStats(ctx context.Context, questID string) (*entity.CheckInStats, error)
}

type ProfileServiceI interface {
	// Updates username and/or avatar and pushes returned user into the session
	UpdateProfile(ctx context.Context, update *entity.UserUpdate) (*entity.User, error)
}
