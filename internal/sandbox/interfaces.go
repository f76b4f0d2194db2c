package sandbox

import (
	"context"
	"time"

	"github.com/limbo/cherries/pkg/entity"
)

type UserRecord struct {
	User         entity.User
	PasswordHash []byte
}

type StoreI interface {
	// Creates user, returns ErrUserExists if email is taken
	CreateUser(ctx context.Context, email, username string, passwordHash []byte) (*entity.User, error)
	// Returns user with password hash by email
	UserByEmail(ctx context.Context, email string) (*UserRecord, error)
	UserByID(ctx context.Context, userID string) (*entity.User, error)
	UpdateUser(ctx context.Context, userID string, upd *entity.UserUpdate) (*entity.User, error)
	// Removes user together with created quests, check-ins and refresh tokens
	DeleteUser(ctx context.Context, userID string) error

	SaveRefreshToken(ctx context.Context, token, userID string) error
	// Returns owner of the token and forgets it
	ConsumeRefreshToken(ctx context.Context, token string) (string, error)
	RevokeRefreshTokens(ctx context.Context, userID string) error

	CreateQuest(ctx context.Context, creatorID string, req *entity.QuestCreate) (*entity.Quest, error)
	JoinQuest(ctx context.Context, userID, shareCode string) (*entity.Quest, error)
	// Returns quests where user participates
	QuestsForUser(ctx context.Context, userID string) ([]entity.Quest, error)
	DeleteQuest(ctx context.Context, userID, questID string) error

	Increment(ctx context.Context, userID string, req *entity.CheckInCreate) (*entity.CheckIn, error)
	// Returns nil check-in when the record was deleted
	Decrement(ctx context.Context, userID string, req *entity.CheckInCreate) (*entity.CheckIn, error)
	// Returns user check-ins of quest, only of month's date if month isn't nil
	CheckIns(ctx context.Context, userID, questID string, month *time.Time) ([]entity.CheckIn, error)
	Stats(ctx context.Context, userID, questID string) (*entity.CheckInStats, error)
}
