package entity

import "time"

const (
	AvatarEmoji  = "emoji"
	AvatarPreset = "preset"
	AvatarCustom = "custom"
)

type Avatar struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

type User struct {
	ID        string     `json:"id"`
	Email     string     `json:"email"`
	Username  *string    `json:"username,omitempty"`
	Avatar    *Avatar    `json:"avatar,omitempty"`
	CreatedAt Timestamp  `json:"created_at"`
	UpdatedAt *Timestamp `json:"updated_at,omitempty"`
}

// Session is the persisted authentication state of the client.
type Session struct {
	AccessToken  string
	RefreshToken string
	IssuedAt     time.Time
	User         *User
}

type AuthResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	User         User   `json:"user"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SignupRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type UserUpdate struct {
	Username *string `json:"username,omitempty"`
	Avatar   *Avatar `json:"avatar,omitempty"`
}

type Participant struct {
	UserID      string    `json:"user_id"`
	Username    *string   `json:"username,omitempty"`
	Avatar      *Avatar   `json:"avatar,omitempty"`
	JoinedAt    Timestamp `json:"joined_at"`
	TotalPoints int       `json:"total_points"`
}

type DailyTask struct {
	ID          string    `json:"id"`
	QuestID     string    `json:"quest_id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	Points      int       `json:"points"`
	CreatedAt   Timestamp `json:"created_at"`
}

type Quest struct {
	ID                 string        `json:"id"`
	Name               string        `json:"name"`
	Description        *string       `json:"description,omitempty"`
	StartDate          Timestamp     `json:"start_date"`
	EndDate            Timestamp     `json:"end_date"`
	CreatorID          string        `json:"creator_id"`
	ShareCode          string        `json:"share_code"`
	ShareCodeExpiresAt Timestamp     `json:"share_code_expires_at"`
	CreatedAt          Timestamp     `json:"created_at"`
	UpdatedAt          *Timestamp    `json:"updated_at,omitempty"`
	DailyTasks         []DailyTask   `json:"daily_tasks"`
	Participants       []Participant `json:"participants"`
}

type DailyTaskCreate struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	Points      int     `json:"points"`
}

// QuestCreate carries dates as yyyy-MM-dd strings.
type QuestCreate struct {
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	StartDate   string            `json:"start_date"`
	EndDate     string            `json:"end_date"`
	DailyTasks  []DailyTaskCreate `json:"daily_tasks,omitempty"`
}

type QuestJoinRequest struct {
	ShareCode string `json:"share_code"`
}

type CheckIn struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	QuestID     string     `json:"quest_id"`
	DailyTaskID string     `json:"daily_task_id"`
	CheckInDate Timestamp  `json:"check_in_date"`
	Count       int        `json:"count"`
	Notes       *string    `json:"notes,omitempty"`
	CreatedAt   Timestamp  `json:"created_at"`
	UpdatedAt   *Timestamp `json:"updated_at,omitempty"`
}

// CheckInCreate is the body of both increment and decrement calls.
type CheckInCreate struct {
	QuestID     string  `json:"quest_id"`
	DailyTaskID string  `json:"daily_task_id"`
	CheckInDate string  `json:"check_in_date"`
	Notes       *string `json:"notes,omitempty"`
}

type CheckInStats struct {
	QuestID       string `json:"quest_id"`
	UserID        string `json:"user_id"`
	TotalCheckIns int    `json:"total_check_ins"`
	TotalPoints   int    `json:"total_points"`
	CurrentStreak int    `json:"current_streak"`
	LongestStreak int    `json:"longest_streak"`
}

// ScoreboardEvent is delivered over the live-update socket.
type ScoreboardEvent struct {
	Type    string `json:"type"`
	QuestID string `json:"quest_id"`
}

const ScoreboardUpdateType = "scoreboard_update"
