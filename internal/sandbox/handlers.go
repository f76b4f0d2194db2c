package sandbox

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/cherries/internal/error_values"
	"github.com/limbo/cherries/pkg/entity"
	"github.com/limbo/cherries/pkg/httputil"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const handlerTimeout = 10 * time.Second

var validate = validator.New(validator.WithRequiredStructEnabled())

type registerRequest struct {
	Email    string `validate:"required,email"`
	Username string `validate:"required,max=50"`
	Password string `validate:"min=6,max=72"`
}

type questRequest struct {
	Name       string        `validate:"required,max=100"`
	DailyTasks []taskRequest `validate:"dive"`
}

type taskRequest struct {
	Title  string `validate:"required"`
	Points int    `validate:"gt=0"`
}

type profileRequest struct {
	Username *string `validate:"omitempty,min=1,max=50"`
	Avatar   *entity.Avatar
}

type messageResponse struct {
	Message string `json:"message"`
}

func (s *Server) Register(w http.ResponseWriter, r *http.Request) {
	l := s.loggerFrom(r.Context())
	var req entity.SignupRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("registering error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(registerRequest{Email: req.Email, Username: req.Username, Password: req.Password}); err != nil {
		l.Warn("registering error: validation", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusUnprocessableEntity, validationDetail(err))
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		l.Error("registering error: hashing password", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during registration")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	user, err := s.store.CreateUser(ctx, req.Email, req.Username, hash)
	if err != nil {
		s.writeStoreError(w, l, "registering", err)
		return
	}
	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		l.Error("registering error: issuing tokens", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token")
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, resp)
	l.Info("successful registration", zap.String("uid", user.ID))
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	l := s.loggerFrom(r.Context())
	var req entity.LoginRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("login error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	rec, err := s.store.UserByEmail(ctx, req.Email)
	if err == nil {
		err = bcrypt.CompareHashAndPassword(rec.PasswordHash, []byte(req.Password))
	}
	if err != nil {
		switch {
		case errors.Is(err, errorvalues.ErrUserNotFound), errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			l.Warn("login error: wrong credentials")
			httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Incorrect email or password")
		default:
			l.Error("login error: store error", zap.Error(err))
			httputil.WriteErrorResponse(w, http.StatusInternalServerError, "internal error during login")
		}
		return
	}
	resp, err := s.issueTokens(ctx, &rec.User)
	if err != nil {
		l.Error("login error: issuing tokens", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token")
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
	l.Info("successful login", zap.String("uid", rec.User.ID))
}

func (s *Server) Refresh(w http.ResponseWriter, r *http.Request) {
	l := s.loggerFrom(r.Context())
	var req entity.RefreshTokenRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("refresh error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	uid, err := s.store.ConsumeRefreshToken(ctx, req.RefreshToken)
	if err != nil {
		l.Warn("refresh error: rejected token")
		httputil.WriteErrorResponse(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	user, err := s.store.UserByID(ctx, uid)
	if err != nil {
		s.writeStoreError(w, l, "refresh", err)
		return
	}
	resp, err := s.issueTokens(ctx, user)
	if err != nil {
		l.Error("refresh error: issuing tokens", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusInternalServerError, "error creating token")
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, resp)
	l.Debug("token refreshed", zap.String("uid", uid))
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	l := s.loggerFrom(r.Context())
	uid, _ := uidFromContext(r)
	if err := s.store.RevokeRefreshTokens(r.Context(), uid); err != nil {
		s.writeStoreError(w, l, "logout", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, messageResponse{Message: "Successfully logged out"})
	l.Info("logged out")
}

func (s *Server) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	l := s.loggerFrom(r.Context())
	uid, _ := uidFromContext(r)
	ctx, cancel := context.WithTimeout(r.Context(), handlerTimeout)
	defer cancel()
	quests, err := s.store.QuestsForUser(ctx, uid)
	if err != nil {
		s.writeStoreError(w, l, "deleting account", err)
		return
	}
	if err := s.store.DeleteUser(ctx, uid); err != nil {
		s.writeStoreError(w, l, "deleting account", err)
		return
	}
	for _, q := range quests {
		s.hub.Broadcast(q.ID)
	}
	w.WriteHeader(http.StatusNoContent)
	l.Info("account deleted")
}

func (s *Server) GetQuests(w http.ResponseWriter, r *http.Request) {
	l := s.loggerFrom(r.Context())
	uid, _ := uidFromContext(r)
	quests, err := s.store.QuestsForUser(r.Context(), uid)
	if err != nil {
		s.writeStoreError(w, l, "get quests", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, quests)
}

func (s *Server) CreateQuest(w http.ResponseWriter, r *http.Request) {
	l := s.loggerFrom(r.Context())
	uid, _ := uidFromContext(r)
	var req entity.QuestCreate
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("create quest error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	check := questRequest{Name: req.Name}
	for _, t := range req.DailyTasks {
		check.DailyTasks = append(check.DailyTasks, taskRequest{Title: t.Title, Points: t.Points})
	}
	if err := validate.Struct(check); err != nil {
		l.Warn("create quest error: validation", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusUnprocessableEntity, validationDetail(err))
		return
	}
	quest, err := s.store.CreateQuest(r.Context(), uid, &req)
	if err != nil {
		s.writeStoreError(w, l, "create quest", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusCreated, quest)
	l.Info("quest created", zap.String("quest_id", quest.ID))
}

func (s *Server) JoinQuest(w http.ResponseWriter, r *http.Request) {
	l := s.loggerFrom(r.Context())
	uid, _ := uidFromContext(r)
	var req entity.QuestJoinRequest
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("join quest error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	quest, err := s.store.JoinQuest(r.Context(), uid, strings.TrimSpace(req.ShareCode))
	if err != nil {
		s.writeStoreError(w, l, "join quest", err)
		return
	}
	s.hub.Broadcast(quest.ID)
	httputil.WriteJSONResponse(w, http.StatusCreated, quest)
	l.Info("quest joined", zap.String("quest_id", quest.ID))
}

func (s *Server) DeleteQuest(w http.ResponseWriter, r *http.Request) {
	l := s.loggerFrom(r.Context())
	uid, _ := uidFromContext(r)
	questID := chi.URLParam(r, "id")
	if err := s.store.DeleteQuest(r.Context(), uid, questID); err != nil {
		s.writeStoreError(w, l, "delete quest", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
	l.Info("quest deleted", zap.String("quest_id", questID))
}

func (s *Server) IncrementCheckIn(w http.ResponseWriter, r *http.Request) {
	s.changeCheckIn(w, r, "increment", s.store.Increment)
}

// DecrementCheckIn answers with null once the record is gone.
func (s *Server) DecrementCheckIn(w http.ResponseWriter, r *http.Request) {
	s.changeCheckIn(w, r, "decrement", s.store.Decrement)
}

func (s *Server) changeCheckIn(w http.ResponseWriter, r *http.Request, op string,
	change func(context.Context, string, *entity.CheckInCreate) (*entity.CheckIn, error)) {
	l := s.loggerFrom(r.Context())
	uid, _ := uidFromContext(r)
	var req entity.CheckInCreate
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn(op + " error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	checkIn, err := change(r.Context(), uid, &req)
	if err != nil {
		s.writeStoreError(w, l, op, err)
		return
	}
	s.hub.Broadcast(req.QuestID)
	httputil.WriteJSONResponse(w, http.StatusOK, checkIn)
	l.Debug("check-in changed", zap.String("op", op), zap.String("quest_id", req.QuestID), zap.String("task_id", req.DailyTaskID))
}

func (s *Server) GetCheckIns(w http.ResponseWriter, r *http.Request) {
	l := s.loggerFrom(r.Context())
	uid, _ := uidFromContext(r)
	var month *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		date, err := time.Parse(time.DateOnly, raw)
		if err != nil {
			l.Warn("get check-ins error: invalid date", zap.String("date", raw))
			httputil.WriteErrorResponse(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
			return
		}
		month = &date
	}
	checkIns, err := s.store.CheckIns(r.Context(), uid, chi.URLParam(r, "id"), month)
	if err != nil {
		s.writeStoreError(w, l, "get check-ins", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, checkIns)
}

func (s *Server) GetStats(w http.ResponseWriter, r *http.Request) {
	l := s.loggerFrom(r.Context())
	uid, _ := uidFromContext(r)
	stats, err := s.store.Stats(r.Context(), uid, chi.URLParam(r, "id"))
	if err != nil {
		s.writeStoreError(w, l, "get stats", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, stats)
}

func (s *Server) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	l := s.loggerFrom(r.Context())
	uid, _ := uidFromContext(r)
	var req entity.UserUpdate
	defer r.Body.Close()
	if err := sonic.ConfigDefault.NewDecoder(r.Body).Decode(&req); err != nil {
		l.Warn("update profile error: invalid body")
		httputil.WriteErrorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(profileRequest{Username: req.Username, Avatar: req.Avatar}); err != nil {
		l.Warn("update profile error: validation", zap.Error(err))
		httputil.WriteErrorResponse(w, http.StatusUnprocessableEntity, validationDetail(err))
		return
	}
	if req.Avatar != nil {
		switch req.Avatar.Type {
		case entity.AvatarEmoji, entity.AvatarPreset, entity.AvatarCustom:
		default:
			httputil.WriteErrorResponse(w, http.StatusUnprocessableEntity, "unknown avatar type")
			return
		}
	}
	user, err := s.store.UpdateUser(r.Context(), uid, &req)
	if err != nil {
		s.writeStoreError(w, l, "update profile", err)
		return
	}
	httputil.WriteJSONResponse(w, http.StatusOK, user)
	l.Info("profile updated")
}

func (s *Server) issueTokens(ctx context.Context, user *entity.User) (*entity.AuthResponse, error) {
	access, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, errors.New("generating access token error: " + err.Error())
	}
	refresh := uuid.NewString()
	if err := s.store.SaveRefreshToken(ctx, refresh, user.ID); err != nil {
		return nil, errors.New("saving refresh token error: " + err.Error())
	}
	return &entity.AuthResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		TokenType:    "bearer",
		User:         *user,
	}, nil
}

func (s *Server) writeStoreError(w http.ResponseWriter, l *zap.Logger, op string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, errorvalues.ErrUserExists), errors.Is(err, errorvalues.ErrAlreadyJoined):
		status = http.StatusConflict
	case errors.Is(err, errorvalues.ErrUserNotFound), errors.Is(err, errorvalues.ErrQuestNotFound),
		errors.Is(err, errorvalues.ErrTaskNotFound), errors.Is(err, errorvalues.ErrInvalidShareCode):
		status = http.StatusNotFound
	case errors.Is(err, errorvalues.ErrNotParticipant), errors.Is(err, errorvalues.ErrNotCreator):
		status = http.StatusForbidden
	case errors.Is(err, errorvalues.ErrOutOfQuestRange), errors.Is(err, errorvalues.ErrInvalidDate):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		l.Error(op+" error: store error", zap.Error(err))
		httputil.WriteErrorResponse(w, status, "internal error")
		return
	}
	l.Warn(op+" error", zap.Error(err))
	httputil.WriteErrorResponse(w, status, capitalize(err.Error()))
}

func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "validation error"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fe.Field()+" failed on "+fe.Tag())
	}
	return "validation error: " + strings.Join(parts, ", ")
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
