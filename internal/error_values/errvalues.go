package errorvalues

import (
	"context"
	"errors"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindInvalidRequest
	KindNetwork
	KindDecoding
	KindServer
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindInvalidRequest:
		return "invalidRequest"
	case KindNetwork:
		return "networkError"
	case KindDecoding:
		return "decodingError"
	case KindServer:
		return "serverError"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "unknown"
	}
}

type UnauthorizedReason int

const (
	ReasonUnknown UnauthorizedReason = iota
	ReasonInvalidCredentials
	ReasonTokenExpired
)

// Sentinels for errors.Is matching against *APIError.
var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrNetwork            = errors.New("network error")
	ErrDecoding           = errors.New("decoding error")
	ErrServer             = errors.New("server error")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("session expired, please log in again")
	ErrUnknown            = errors.New("an unknown error occurred")
)

var (
	ErrSessionNotFound = errors.New("no stored session")
	ErrEngineReleased  = errors.New("quest detail engine was released")
)

// Sandbox backend errors.
var (
	ErrUserExists       = errors.New("email already registered")
	ErrUserNotFound     = errors.New("user not found")
	ErrWrongCredentials = errors.New("incorrect email or password")
	ErrInvalidRefresh   = errors.New("invalid refresh token")
	ErrQuestNotFound    = errors.New("quest not found")
	ErrTaskNotFound     = errors.New("daily task not found")
	ErrInvalidShareCode = errors.New("invalid or expired share code")
	ErrAlreadyJoined    = errors.New("already a participant of this quest")
	ErrNotParticipant   = errors.New("not a participant of this quest")
	ErrNotCreator       = errors.New("only the creator can delete a quest")
	ErrOutOfQuestRange  = errors.New("date is outside the quest range")
	ErrInvalidDate      = errors.New("dates must be yyyy-MM-dd, end not before start")
)

// APIError is the only error type that crosses the client's component boundaries.
type APIError struct {
	Kind    Kind
	Reason  UnauthorizedReason
	Message string
	Err     error
}

func (e *APIError) Error() string {
	switch e.Kind {
	case KindInvalidRequest:
		if e.Message != "" {
			return "invalid request: " + e.Message
		}
		return ErrInvalidRequest.Error()
	case KindNetwork:
		return "network error: " + causeText(e.Err)
	case KindDecoding:
		return "decoding error: " + causeText(e.Err)
	case KindServer:
		return e.Message
	case KindUnauthorized:
		switch e.Reason {
		case ReasonInvalidCredentials:
			return ErrInvalidCredentials.Error()
		case ReasonTokenExpired:
			return ErrTokenExpired.Error()
		default:
			return ErrUnauthorized.Error()
		}
	default:
		return ErrUnknown.Error()
	}
}

func (e *APIError) Unwrap() error {
	return e.Err
}

func (e *APIError) Is(target error) bool {
	switch target {
	case ErrInvalidRequest:
		return e.Kind == KindInvalidRequest
	case ErrNetwork:
		return e.Kind == KindNetwork
	case ErrDecoding:
		return e.Kind == KindDecoding
	case ErrServer:
		return e.Kind == KindServer
	case ErrUnauthorized:
		return e.Kind == KindUnauthorized
	case ErrInvalidCredentials:
		return e.Kind == KindUnauthorized && e.Reason == ReasonInvalidCredentials
	case ErrTokenExpired:
		return e.Kind == KindUnauthorized && e.Reason == ReasonTokenExpired
	case ErrUnknown:
		return e.Kind == KindUnknown
	}
	return false
}

func InvalidRequest(message string, cause error) *APIError {
	return &APIError{Kind: KindInvalidRequest, Message: message, Err: cause}
}

func NetworkError(cause error) *APIError {
	return &APIError{Kind: KindNetwork, Err: cause}
}

func DecodingError(cause error) *APIError {
	return &APIError{Kind: KindDecoding, Err: cause}
}

func ServerError(message string) *APIError {
	return &APIError{Kind: KindServer, Message: message}
}

func Unauthorized(reason UnauthorizedReason) *APIError {
	return &APIError{Kind: KindUnauthorized, Reason: reason}
}

func Unknown(cause error) *APIError {
	return &APIError{Kind: KindUnknown, Err: cause}
}

// Classify maps any error onto the taxonomy. nil stays nil.
func Classify(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return NetworkError(err)
	}
	return Unknown(err)
}

// IsUnauthorized reports whether err is an unauthorized failure of any reason.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

func causeText(err error) string {
	if err == nil {
		return "unknown cause"
	}
	return err.Error()
}
