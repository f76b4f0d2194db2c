package httputil

import (
	"net/http"
	"strings"

	"github.com/bytedance/sonic"
)

// ErrorResponse is the backend's error body.
type ErrorResponse struct {
	Detail string `json:"detail"`
}

func WriteErrorResponse(w http.ResponseWriter, statusCode int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	sonic.ConfigFastest.NewEncoder(w).Encode(ErrorResponse{Detail: detail})
}

func WriteJSONResponse(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	sonic.ConfigDefault.NewEncoder(w).Encode(body)
}

// ReadErrorDetail extracts the detail of an error body, if the body is one.
func ReadErrorDetail(body []byte) (string, bool) {
	var resp ErrorResponse
	if err := sonic.ConfigDefault.Unmarshal(body, &resp); err != nil {
		return "", false
	}
	if strings.TrimSpace(resp.Detail) == "" {
		return "", false
	}
	return resp.Detail, true
}

// BearerToken extracts the token of an "Authorization: Bearer <token>" header.
func BearerToken(r *http.Request) (string, bool) {
	parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
