package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/google/uuid"
	errorvalues "github.com/limbo/cherries/internal/error_values"
	"github.com/limbo/cherries/pkg/httputil"
	"github.com/limbo/cherries/pkg/logger"
	"go.uber.org/zap"
)

const RequestIDHeader = "X-Request-ID"

var errEmptyBody = errors.New("empty response body")

// transport performs one HTTP exchange and maps transport and decoding
// failures onto the error taxonomy. Status handling is left to the callers.
type transport struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

type response struct {
	status int
	body   []byte
}

func newTransport(baseURL string, httpClient *http.Client, l *zap.Logger) transport {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return transport{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger.OrNop(l),
	}
}

func (t transport) send(ctx context.Context, method, path, token string, body any) (*response, error) {
	var reader io.Reader
	if body != nil {
		data, err := sonic.ConfigDefault.Marshal(body)
		if err != nil {
			return nil, errorvalues.InvalidRequest("encoding request body", err)
		}
		reader = bytes.NewReader(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, t.baseURL+path, reader)
	if err != nil {
		return nil, errorvalues.InvalidRequest("building request", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(RequestIDHeader, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	log := logger.FromContext(ctx, t.logger).With(
		zap.String("request_id", reqID),
		zap.String("method", method),
		zap.String("path", path),
	)
	start := time.Now()
	resp, err := t.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", zap.Error(err))
		return nil, errorvalues.NetworkError(err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Warn("reading response failed", zap.Error(err))
		return nil, errorvalues.NetworkError(err)
	}
	log.Debug("request done",
		zap.Int("status", resp.StatusCode),
		zap.Duration("took", time.Since(start)),
	)
	return &response{status: resp.StatusCode, body: data}, nil
}

// decode fills out from a success body. A body is required whenever out is
// set; a literal null is a valid body.
func decode(data []byte, out any) error {
	if out == nil {
		return nil
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return errorvalues.DecodingError(errEmptyBody)
	}
	if err := sonic.ConfigDefault.Unmarshal(data, out); err != nil {
		return errorvalues.DecodingError(err)
	}
	return nil
}

// statusError builds the serverError for an unexpected status.
func statusError(resp *response) error {
	if detail, ok := httputil.ReadErrorDetail(resp.body); ok {
		return errorvalues.ServerError(detail)
	}
	return errorvalues.ServerError("status " + strconv.Itoa(resp.status))
}
