package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/hospital-console/internal/domain"
	apperrors "github.com/spec-kit/hospital-console/pkg/util"
)

const maxResponseBody = 4 << 20

// Client calls the hospital backend through the authorized transport.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient wraps httpClient, whose transport is expected to be an Authorizer.
func NewClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// NewHTTPClient builds the one http.Client every backend call goes through.
func NewHTTPClient(authorizer *Authorizer, timeout time.Duration) *http.Client {
	return &http.Client{Transport: authorizer, Timeout: timeout}
}

// Do sends one request. body, when non-nil, is sent as JSON; out, when
// non-nil, receives the decoded answer. A 401 surfaces as
// SESSION_INVALIDATED after the transport has already signed out.
func (c *Client) Do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", method, path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &apperrors.DomainError{
			Code:       apperrors.CodeUpstream,
			Message:    "hospital backend unreachable",
			HTTPStatus: http.StatusBadGateway,
			Err:        err,
		}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusUnauthorized {
		return apperrors.NewSessionInvalidated("")
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		c.logger.Debug("backend error",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return apperrors.NewUpstreamError(resp.StatusCode, backendMessage(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return apperrors.NewUpstreamError(http.StatusBadGateway, fmt.Sprintf("decode %s %s: %v", method, path, err))
	}
	return nil
}

func get[T any](ctx context.Context, c *Client, path string, query url.Values) (T, error) {
	var out T
	err := c.Do(ctx, http.MethodGet, path, query, nil, &out)
	return out, err
}

func send[T any](ctx context.Context, c *Client, method, path string, body any) (T, error) {
	var out T
	err := c.Do(ctx, method, path, nil, body, &out)
	return out, err
}

func pageQuery(p domain.PageRequest, defaultSort string) url.Values {
	p = p.WithDefaults(defaultSort)
	return url.Values{
		"page": {strconv.Itoa(p.Page)},
		"size": {strconv.Itoa(p.Size)},
		"sort": {p.Sort},
	}
}

func idPath(base string, id int64) string {
	return base + "/" + strconv.FormatInt(id, 10)
}
