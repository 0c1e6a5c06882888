package apiclient

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spec-kit/hospital-console/internal/observability"
	"github.com/spec-kit/hospital-console/internal/repository"
	apperrors "github.com/spec-kit/hospital-console/pkg/util"
)

const (
	headerAuthorization = "Authorization"
	headerRequestID     = "X-Request-ID"
)

// Session is the part of the session manager the authorizer talks to.
type Session interface {
	Credential() (credential string, settled bool)
	Invalidate(ctx context.Context, cause error)
}

// AuthorizerConfig wires an Authorizer.
type AuthorizerConfig struct {
	Next       http.RoundTripper
	Session    Session
	// Store is read directly while the session has not settled yet.
	Store      repository.CredentialRepository
	SigninPath string
	Metrics    *observability.Metrics
	Logger     *zap.Logger
}

// Authorizer attaches the session credential to every backend call and ends
// the session when the backend rejects it. A rejection of a credential the
// session no longer holds is left alone.
type Authorizer struct {
	next       http.RoundTripper
	session    Session
	store      repository.CredentialRepository
	signinPath string
	metrics    *observability.Metrics
	logger     *zap.Logger
}

// NewAuthorizer builds the round tripper.
func NewAuthorizer(cfg AuthorizerConfig) *Authorizer {
	a := &Authorizer{
		next:       cfg.Next,
		session:    cfg.Session,
		store:      cfg.Store,
		signinPath: cfg.SigninPath,
		metrics:    cfg.Metrics,
		logger:     cfg.Logger,
	}
	if a.next == nil {
		a.next = http.DefaultTransport
	}
	if a.signinPath == "" {
		a.signinPath = "/auth/signin"
	}
	if a.logger == nil {
		a.logger = zap.NewNop()
	}
	return a
}

// RoundTrip implements http.RoundTripper. The caller's request is never
// modified.
func (a *Authorizer) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	out := req.Clone(ctx)
	attached := a.credential(ctx)
	if attached != "" {
		out.Header.Set(headerAuthorization, "Bearer "+attached)
	}
	if out.Header.Get(headerRequestID) == "" {
		out.Header.Set(headerRequestID, uuid.NewString())
	}

	start := time.Now()
	resp, err := a.next.RoundTrip(out)
	status := 0
	if resp != nil {
		status = resp.StatusCode
	}
	a.metrics.RecordUpstream(req.URL.Path, req.Method, status, time.Since(start))
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized && !a.isSignin(req.URL.Path) && a.session != nil {
		if current, settled := a.session.Credential(); settled && current != attached {
			a.logger.Info("ignoring rejection of a replaced credential",
				zap.String("method", req.Method),
				zap.String("path", req.URL.Path),
			)
			return resp, nil
		}
		a.logger.Warn("backend rejected credential",
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.String("request_id", out.Header.Get(headerRequestID)),
		)
		a.session.Invalidate(context.WithoutCancel(ctx), apperrors.NewSessionInvalidated(""))
	}
	return resp, nil
}

func (a *Authorizer) credential(ctx context.Context) string {
	if a.session != nil {
		credential, settled := a.session.Credential()
		if settled || a.store == nil {
			return credential
		}
	}
	if a.store == nil {
		return ""
	}

	credential, found, err := a.store.Load(ctx)
	if err != nil {
		a.logger.Warn("read credential store", zap.Error(err))
		return ""
	}
	if !found {
		return ""
	}
	return credential
}

func (a *Authorizer) isSignin(path string) bool {
	return strings.HasSuffix(strings.TrimRight(path, "/"), strings.TrimRight(a.signinPath, "/"))
}
