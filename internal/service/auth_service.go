package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/hospital-console/internal/auth"
	"github.com/spec-kit/hospital-console/internal/domain"
	"github.com/spec-kit/hospital-console/internal/events"
	"github.com/spec-kit/hospital-console/internal/repository"
	apperrors "github.com/spec-kit/hospital-console/pkg/util"
)

// Authenticator exchanges a username and password for a credential.
type Authenticator interface {
	Signin(ctx context.Context, username, password string) (string, error)
}

// AuthDependencies encapsulates what the session manager needs.
type AuthDependencies struct {
	Credentials   repository.CredentialRepository
	Authenticator Authenticator
	Decoder       *auth.Decoder
	Clock         domain.Clock
	Dispatcher    events.Dispatcher
	Logger        *zap.Logger
}

// AuthService owns the console's single session: it restores it from the
// credential store, signs in and out, and hands the current credential to
// the request authorizer.
//
// Every state change is one assignment under mu, and mu is never held across
// store I/O. Login and logout bump generation so a login answer or a
// bootstrap read that arrives after a newer session change is dropped
// instead of overwriting it. storeMu orders store writes so the store ends
// up agreeing with the newest generation.
type AuthService struct {
	mu         sync.RWMutex
	state      domain.SessionState
	credential string
	generation uint64
	settled    bool

	storeMu sync.Mutex

	credentials   repository.CredentialRepository
	authenticator Authenticator
	decoder       *auth.Decoder
	clock         domain.Clock
	dispatcher    events.Dispatcher
	logger        *zap.Logger

	bootstrapOnce sync.Once
	ready         chan struct{}
}

// NewAuthService builds the session manager in its bootstrapping state.
func NewAuthService(deps AuthDependencies) *AuthService {
	s := &AuthService{
		state:         domain.SessionState{Loading: true},
		credentials:   deps.Credentials,
		authenticator: deps.Authenticator,
		decoder:       deps.Decoder,
		clock:         deps.Clock,
		dispatcher:    deps.Dispatcher,
		logger:        deps.Logger,
		ready:         make(chan struct{}),
	}
	if s.decoder == nil {
		s.decoder = auth.NewDecoder()
	}
	if s.clock == nil {
		s.clock = domain.RealClock{}
	}
	if s.dispatcher == nil {
		s.dispatcher = events.NopDispatcher()
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	return s
}

// Bootstrap restores the session from the credential store. Only the first
// call does any work; later calls return nil. Loading is cleared on every
// path unless a login or logout started while the store was being read, in
// which case that newer change owns the state. The returned error is a store
// failure, reported for logging only: the session is left signed out.
func (s *AuthService) Bootstrap(ctx context.Context) error {
	var err error
	s.bootstrapOnce.Do(func() {
		defer close(s.ready)
		err = s.bootstrap(ctx)
	})
	return err
}

// Ready is closed once Bootstrap has finished.
func (s *AuthService) Ready() <-chan struct{} {
	return s.ready
}

func (s *AuthService) bootstrap(ctx context.Context) error {
	s.mu.RLock()
	gen := s.generation
	s.mu.RUnlock()

	s.storeMu.Lock()
	credential, found, err := s.credentials.Load(ctx)
	var identity *domain.Identity
	var discardErr error
	if err == nil && found {
		identity, discardErr = s.decoder.Decode(credential)
		if discardErr == nil && identity.ExpiredAt(s.clock.Now()) {
			discardErr = errors.New("credential expired")
		}
		if discardErr != nil && s.restoreOwns(gen) {
			if clearErr := s.credentials.Clear(ctx); clearErr != nil {
				s.logger.Warn("clear discarded credential", zap.Error(clearErr))
			}
		}
	}
	s.storeMu.Unlock()

	s.mu.Lock()
	if gen != s.generation || s.settled {
		s.mu.Unlock()
		s.logger.Debug("session changed during restore; stored credential ignored")
		return nil
	}
	switch {
	case err != nil:
		s.resetLocked()
		s.mu.Unlock()
		return fmt.Errorf("restore session: %w", err)
	case !found:
		s.resetLocked()
		s.mu.Unlock()
		s.logger.Debug("no stored credential")
		return nil
	case discardErr != nil:
		s.resetLocked()
		s.mu.Unlock()
		s.logger.Info("stored credential discarded", zap.Error(discardErr))
		return nil
	}
	s.state = domain.SessionState{Identity: identity, Authenticated: true}
	s.credential = credential
	s.settled = true
	s.mu.Unlock()

	s.logger.Info("session restored", zap.String("username", identity.Username))
	s.publish(ctx, startedEvent(events.EventSessionRestored, identity, s.clock))
	return nil
}

// Login signs in against the backend. On success the credential is
// persisted and becomes the one attached to outgoing calls. On failure the
// session is forced signed out, the store is left as it was, and an
// AUTHENTICATION_FAILED error is returned for display. Callers are expected
// not to resubmit while State().Loading is true.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.Identity, error) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	s.state = domain.SessionState{Identity: s.state.Identity, Authenticated: s.state.Authenticated, Loading: true}
	s.mu.Unlock()

	credential, err := s.authenticator.Signin(ctx, username, password)
	var identity *domain.Identity
	if err == nil {
		identity, err = s.decoder.Decode(credential)
		switch {
		case err != nil:
			err = apperrors.NewAuthenticationFailure("authentication service returned an unusable credential", 0, err)
		case identity.ExpiredAt(s.clock.Now()):
			err = apperrors.NewAuthenticationFailure("authentication service returned an expired credential", 0, nil)
		}
	} else if !errors.Is(err, apperrors.ErrAuthenticationFailed) {
		err = apperrors.NewAuthenticationFailure("", 0, err)
	}

	if err == nil {
		s.storeMu.Lock()
		if s.isCurrent(gen) {
			if saveErr := s.credentials.Save(ctx, credential); saveErr != nil {
				s.logger.Warn("persist credential", zap.Error(saveErr))
			}
		}
		s.storeMu.Unlock()
	}

	s.mu.Lock()
	if gen != s.generation {
		s.mu.Unlock()
		s.logger.Info("discarding superseded login", zap.String("username", username))
		return nil, fmt.Errorf("login %q: %w", username, apperrors.ErrLoginSuperseded)
	}

	if err != nil {
		s.state = domain.Unauthenticated()
		s.credential = ""
		s.settled = true
		s.mu.Unlock()

		domainErr := apperrors.ToDomainError(err)
		s.logger.Info("login failed", zap.String("username", username), zap.Error(err))
		evt := events.NewEvent(events.EventLoginFailed, s.clock.Now())
		evt.Username = username
		evt.Payload = events.LoginFailedPayload{Code: domainErr.Code, Message: domainErr.Message}
		s.publish(ctx, evt)
		return nil, err
	}

	s.state = domain.SessionState{Identity: identity, Authenticated: true}
	s.credential = credential
	s.settled = true
	s.mu.Unlock()

	s.logger.Info("login succeeded", zap.String("username", identity.Username), zap.Strings("roles", identity.Roles))
	s.publish(ctx, startedEvent(events.EventSessionAuthenticated, identity, s.clock))
	return identity.Clone(), nil
}

// Logout clears the store and the session. It is idempotent and never
// fails; store errors are logged.
func (s *AuthService) Logout(ctx context.Context) {
	s.endSession(ctx, events.EventSessionLoggedOut, "user logout", false)
}

// Invalidate ends the session after the backend rejected its credential.
func (s *AuthService) Invalidate(ctx context.Context, cause error) {
	reason := "credential rejected"
	if cause != nil {
		reason = cause.Error()
	}
	s.endSession(ctx, events.EventSessionInvalidated, reason, true)
}

// EnforceExpiry signs out a session whose credential has passed its expiry
// and reports whether it did.
func (s *AuthService) EnforceExpiry(ctx context.Context) bool {
	s.mu.RLock()
	expired := s.state.Authenticated && s.state.Identity.ExpiredAt(s.clock.Now())
	s.mu.RUnlock()
	if !expired {
		return false
	}
	s.endSession(ctx, events.EventSessionInvalidated, "credential expired", true)
	return true
}

// State returns a snapshot of the session.
func (s *AuthService) State() domain.SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Credential returns the credential to attach to outgoing calls. settled is
// false until the session has been restored or a login has completed; until
// then callers read the store directly.
func (s *AuthService) Credential() (credential string, settled bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.credential, s.settled
}

func (s *AuthService) endSession(ctx context.Context, eventType events.EventType, reason string, always bool) {
	s.mu.Lock()
	s.generation++
	gen := s.generation
	previous := s.state.Identity
	wasAuthenticated := s.state.Authenticated
	s.resetLocked()
	s.mu.Unlock()

	// A login that started after this point owns the store.
	s.storeMu.Lock()
	if s.isCurrent(gen) {
		if err := s.credentials.Clear(ctx); err != nil {
			s.logger.Warn("clear credential", zap.Error(err))
		}
	}
	s.storeMu.Unlock()

	if !wasAuthenticated && !always {
		return
	}

	evt := events.NewEvent(eventType, s.clock.Now())
	if previous != nil {
		evt.Username = previous.Username
		evt.UserID = previous.ID
	}
	evt.Payload = events.SessionEndedPayload{Reason: reason}
	s.logger.Info("session ended", zap.String("event", string(eventType)), zap.String("reason", reason))
	s.publish(ctx, evt)
}

func (s *AuthService) isCurrent(gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gen == s.generation
}

// restoreOwns reports whether bootstrap may still decide the session: no
// login or logout has settled it since gen was read.
func (s *AuthService) restoreOwns(gen uint64) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return gen == s.generation && !s.settled
}

func (s *AuthService) resetLocked() {
	s.state = domain.Unauthenticated()
	s.credential = ""
	s.settled = true
}

func (s *AuthService) publish(ctx context.Context, evt events.Event) {
	if err := s.dispatcher.Publish(ctx, evt); err != nil {
		s.logger.Warn("session event handler failed", zap.String("event", string(evt.Type)), zap.Error(err))
	}
}

func startedEvent(eventType events.EventType, identity *domain.Identity, clock domain.Clock) events.Event {
	evt := events.NewEvent(eventType, clock.Now())
	evt.Username = identity.Username
	evt.UserID = identity.ID
	evt.Payload = events.SessionStartedPayload{Roles: append([]string(nil), identity.Roles...), ExpiresAt: identity.ExpiresAt}
	return evt
}
