package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/hospital-console/internal/auth"
	"github.com/spec-kit/hospital-console/internal/auth/authtest"
	"github.com/spec-kit/hospital-console/internal/domain"
	"github.com/spec-kit/hospital-console/internal/domain/domaintest"
	"github.com/spec-kit/hospital-console/internal/events"
	"github.com/spec-kit/hospital-console/internal/repository"
	"github.com/spec-kit/hospital-console/internal/service"
	apperrors "github.com/spec-kit/hospital-console/pkg/util"
)

var epoch = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

type authenticatorFunc func(ctx context.Context, username, password string) (string, error)

func (f authenticatorFunc) Signin(ctx context.Context, username, password string) (string, error) {
	return f(ctx, username, password)
}

func rejectAll() service.Authenticator {
	return authenticatorFunc(func(context.Context, string, string) (string, error) {
		return "", apperrors.NewAuthenticationFailure("Bad credentials", 401, nil)
	})
}

type recorder struct {
	types []events.EventType
}

func (r *recorder) subscribe(d events.Dispatcher) {
	for _, et := range events.AllEventTypes() {
		d.Subscribe(et, func(_ context.Context, e events.Event) error {
			r.types = append(r.types, e.Type)
			return nil
		})
	}
}

type harness struct {
	svc    *service.AuthService
	store  *repository.MemoryCredentialRepository
	clock  *domaintest.FakeClock
	events *recorder
}

func newHarness(t *testing.T, authn service.Authenticator) *harness {
	t.Helper()
	h := &harness{
		store:  repository.NewMemoryCredentialRepository(),
		clock:  domaintest.NewFakeClock(epoch),
		events: &recorder{},
	}
	dispatcher := events.NewInMemoryDispatcher()
	h.events.subscribe(dispatcher)
	h.svc = service.NewAuthService(service.AuthDependencies{
		Credentials:   h.store,
		Authenticator: authn,
		Clock:         h.clock,
		Dispatcher:    dispatcher,
	})
	return h
}

func (h *harness) mint(t *testing.T, roles []string, exp time.Time) string {
	t.Helper()
	return authtest.Mint(t, authtest.Credential{ID: 3, Username: "alice", NomComplet: "Alice Martin", Roles: roles, ExpiresAt: exp})
}

func (h *harness) stored(t *testing.T) (string, bool) {
	t.Helper()
	credential, found, err := h.store.Load(context.Background())
	require.NoError(t, err)
	return credential, found
}

func TestNewAuthServiceStartsLoading(t *testing.T) {
	h := newHarness(t, rejectAll())

	state := h.svc.State()
	assert.True(t, state.Loading)
	assert.False(t, state.Authenticated)

	_, settled := h.svc.Credential()
	assert.False(t, settled)
}

func TestBootstrapWithoutCredential(t *testing.T) {
	h := newHarness(t, rejectAll())

	require.NoError(t, h.svc.Bootstrap(context.Background()))

	assert.Equal(t, domain.SessionState{}, h.svc.State())
	credential, settled := h.svc.Credential()
	assert.True(t, settled)
	assert.Empty(t, credential)
	select {
	case <-h.svc.Ready():
	default:
		t.Fatal("ready channel must be closed after bootstrap")
	}
}

func TestBootstrapWithValidCredential(t *testing.T) {
	h := newHarness(t, rejectAll())
	token := h.mint(t, []string{"ROLE_ADMIN"}, epoch.Add(time.Hour))
	require.NoError(t, h.store.Save(context.Background(), token))

	require.NoError(t, h.svc.Bootstrap(context.Background()))

	state := h.svc.State()
	assert.True(t, state.Authenticated)
	assert.False(t, state.Loading)
	require.NotNil(t, state.Identity)
	assert.Equal(t, []string{"ROLE_ADMIN"}, state.Identity.Roles)
	assert.Equal(t, "Alice Martin", state.Identity.DisplayName)

	credential, settled := h.svc.Credential()
	assert.True(t, settled)
	assert.Equal(t, token, credential)
	assert.Equal(t, []events.EventType{events.EventSessionRestored}, h.events.types)
}

func TestBootstrapDiscardsExpiredCredential(t *testing.T) {
	h := newHarness(t, rejectAll())
	require.NoError(t, h.store.Save(context.Background(), h.mint(t, []string{"ROLE_ADMIN"}, epoch.Add(-time.Minute))))

	require.NoError(t, h.svc.Bootstrap(context.Background()))

	assert.Equal(t, domain.SessionState{}, h.svc.State())
	_, found := h.stored(t)
	assert.False(t, found, "expired credential must be cleared")
}

func TestBootstrapTreatsExpiryAtNowAsExpired(t *testing.T) {
	h := newHarness(t, rejectAll())
	require.NoError(t, h.store.Save(context.Background(), h.mint(t, []string{"ROLE_ADMIN"}, epoch)))

	require.NoError(t, h.svc.Bootstrap(context.Background()))

	assert.False(t, h.svc.State().Authenticated)
}

func TestBootstrapDiscardsMalformedCredential(t *testing.T) {
	h := newHarness(t, rejectAll())
	require.NoError(t, h.store.Save(context.Background(), "garbage"))

	require.NoError(t, h.svc.Bootstrap(context.Background()))

	assert.Equal(t, domain.SessionState{}, h.svc.State())
	_, found := h.stored(t)
	assert.False(t, found)
	assert.Empty(t, h.events.types)
}

type failingStore struct {
	repository.CredentialRepository
}

func (failingStore) Load(context.Context) (string, bool, error) {
	return "", false, errors.New("redis: connection refused")
}

func TestBootstrapStoreFailureLeavesSignedOut(t *testing.T) {
	svc := service.NewAuthService(service.AuthDependencies{
		Credentials:   failingStore{repository.NewMemoryCredentialRepository()},
		Authenticator: rejectAll(),
	})

	err := svc.Bootstrap(context.Background())

	assert.Error(t, err)
	assert.Equal(t, domain.SessionState{}, svc.State())
}

// slowStore holds Load until release is closed.
type slowStore struct {
	*repository.MemoryCredentialRepository
	entered chan struct{}
	release chan struct{}
}

func (s slowStore) Load(ctx context.Context) (string, bool, error) {
	close(s.entered)
	<-s.release
	return s.MemoryCredentialRepository.Load(ctx)
}

func TestStateIsReadableWhileStoreIsSlow(t *testing.T) {
	store := slowStore{
		MemoryCredentialRepository: repository.NewMemoryCredentialRepository(),
		entered:                    make(chan struct{}),
		release:                    make(chan struct{}),
	}
	token := authtest.Mint(t, authtest.Credential{ID: 3, Username: "alice", Roles: []string{"ROLE_ADMIN"}, ExpiresAt: epoch.Add(time.Hour)})
	require.NoError(t, store.MemoryCredentialRepository.Save(context.Background(), token))
	svc := service.NewAuthService(service.AuthDependencies{
		Credentials:   store,
		Authenticator: rejectAll(),
		Clock:         domaintest.NewFakeClock(epoch),
	})

	done := make(chan error, 1)
	go func() { done <- svc.Bootstrap(context.Background()) }()
	<-store.entered

	type snapshot struct {
		state   domain.SessionState
		settled bool
	}
	read := make(chan snapshot, 1)
	go func() {
		_, settled := svc.Credential()
		read <- snapshot{state: svc.State(), settled: settled}
	}()

	select {
	case snap := <-read:
		assert.True(t, snap.state.Loading)
		assert.False(t, snap.settled)
		assert.Equal(t, auth.DecisionPending, auth.Evaluate(snap.state, nil))
	case <-time.After(time.Second):
		t.Fatal("session reads must not wait for the credential store")
	}

	close(store.release)
	require.NoError(t, <-done)
	state := svc.State()
	assert.True(t, state.Authenticated)
	assert.False(t, state.Loading)
}

func TestLogoutDuringBootstrapWins(t *testing.T) {
	store := slowStore{
		MemoryCredentialRepository: repository.NewMemoryCredentialRepository(),
		entered:                    make(chan struct{}),
		release:                    make(chan struct{}),
	}
	token := authtest.Mint(t, authtest.Credential{ID: 3, Username: "alice", Roles: []string{"ROLE_ADMIN"}, ExpiresAt: epoch.Add(time.Hour)})
	require.NoError(t, store.MemoryCredentialRepository.Save(context.Background(), token))
	svc := service.NewAuthService(service.AuthDependencies{
		Credentials:   store,
		Authenticator: rejectAll(),
		Clock:         domaintest.NewFakeClock(epoch),
	})

	done := make(chan error, 1)
	go func() { done <- svc.Bootstrap(context.Background()) }()
	<-store.entered

	logoutDone := make(chan struct{})
	go func() {
		svc.Logout(context.Background())
		close(logoutDone)
	}()
	assert.Eventually(t, func() bool { return !svc.State().Loading }, time.Second, 5*time.Millisecond)

	close(store.release)
	require.NoError(t, <-done)
	<-logoutDone

	assert.Equal(t, domain.SessionState{}, svc.State())
	_, found, err := store.MemoryCredentialRepository.Load(context.Background())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBootstrapRunsOnce(t *testing.T) {
	h := newHarness(t, rejectAll())
	require.NoError(t, h.svc.Bootstrap(context.Background()))

	require.NoError(t, h.store.Save(context.Background(), h.mint(t, []string{"ROLE_ADMIN"}, epoch.Add(time.Hour))))
	require.NoError(t, h.svc.Bootstrap(context.Background()))

	assert.False(t, h.svc.State().Authenticated, "second bootstrap must be a no-op")
}

func TestLoginSuccess(t *testing.T) {
	var token string
	var gotUser, gotPass string
	h := newHarness(t, authenticatorFunc(func(_ context.Context, u, p string) (string, error) {
		gotUser, gotPass = u, p
		return token, nil
	}))
	token = h.mint(t, []string{"ROLE_MEDECIN"}, epoch.Add(time.Hour))
	require.NoError(t, h.svc.Bootstrap(context.Background()))

	identity, err := h.svc.Login(context.Background(), "alice", "pw")
	require.NoError(t, err)

	assert.Equal(t, "alice", gotUser)
	assert.Equal(t, "pw", gotPass)
	assert.Equal(t, "alice", identity.Username)

	state := h.svc.State()
	assert.True(t, state.Authenticated)
	assert.False(t, state.Loading)
	assert.Equal(t, []string{"ROLE_MEDECIN"}, state.Identity.Roles)

	stored, found := h.stored(t)
	assert.True(t, found)
	assert.Equal(t, token, stored)

	credential, _ := h.svc.Credential()
	assert.Equal(t, token, credential)
	assert.Equal(t, []events.EventType{events.EventSessionAuthenticated}, h.events.types)
}

func TestLoginMarksLoadingWhileInFlight(t *testing.T) {
	var h *harness
	var during domain.SessionState
	h = newHarness(t, authenticatorFunc(func(context.Context, string, string) (string, error) {
		during = h.svc.State()
		return "", apperrors.NewAuthenticationFailure("", 401, nil)
	}))
	require.NoError(t, h.svc.Bootstrap(context.Background()))

	_, err := h.svc.Login(context.Background(), "alice", "pw")
	require.Error(t, err)

	assert.True(t, during.Loading)
	assert.False(t, h.svc.State().Loading)
}

func TestLoginFailure(t *testing.T) {
	h := newHarness(t, rejectAll())
	require.NoError(t, h.svc.Bootstrap(context.Background()))

	identity, err := h.svc.Login(context.Background(), "alice", "wrong")

	assert.Nil(t, identity)
	assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
	assert.Equal(t, "Bad credentials", apperrors.ToDomainError(err).Message)
	assert.Equal(t, domain.SessionState{}, h.svc.State())
	_, found := h.stored(t)
	assert.False(t, found)
	assert.Equal(t, []events.EventType{events.EventLoginFailed}, h.events.types)
}

func TestLoginFailureLeavesStoreUntouched(t *testing.T) {
	h := newHarness(t, rejectAll())
	previous := h.mint(t, []string{"ROLE_ADMIN"}, epoch.Add(time.Hour))
	require.NoError(t, h.store.Save(context.Background(), previous))
	require.NoError(t, h.svc.Bootstrap(context.Background()))

	_, err := h.svc.Login(context.Background(), "alice", "wrong")
	require.Error(t, err)

	assert.False(t, h.svc.State().Authenticated)
	stored, found := h.stored(t)
	assert.True(t, found)
	assert.Equal(t, previous, stored)
	credential, settled := h.svc.Credential()
	assert.True(t, settled)
	assert.Empty(t, credential, "a failed login must not leave a credential attached")
}

func TestLoginWrapsTransportErrors(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:8080: connection refused")
	h := newHarness(t, authenticatorFunc(func(context.Context, string, string) (string, error) {
		return "", cause
	}))

	_, err := h.svc.Login(context.Background(), "alice", "pw")

	assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
	assert.ErrorIs(t, err, cause)
}

func TestLoginRejectsUnusableCredential(t *testing.T) {
	t.Run("malformed", func(t *testing.T) {
		h := newHarness(t, authenticatorFunc(func(context.Context, string, string) (string, error) {
			return "not-a-token", nil
		}))

		_, err := h.svc.Login(context.Background(), "alice", "pw")

		assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
		assert.ErrorIs(t, err, apperrors.ErrCredentialMalformed)
		_, found := h.stored(t)
		assert.False(t, found)
	})

	t.Run("already expired", func(t *testing.T) {
		var token string
		h := newHarness(t, authenticatorFunc(func(context.Context, string, string) (string, error) {
			return token, nil
		}))
		token = h.mint(t, []string{"ROLE_ADMIN"}, epoch.Add(-time.Second))

		_, err := h.svc.Login(context.Background(), "alice", "pw")

		assert.ErrorIs(t, err, apperrors.ErrAuthenticationFailed)
		assert.False(t, h.svc.State().Authenticated)
	})
}

func TestLogoutIsIdempotent(t *testing.T) {
	h := newHarness(t, rejectAll())
	require.NoError(t, h.store.Save(context.Background(), h.mint(t, []string{"ROLE_ADMIN"}, epoch.Add(time.Hour))))
	require.NoError(t, h.svc.Bootstrap(context.Background()))

	h.svc.Logout(context.Background())
	once := h.svc.State()
	h.svc.Logout(context.Background())

	assert.Equal(t, once, h.svc.State())
	assert.Equal(t, domain.SessionState{}, h.svc.State())
	_, found := h.stored(t)
	assert.False(t, found)
	assert.Equal(t, []events.EventType{events.EventSessionRestored, events.EventSessionLoggedOut}, h.events.types)
}

func TestInvalidateClearsSession(t *testing.T) {
	h := newHarness(t, rejectAll())
	require.NoError(t, h.store.Save(context.Background(), h.mint(t, []string{"ROLE_ADMIN"}, epoch.Add(time.Hour))))
	require.NoError(t, h.svc.Bootstrap(context.Background()))

	h.svc.Invalidate(context.Background(), apperrors.NewSessionInvalidated(""))

	assert.Equal(t, domain.SessionState{}, h.svc.State())
	_, found := h.stored(t)
	assert.False(t, found)
	assert.Contains(t, h.events.types, events.EventSessionInvalidated)
}

func TestLoginSupersededByLogout(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var token string
	h := newHarness(t, authenticatorFunc(func(context.Context, string, string) (string, error) {
		close(started)
		<-release
		return token, nil
	}))
	token = h.mint(t, []string{"ROLE_ADMIN"}, epoch.Add(time.Hour))
	require.NoError(t, h.svc.Bootstrap(context.Background()))

	errCh := make(chan error, 1)
	go func() {
		_, err := h.svc.Login(context.Background(), "alice", "pw")
		errCh <- err
	}()

	<-started
	h.svc.Logout(context.Background())
	close(release)

	err := <-errCh
	assert.ErrorIs(t, err, apperrors.ErrLoginSuperseded)
	assert.Equal(t, domain.SessionState{}, h.svc.State())
	_, found := h.stored(t)
	assert.False(t, found, "a stale login must not persist its credential")
}

func TestLoginSupersededByNewerLogin(t *testing.T) {
	first := authtest.Mint(t, authtest.Credential{ID: 3, Username: "alice", Roles: []string{"ROLE_ADMIN"}, ExpiresAt: epoch.Add(time.Hour)})
	second := authtest.Mint(t, authtest.Credential{ID: 4, Username: "bob", Roles: []string{"ROLE_MEDECIN"}, ExpiresAt: epoch.Add(time.Hour)})
	started := make(chan struct{})
	release := make(chan struct{})
	h := newHarness(t, authenticatorFunc(func(_ context.Context, username, _ string) (string, error) {
		if username == "alice" {
			close(started)
			<-release
			return first, nil
		}
		return second, nil
	}))
	require.NoError(t, h.svc.Bootstrap(context.Background()))

	errCh := make(chan error, 1)
	go func() {
		_, err := h.svc.Login(context.Background(), "alice", "pw")
		errCh <- err
	}()

	<-started
	identity, err := h.svc.Login(context.Background(), "bob", "pw")
	require.NoError(t, err)
	assert.Equal(t, "bob", identity.Username)
	close(release)

	assert.ErrorIs(t, <-errCh, apperrors.ErrLoginSuperseded)

	state := h.svc.State()
	assert.False(t, state.Loading)
	assert.True(t, state.Authenticated)
	require.NotNil(t, state.Identity)
	assert.Equal(t, "bob", state.Identity.Username)

	credential, settled := h.svc.Credential()
	assert.True(t, settled)
	assert.Equal(t, second, credential)
	stored, found := h.stored(t)
	assert.True(t, found)
	assert.Equal(t, second, stored)
	assert.Equal(t, []events.EventType{events.EventSessionAuthenticated}, h.events.types)
}

func TestEnforceExpiry(t *testing.T) {
	h := newHarness(t, rejectAll())
	require.NoError(t, h.store.Save(context.Background(), h.mint(t, []string{"ROLE_ADMIN"}, epoch.Add(time.Minute))))
	require.NoError(t, h.svc.Bootstrap(context.Background()))

	assert.False(t, h.svc.EnforceExpiry(context.Background()))
	assert.True(t, h.svc.State().Authenticated)

	h.clock.Advance(2 * time.Minute)
	assert.True(t, h.svc.State().Authenticated, "expiry is not checked on its own")

	assert.True(t, h.svc.EnforceExpiry(context.Background()))
	assert.False(t, h.svc.State().Authenticated)
	assert.False(t, h.svc.EnforceExpiry(context.Background()))
}

func TestStateSnapshotIsIsolated(t *testing.T) {
	h := newHarness(t, rejectAll())
	require.NoError(t, h.store.Save(context.Background(), h.mint(t, []string{"ROLE_ADMIN"}, epoch.Add(time.Hour))))
	require.NoError(t, h.svc.Bootstrap(context.Background()))

	snap := h.svc.State()
	snap.Identity.Roles[0] = "ROLE_INFIRMIER"

	assert.Equal(t, []string{"ROLE_ADMIN"}, h.svc.State().Identity.Roles)
}
