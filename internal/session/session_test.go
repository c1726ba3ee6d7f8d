package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/giriraj47/helpstudyabroad/internal/upstream"
)

// stubGateway scripts the credential gateway and counts calls.
type stubGateway struct {
	loginResult *upstream.LoginResult
	loginErr    error

	profile   *upstream.Profile
	verifyErr error

	loginCalls  int
	verifyCalls int
}

func (g *stubGateway) Login(_ context.Context, _, _ string) (*upstream.LoginResult, error) {
	g.loginCalls++
	if g.loginErr != nil {
		return nil, g.loginErr
	}
	return g.loginResult, nil
}

func (g *stubGateway) CurrentIdentity(_ context.Context, _ string) (*upstream.Profile, error) {
	g.verifyCalls++
	if g.verifyErr != nil {
		return nil, g.verifyErr
	}
	return g.profile, nil
}

func (g *stubGateway) Refresh(_ context.Context, _ string) (*upstream.TokenPair, error) {
	return &upstream.TokenPair{AccessToken: "new-tok", RefreshToken: "new-ref"}, nil
}

// fakeJar is an in-memory cookie replica.
type fakeJar struct {
	token     string
	setCalls  int
	clearCall int
}

func (j *fakeJar) Token() string { return j.token }
func (j *fakeJar) Set(token string) {
	j.token = token
	j.setCalls++
}
func (j *fakeJar) Clear() {
	j.token = ""
	j.clearCall++
}

func emilyLogin() *upstream.LoginResult {
	return &upstream.LoginResult{
		ID:           1,
		Username:     "emilys",
		Email:        "emily.johnson@x.dummyjson.com",
		FirstName:    "Emily",
		LastName:     "Smith",
		Gender:       "female",
		Image:        "https://example.com/emily.png",
		AccessToken:  "tok-123",
		RefreshToken: "ref-456",
	}
}

func emilyProfile() *upstream.Profile {
	return &upstream.Profile{
		ID:        1,
		Username:  "emilys",
		Email:     "emily.johnson@x.dummyjson.com",
		FirstName: "Emily",
		LastName:  "Smith",
		Gender:    "female",
		Image:     "https://example.com/emily.png",
	}
}

func newTestStore(t *testing.T, gateway *stubGateway, storage Storage) *Store {
	t.Helper()
	store, err := NewStore(Options{Gateway: gateway, Storage: storage})
	require.NoError(t, err)
	return store
}

func TestLoginSuccess(t *testing.T) {
	ctx := context.Background()
	gateway := &stubGateway{loginResult: emilyLogin()}
	storage := NewMemoryStorage()
	store := newTestStore(t, gateway, storage)
	jar := &fakeJar{}

	outcome := store.Login(ctx, jar, "emilys", "emilyspass")

	require.True(t, outcome.Success)
	assert.Empty(t, outcome.Error)

	st := store.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	assert.Empty(t, st.LastError)
	require.NotNil(t, st.Identity)
	assert.Equal(t, "Emily", st.Identity.FirstName)

	// Both replicas hold the token.
	token, err := storage.AccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-123", token)
	assert.Equal(t, "tok-123", jar.token)

	refresh, err := storage.RefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "ref-456", refresh)
}

func TestLoginRejected(t *testing.T) {
	ctx := context.Background()
	gateway := &stubGateway{
		loginErr: &upstream.Error{StatusCode: 400, Message: "Invalid credentials"},
	}
	storage := NewMemoryStorage()
	store := newTestStore(t, gateway, storage)
	jar := &fakeJar{}

	outcome := store.Login(ctx, jar, "emilys", "wrong")

	require.False(t, outcome.Success)
	assert.Equal(t, "Invalid credentials", outcome.Error)

	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.Equal(t, "Invalid credentials", st.LastError)
	assert.Empty(t, jar.token)

	token, err := storage.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
}

func TestLoginNetworkError(t *testing.T) {
	ctx := context.Background()
	gateway := &stubGateway{loginErr: context.DeadlineExceeded}
	store := newTestStore(t, gateway, NewMemoryStorage())

	outcome := store.Login(ctx, &fakeJar{}, "emilys", "emilyspass")

	require.False(t, outcome.Success)
	assert.Equal(t, "network error during login", outcome.Error)
}

func TestLoginThenReloadRestoresIdentity(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()

	gateway := &stubGateway{loginResult: emilyLogin(), profile: emilyProfile()}
	first := newTestStore(t, gateway, storage)
	require.True(t, first.Login(ctx, &fakeJar{}, "emilys", "emilyspass").Success)

	// Fresh store over the same durable storage simulates a reload.
	reloaded := newTestStore(t, gateway, storage)
	jar := &fakeJar{}
	reloaded.LoadSession(ctx, jar)

	st := reloaded.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	require.NotNil(t, st.Identity)
	assert.Equal(t, first.Snapshot().Identity, st.Identity)
	assert.Equal(t, 1, gateway.verifyCalls)
}

func TestLogoutThenReloadMakesNoNetworkCall(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	gateway := &stubGateway{loginResult: emilyLogin(), profile: emilyProfile()}
	store := newTestStore(t, gateway, storage)
	jar := &fakeJar{}

	require.True(t, store.Login(ctx, jar, "emilys", "emilyspass").Success)
	store.Logout(ctx, jar)

	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.Nil(t, st.Identity)
	assert.Empty(t, st.LastError)
	assert.Empty(t, jar.token)
	assert.Equal(t, 1, jar.clearCall)

	store.LoadSession(ctx, jar)

	assert.False(t, store.Snapshot().IsAuthenticated)
	assert.Equal(t, 0, gateway.verifyCalls)
}

func TestLoadSessionRepairsMissingCookie(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.SaveLogin(ctx, &Identity{ID: 1, Username: "emilys"}, "tok-123", "ref-456"))

	gateway := &stubGateway{profile: emilyProfile()}
	store := newTestStore(t, gateway, storage)

	jar := &fakeJar{} // cookie missing, durable storage populated
	store.LoadSession(ctx, jar)

	assert.Equal(t, "tok-123", jar.token)
	assert.True(t, store.Snapshot().IsAuthenticated)
}

func TestLoadSessionCookieFallbackIsNotWrittenBackBeforeVerification(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	gateway := &stubGateway{verifyErr: &upstream.Error{StatusCode: 401, Message: "Invalid or expired token"}}
	store := newTestStore(t, gateway, storage)

	jar := &fakeJar{token: "cookie-only-tok"}
	store.LoadSession(ctx, jar)

	// Verification failed, so the cookie-sourced token must never have
	// reached durable storage, and the cookie itself is now cleared.
	token, err := storage.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, jar.token)
	assert.False(t, store.Snapshot().IsAuthenticated)
}

func TestLoadSessionVerificationFailureIsSilent(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.SaveLogin(ctx, &Identity{ID: 1}, "stale-tok", "stale-ref"))

	gateway := &stubGateway{verifyErr: &upstream.Error{StatusCode: 401}}
	store := newTestStore(t, gateway, storage)
	jar := &fakeJar{token: "stale-tok"}

	store.LoadSession(ctx, jar)

	st := store.Snapshot()
	assert.False(t, st.IsAuthenticated)
	assert.False(t, st.IsLoading)
	// Routine expiry: no user-facing error.
	assert.Empty(t, st.LastError)
	assert.Nil(t, st.Identity)

	identity, err := storage.Identity(ctx)
	require.NoError(t, err)
	assert.Nil(t, identity)
}

func TestLoadSessionWithNothingPersisted(t *testing.T) {
	ctx := context.Background()
	gateway := &stubGateway{}
	store := newTestStore(t, gateway, NewMemoryStorage())

	assert.True(t, store.Snapshot().IsLoading)

	store.LoadSession(ctx, &fakeJar{})

	st := store.Snapshot()
	assert.False(t, st.IsLoading)
	assert.False(t, st.IsAuthenticated)
	assert.Equal(t, 0, gateway.verifyCalls)
}

func TestLoadSessionIsIdempotent(t *testing.T) {
	ctx := context.Background()
	storage := NewMemoryStorage()
	require.NoError(t, storage.SaveLogin(ctx, &Identity{ID: 1, Username: "emilys"}, "tok-123", "ref-456"))

	gateway := &stubGateway{profile: emilyProfile()}
	store := newTestStore(t, gateway, storage)
	jar := &fakeJar{token: "tok-123"}

	store.LoadSession(ctx, jar)
	store.LoadSession(ctx, jar)

	st := store.Snapshot()
	assert.True(t, st.IsAuthenticated)
	assert.Equal(t, 2, gateway.verifyCalls)
}

func TestSubscribePublishesStateChanges(t *testing.T) {
	ctx := context.Background()
	gateway := &stubGateway{loginResult: emilyLogin()}
	store := newTestStore(t, gateway, NewMemoryStorage())

	var states []State
	listener := func(st State) { states = append(states, st) }
	require.NoError(t, store.Subscribe(listener))
	defer func() { _ = store.Unsubscribe(listener) }()

	store.Login(ctx, &fakeJar{}, "emilys", "emilyspass")

	// EventBus delivers synchronously for plain Subscribe.
	require.NotEmpty(t, states)
	last := states[len(states)-1]
	assert.True(t, last.IsAuthenticated)
}
