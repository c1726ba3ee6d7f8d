package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	evbus "github.com/asaskevich/EventBus"

	"github.com/giriraj47/helpstudyabroad/internal/logger"
	"github.com/giriraj47/helpstudyabroad/internal/upstream"
)

// TopicStateChanged is the bus topic carrying State snapshots after every
// transition. Presentation subscribes instead of polling.
const TopicStateChanged = "session.state"

// Identity is the profile subset kept client-side. It never contains
// tokens.
type Identity struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Gender    string `json:"gender"`
	AvatarURL string `json:"avatarUrl"`
}

// State is a point-in-time snapshot of the session. Invariant:
// IsAuthenticated == (Identity != nil && an access token is held).
type State struct {
	Identity        *Identity
	IsAuthenticated bool
	IsLoading       bool
	LastError       string
}

// LoginOutcome is the tagged result Login hands back to callers. Login
// never returns a Go error; failures land here and in State.LastError.
type LoginOutcome struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Options wires a Store. Gateway and Storage are required; Bus is
// created when absent.
type Options struct {
	Gateway upstream.CredentialGateway
	Storage Storage
	Bus     evbus.Bus
}

// Store owns the authentication state machine for one client runtime.
// Construct exactly one per process; init with LoadSession at boot,
// tear down with Logout. Callers must not overlap mutating calls
// (disable the submit path while IsLoading is true).
type Store struct {
	gateway upstream.CredentialGateway
	storage Storage
	bus     evbus.Bus

	mu           sync.RWMutex
	identity     *Identity
	accessToken  string
	refreshToken string
	// isLoading starts true so presentation shows the restore-in-progress
	// state until the first LoadSession settles.
	isLoading bool
	lastError string
}

func NewStore(opts Options) (*Store, error) {
	if opts.Gateway == nil {
		return nil, errors.New("session: store requires a credential gateway")
	}
	if opts.Storage == nil {
		return nil, errors.New("session: store requires a storage backend")
	}
	bus := opts.Bus
	if bus == nil {
		bus = evbus.New()
	}
	return &Store{
		gateway:   opts.Gateway,
		storage:   opts.Storage,
		bus:       bus,
		isLoading: true,
	}, nil
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() State {
	st := State{
		IsAuthenticated: s.identity != nil && s.accessToken != "",
		IsLoading:       s.isLoading,
		LastError:       s.lastError,
	}
	if s.identity != nil {
		copied := *s.identity
		st.Identity = &copied
	}
	return st
}

// Subscribe registers a callback for state-change snapshots.
func (s *Store) Subscribe(fn func(State)) error {
	return s.bus.Subscribe(TopicStateChanged, fn)
}

// Unsubscribe removes a previously registered callback.
func (s *Store) Unsubscribe(fn func(State)) error {
	return s.bus.Unsubscribe(TopicStateChanged, fn)
}

// set applies a mutation and publishes the resulting snapshot.
func (s *Store) set(mutate func(*Store)) {
	s.mu.Lock()
	mutate(s)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.bus.Publish(TopicStateChanged, snapshot)
}

// LoadSession restores the session from the persisted replicas and
// verifies it upstream. Idempotent: safe to call more than once.
//
// Durable storage is read first; the jar cookie is only a fallback and a
// jar-found token is NOT written back durably before verification. A jar
// found empty while durable storage holds a token is repaired in place.
func (s *Store) LoadSession(ctx context.Context, jar Jar) {
	token, err := s.storage.AccessToken(ctx)
	if err != nil {
		logger.Warn("session: durable storage read failed", map[string]any{
			"error": err.Error(),
		})
	}
	if token == "" {
		token = jar.Token()
	}

	if token == "" {
		// Nothing persisted anywhere: settle logged-out, no network.
		s.set(func(s *Store) { s.isLoading = false })
		return
	}

	if jar.Token() == "" {
		jar.Set(token)
	}

	// Optimistic restore from the cached profile so presentation renders
	// signed-in immediately; isLoading stays true while verifying.
	cached, err := s.storage.Identity(ctx)
	if err != nil {
		logger.Warn("session: cached profile read failed", map[string]any{
			"error": err.Error(),
		})
	}
	s.set(func(s *Store) {
		s.isLoading = true
		if cached != nil {
			s.identity = cached
			s.accessToken = token
		}
	})

	profile, err := s.gateway.CurrentIdentity(ctx, token)
	if err != nil {
		// Authoritative invalid-session signal: clear both replicas,
		// land logged-out, no retry and no user-facing error.
		logger.Info("session: token verification failed, clearing session", map[string]any{
			"error": err.Error(),
		})
		if clearErr := s.storage.Clear(ctx); clearErr != nil {
			logger.Error("session: durable storage clear failed", map[string]any{
				"error": clearErr.Error(),
			})
		}
		jar.Clear()
		s.set(func(s *Store) {
			s.identity = nil
			s.accessToken = ""
			s.refreshToken = ""
			s.isLoading = false
		})
		return
	}

	identity := identityFromProfile(profile)
	if err := s.storage.SaveProfile(ctx, identity, token); err != nil {
		logger.Warn("session: durable profile refresh failed", map[string]any{
			"error": err.Error(),
		})
	}
	s.set(func(s *Store) {
		s.identity = identity
		s.accessToken = token
		s.isLoading = false
	})
}

// Login authenticates against the credential gateway. Failures never
// escape as errors: the outcome carries the message and LastError
// mirrors it.
func (s *Store) Login(ctx context.Context, jar Jar, username, password string) LoginOutcome {
	s.set(func(s *Store) {
		s.isLoading = true
		s.lastError = ""
	})

	result, err := s.gateway.Login(ctx, username, password)
	if err != nil {
		msg := loginErrorMessage(err)
		s.set(func(s *Store) {
			s.identity = nil
			s.accessToken = ""
			s.isLoading = false
			s.lastError = msg
		})
		return LoginOutcome{Success: false, Error: msg}
	}

	identity := identityFromLogin(result)

	// Persist durably first: an authenticated session whose durable copy
	// is missing would break the replica invariant on the next reload.
	if err := s.storage.SaveLogin(ctx, identity, result.AccessToken, result.RefreshToken); err != nil {
		logger.Error("session: durable login write failed", map[string]any{
			"error": err.Error(),
		})
		msg := "failed to persist session"
		s.set(func(s *Store) {
			s.isLoading = false
			s.lastError = msg
		})
		return LoginOutcome{Success: false, Error: msg}
	}

	jar.Set(result.AccessToken)

	s.set(func(s *Store) {
		s.identity = identity
		s.accessToken = result.AccessToken
		s.refreshToken = result.RefreshToken
		s.isLoading = false
		s.lastError = ""
	})
	return LoginOutcome{Success: true}
}

// Logout tears the session down. No network call: both replicas and the
// in-memory state are cleared unconditionally.
func (s *Store) Logout(ctx context.Context, jar Jar) {
	if err := s.storage.Clear(ctx); err != nil {
		logger.Error("session: durable storage clear failed", map[string]any{
			"error": err.Error(),
		})
	}
	jar.Clear()

	s.set(func(s *Store) {
		s.identity = nil
		s.accessToken = ""
		s.refreshToken = ""
		s.isLoading = false
		s.lastError = ""
	})
}

func identityFromLogin(result *upstream.LoginResult) *Identity {
	return &Identity{
		ID:        result.ID,
		Username:  result.Username,
		Email:     result.Email,
		FirstName: result.FirstName,
		LastName:  result.LastName,
		Gender:    result.Gender,
		AvatarURL: result.Image,
	}
}

func identityFromProfile(profile *upstream.Profile) *Identity {
	return &Identity{
		ID:        profile.ID,
		Username:  profile.Username,
		Email:     profile.Email,
		FirstName: profile.FirstName,
		LastName:  profile.LastName,
		Gender:    profile.Gender,
		AvatarURL: profile.Image,
	}
}

func loginErrorMessage(err error) string {
	var upstreamErr *upstream.Error
	if errors.As(err, &upstreamErr) {
		if upstreamErr.Message != "" {
			return upstreamErr.Message
		}
		return fmt.Sprintf("login failed (status %d)", upstreamErr.StatusCode)
	}
	return "network error during login"
}
