package client

import (
	"context"
	"sync"

	"baseballnote/models"
	"baseballnote/validation"

	"go.uber.org/zap"
)

// AuthState is a snapshot of the session. Role is nil when it could not be loaded.
type AuthState struct {
	User    *Identity
	Role    *models.Role
	Loading bool
}

// Session holds the signed-in identity and its access token. It is safe for concurrent use.
type Session struct {
	api *Client

	mu        sync.RWMutex
	state     AuthState
	token     string
	listeners map[int]func(AuthState)
	nextID    int
}

// NewSession returns a session in the loading state and installs it as api's TokenSource.
func NewSession(api *Client) *Session {
	s := &Session{api: api, state: AuthState{Loading: true}, listeners: map[int]func(AuthState){}}
	api.Tokens = s
	return s
}

func (s *Session) Client() *Client { return s.api }

func (s *Session) State() AuthState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Subscribe registers fn for every state change and returns a function that removes it.
func (s *Session) Subscribe(fn func(AuthState)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Session) set(state AuthState, token string) {
	s.mu.Lock()
	s.state = state
	s.token = token
	fns := s.listenersLocked()
	s.mu.Unlock()

	notify(fns, state)
}

// listenersLocked snapshots the listeners. s.mu must be held.
func (s *Session) listenersLocked() []func(AuthState) {
	fns := make([]func(AuthState), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	return fns
}

func notify(fns []func(AuthState), state AuthState) {
	for _, fn := range fns {
		fn(state)
	}
}

// loadRole fetches the role claim. A failure leaves the role unknown.
func (s *Session) loadRole(ctx context.Context, uid, token string) *models.Role {
	role, err := s.api.fetchRole(ctx, uid, token)
	if err != nil {
		zap.L().Warn("ロール取得エラー", zap.String("uid", uid), zap.Error(err))
		return nil
	}
	return &role
}

// SignIn logs in and loads the account's role.
func (s *Session) SignIn(ctx context.Context, email, password string) (AuthState, error) {
	res, err := s.api.Login(ctx, validation.LoginInput{Email: email, Password: password})
	if err != nil {
		return s.State(), err
	}
	id := &Identity{UID: res.User.FirebaseUID, Email: res.User.Email, Role: res.User.Role}
	state := AuthState{User: id, Role: s.loadRole(ctx, id.UID, res.Token)}
	s.set(state, res.Token)
	return state, nil
}

// Restore re-validates a previously saved token. An empty or rejected token leaves the
// session signed out.
func (s *Session) Restore(ctx context.Context, token string) (AuthState, error) {
	if token == "" {
		s.set(AuthState{}, "")
		return AuthState{}, nil
	}
	id, err := s.api.VerifyToken(ctx, token)
	if err != nil {
		s.set(AuthState{}, "")
		return AuthState{}, err
	}
	state := AuthState{User: id, Role: s.loadRole(ctx, id.UID, token)}
	s.set(state, token)
	return state, nil
}

// SetRole overrides the role, e.g. right after account creation. It does nothing
// while signed out.
func (s *Session) SetRole(role models.Role) {
	s.mu.Lock()
	if s.state.User == nil {
		s.mu.Unlock()
		return
	}
	s.state.Role = &role
	state := s.state
	fns := s.listenersLocked()
	s.mu.Unlock()

	notify(fns, state)
}

// SignOut revokes the token on the server when possible and clears the session.
func (s *Session) SignOut(ctx context.Context) {
	token := s.Token()
	if token != "" {
		if err := s.api.logout(ctx, token); err != nil {
			zap.L().Debug("logout request failed", zap.Error(err))
		}
	}
	s.set(AuthState{}, "")
}
