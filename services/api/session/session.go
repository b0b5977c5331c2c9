// Package session owns the dashboard's authenticated flag. One State is
// created at startup and shared by reference; it reads the persisted value
// once in Init and writes through on every change.
package session

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"sync"
)

const (
	DefaultUser     = "admin"
	DefaultPassword = "sistemas"
	DisplayName     = "Admin User"

	MsgLoginOK      = "Login exitoso"
	MsgLoginFailed  = "Credenciales incorrectas"
	MsgLogoutOK     = "Logout exitoso"
	msgMissingInput = "Usuario y contraseña son obligatorios"
)

// ErrNotInitialized is returned when State is used before Init.
var ErrNotInitialized = errors.New("session state not initialized")

// State is the process-wide authentication flag.
type State struct {
	persister Persister

	mu          sync.RWMutex
	initialized bool
	authed      bool
}

func NewState(p Persister) *State {
	if p == nil {
		p = &MemoryPersister{}
	}
	return &State{persister: p}
}

// Init loads the persisted flag. Calling it again is a no-op.
func (s *State) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.initialized {
		return nil
	}
	v, err := s.persister.Load(ctx)
	if err != nil {
		return err
	}
	s.authed = v
	s.initialized = true
	return nil
}

func (s *State) Authenticated() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.authed
}

// Set updates the flag and persists it. The in-memory value only changes
// once the write succeeded.
func (s *State) Set(ctx context.Context, authenticated bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return ErrNotInitialized
	}
	if err := s.persister.Save(ctx, authenticated); err != nil {
		return err
	}
	s.authed = authenticated
	return nil
}

// Credentials is the single configured dashboard account.
type Credentials struct {
	User     string
	Password string
}

// DefaultCredentials returns the sample account of the original dashboard.
func DefaultCredentials() Credentials {
	return Credentials{User: DefaultUser, Password: DefaultPassword}
}

func (c Credentials) match(user, password string) bool {
	u := subtle.ConstantTimeCompare([]byte(user), []byte(c.User))
	p := subtle.ConstantTimeCompare([]byte(password), []byte(c.Password))
	return u&p == 1
}

// LoginResult is what the login endpoint returns.
type LoginResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	User    string `json:"user,omitempty"`
}

// Authenticator checks credentials and flips the shared State.
type Authenticator struct {
	creds Credentials
	state *State
}

func NewAuthenticator(creds Credentials, state *State) *Authenticator {
	return &Authenticator{creds: creds, state: state}
}

func (a *Authenticator) State() *State { return a.state }

// Login returns a failed result (not an error) for wrong credentials.
func (a *Authenticator) Login(ctx context.Context, user, password string) (LoginResult, error) {
	if user == "" || password == "" {
		return LoginResult{Message: msgMissingInput}, nil
	}
	if !a.creds.match(user, password) {
		return LoginResult{Message: MsgLoginFailed}, nil
	}
	if err := a.state.Set(ctx, true); err != nil {
		return LoginResult{}, fmt.Errorf("persist login: %w", err)
	}
	return LoginResult{Success: true, Message: MsgLoginOK, User: DisplayName}, nil
}

func (a *Authenticator) Logout(ctx context.Context) (LoginResult, error) {
	if err := a.state.Set(ctx, false); err != nil {
		return LoginResult{}, fmt.Errorf("persist logout: %w", err)
	}
	return LoginResult{Success: true, Message: MsgLogoutOK}, nil
}
