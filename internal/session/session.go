// Package session はログイン状態をクライアント側ストレージに保存するだけのスタブ。
// 資格情報の検証は行わない。
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"unicode/utf8"

	"storefront/internal/storage"

	"go.uber.org/zap"
)

const StorageKey = "user"

const minPasswordLen = 6

var (
	ErrMissingFields    = errors.New("Please fill in all fields")
	ErrInvalidEmail     = errors.New("Please enter a valid email address")
	ErrPasswordTooShort = errors.New("Password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("Passwords do not match")
)

type User struct {
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
}

type Session struct {
	store storage.Store
	log   *zap.Logger
}

func New(store storage.Store, log *zap.Logger) *Session {
	if log == nil {
		log = zap.NewNop()
	}
	return &Session{store: store, log: log}
}

// Login はどんな資格情報でも受け付ける（空欄のみ拒否）。
func (s *Session) Login(email, password string) (User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return User{}, ErrMissingFields
	}

	u := User{Email: email}
	if err := s.save(u); err != nil {
		return User{}, err
	}
	return u, nil
}

func (s *Session) Signup(name, email, password, confirm string) (User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" || confirm == "" {
		return User{}, ErrMissingFields
	}
	if addr, err := mail.ParseAddress(email); err != nil || addr.Address != email {
		return User{}, ErrInvalidEmail
	}
	if utf8.RuneCountInString(password) < minPasswordLen {
		return User{}, ErrPasswordTooShort
	}
	if password != confirm {
		return User{}, ErrPasswordMismatch
	}

	u := User{Name: name, Email: email}
	if err := s.save(u); err != nil {
		return User{}, err
	}
	return u, nil
}

// Current は保存済みユーザー。壊れたデータはログアウト扱い。
func (s *Session) Current() (User, bool, error) {
	raw, ok, err := s.store.Get(StorageKey)
	if err != nil {
		return User{}, false, fmt.Errorf("read user: %w", err)
	}
	if !ok {
		return User{}, false, nil
	}

	var u User
	if err := json.Unmarshal(raw, &u); err != nil || u.Email == "" {
		s.log.Warn("discarding stored user", zap.Error(err))
		return User{}, false, nil
	}
	return u, true, nil
}

func (s *Session) Logout() error {
	if err := s.store.Delete(StorageKey); err != nil {
		return fmt.Errorf("remove user: %w", err)
	}
	return nil
}

func (s *Session) save(u User) error {
	data, err := json.Marshal(u)
	if err != nil {
		return err
	}
	if err := s.store.Set(StorageKey, data); err != nil {
		return fmt.Errorf("save user: %w", err)
	}
	return nil
}
