// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/studiopickens/studio-api/internal/auth"
	"github.com/studiopickens/studio-api/internal/model"
)

// ErrUserNotFound is returned when a lookup matches no user record.
var ErrUserNotFound = errors.New("user not found")

// Users is the file-backed credential store. One store per deployment; writes
// share the document layer's backup and atomic-replace behavior.
type Users struct {
	path string
}

// NewUsers creates a credential store backed by the given file.
func NewUsers(path string) *Users {
	return &Users{path: path}
}

// BootstrapAdmin creates the credential store with a single admin account
// (id 1) when no store exists yet. Subsequent runs are a no-op.
func (s *Users) BootstrapAdmin(username, password, email string) error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking credential store: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}

	admin := model.User{
		ID:           1,
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         model.RoleAdmin,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.save([]model.User{admin}); err != nil {
		return fmt.Errorf("creating credential store: %w", err)
	}

	slog.Info("created default admin user", "username", username)
	slog.Warn("change the default admin password after first login")
	return nil
}

// FindByLogin returns the user whose username or email matches login.
func (s *Users) FindByLogin(login string) (model.User, error) {
	users, err := s.load()
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.Username == login || u.Email == login {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

// FindByID returns the user with the given id.
func (s *Users) FindByID(id int64) (model.User, error) {
	users, err := s.load()
	if err != nil {
		return model.User{}, err
	}
	for _, u := range users {
		if u.ID == id {
			return u, nil
		}
	}
	return model.User{}, ErrUserNotFound
}

// RecordLogin stamps the user's lastLogin and returns the updated record.
func (s *Users) RecordLogin(id int64) (model.User, error) {
	now := time.Now().UTC()
	return s.update(id, func(u *model.User) {
		u.LastLogin = &now
	})
}

// ChangePassword replaces the user's password hash and stamps updatedAt.
func (s *Users) ChangePassword(id int64, newHash string) (model.User, error) {
	now := time.Now().UTC()
	return s.update(id, func(u *model.User) {
		u.PasswordHash = newHash
		u.UpdatedAt = &now
	})
}

// update applies fn to the matching record and persists the full list.
func (s *Users) update(id int64, fn func(*model.User)) (model.User, error) {
	users, err := s.load()
	if err != nil {
		return model.User{}, err
	}
	for i := range users {
		if users[i].ID == id {
			fn(&users[i])
			if err := s.save(users); err != nil {
				return model.User{}, err
			}
			return users[i], nil
		}
	}
	return model.User{}, ErrUserNotFound
}

func (s *Users) load() ([]model.User, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("credential store: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("reading credential store: %w", err)
	}

	var users []model.User
	if err := json.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("credential store: %w", ErrCorrupt)
	}
	return users, nil
}

func (s *Users) save(users []model.User) error {
	return writeJSONFile(s.path, users)
}
