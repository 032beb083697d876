package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/bilgisen/ainews/internal/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// CreateUser registers a new account. Email and username uniqueness is
// enforced with SETNX index keys; a half-claimed registration rolls
// back its index entry before reporting the conflict.
func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	user.Username = strings.TrimSpace(user.Username)
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	user.IsActive = true
	if user.Role == "" {
		user.Role = "user"
	}

	emailKey := s.key("user", "email", user.Email)
	ok, err := s.rdb.SetNX(ctx, emailKey, user.ID, 0).Result()
	if err != nil {
		return fmt.Errorf("claiming email: %w", err)
	}
	if !ok {
		return ErrEmailTaken
	}

	usernameKey := s.key("user", "username", strings.ToLower(user.Username))
	ok, err = s.rdb.SetNX(ctx, usernameKey, user.ID, 0).Result()
	if err != nil {
		s.rdb.Del(ctx, emailKey)
		return fmt.Errorf("claiming username: %w", err)
	}
	if !ok {
		s.rdb.Del(ctx, emailKey)
		return ErrUsernameTaken
	}

	if err := s.putUser(ctx, user); err != nil {
		s.rdb.Del(ctx, emailKey, usernameKey)
		return err
	}
	return nil
}

// GetUserByID loads one user document.
func (s *Store) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.loadUser(ctx, s.key("user", id))
}

// GetUserByEmail resolves the email index and loads the user.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	id, err := s.rdb.Get(ctx, s.key("user", "email", email)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("resolving email index: %w", err)
	}
	return s.GetUserByID(ctx, id)
}

// UpdateUser overwrites the user document. Email and username changes
// are not supported through this path; the index keys stay as created.
func (s *Store) UpdateUser(ctx context.Context, user *models.User) error {
	user.UpdatedAt = time.Now()
	return s.putUser(ctx, user)
}

func (s *Store) putUser(ctx context.Context, user *models.User) error {
	data, err := json.Marshal(storedUser{
		User:         *user,
		PasswordHash: user.PasswordHash,
	})
	if err != nil {
		return fmt.Errorf("marshaling user: %w", err)
	}
	if err := s.rdb.Set(ctx, s.key("user", user.ID), data, 0).Err(); err != nil {
		return fmt.Errorf("storing user: %w", err)
	}
	return nil
}

func (s *Store) loadUser(ctx context.Context, key string) (*models.User, error) {
	data, err := s.rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("loading user: %w", err)
	}
	var su storedUser
	if err := json.Unmarshal(data, &su); err != nil {
		return nil, fmt.Errorf("unmarshaling user: %w", err)
	}
	user := su.User
	user.PasswordHash = su.PasswordHash
	return &user, nil
}

// storedUser re-adds the password hash that the API representation of
// models.User deliberately drops.
type storedUser struct {
	models.User
	PasswordHash string `json:"passwordHash"`
}
