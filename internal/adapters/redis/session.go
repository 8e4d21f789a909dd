// Package redis stores the presenter session in Redis, for setups where
// several machines share one presenter profile.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"pdfsat/internal/domain"
	"pdfsat/internal/ports"
)

// DefaultKey is the key the session JSON is stored under
const DefaultKey = "pdfsat:session"

type sessionData struct {
	LastFile      string `json:"last_file"`
	LastDirectory string `json:"last_directory"`
	LastNotes     string `json:"last_notes"`
	LastSlide     int    `json:"last_slide"`
}

// SessionStore implements ports.SessionStore using Redis
type SessionStore struct {
	client *goredis.Client
	key    string
}

var _ ports.SessionStore = (*SessionStore)(nil)

// NewSessionStore connects to redisURL and checks the connection
func NewSessionStore(redisURL string) (*SessionStore, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := goredis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return &SessionStore{client: client, key: DefaultKey}, nil
}

// NewSessionStoreWithClient creates a store from an existing client
func NewSessionStoreWithClient(client *goredis.Client, key string) *SessionStore {
	if key == "" {
		key = DefaultKey
	}
	return &SessionStore{client: client, key: key}
}

// Load returns the stored session, or the zero value when none is stored
func (s *SessionStore) Load(ctx context.Context) (domain.SessionState, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, goredis.Nil) {
		return domain.SessionState{}, nil
	}
	if err != nil {
		return domain.SessionState{}, fmt.Errorf("load session: %w", err)
	}

	var data sessionData
	if err := json.Unmarshal(raw, &data); err != nil {
		return domain.SessionState{}, fmt.Errorf("unmarshal session: %w", err)
	}
	return domain.SessionState{
		LastFile:      data.LastFile,
		LastDirectory: data.LastDirectory,
		LastNotes:     data.LastNotes,
		LastSlide:     data.LastSlide,
	}, nil
}

// Save stores the session without expiry
func (s *SessionStore) Save(ctx context.Context, state domain.SessionState) error {
	raw, err := json.Marshal(sessionData{
		LastFile:      state.LastFile,
		LastDirectory: state.LastDirectory,
		LastNotes:     state.LastNotes,
		LastSlide:     state.LastSlide,
	})
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// Clear deletes the stored session
func (s *SessionStore) Clear(ctx context.Context) error {
	return s.client.Del(ctx, s.key).Err()
}

// Ping checks the connection
func (s *SessionStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client
func (s *SessionStore) Close() error {
	return s.client.Close()
}
