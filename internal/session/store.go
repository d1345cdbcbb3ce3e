// Package session persists the in-progress questionnaire of a browser
// session in Redis. Entries expire; this is not a user database.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"feasibility-workers/internal/feasibility"
	"feasibility-workers/internal/models"
)

const (
	keyPrefix  = "feasibility"
	DefaultTTL = 7 * 24 * time.Hour
)

var (
	ErrNotFound       = errors.New("session not found")
	ErrInvalidSession = errors.New("session id is empty")
)

func FormDataKey(sessionID string) string {
	return fmt.Sprintf("%s:%s:formData", keyPrefix, sessionID)
}

func UserEmailKey(sessionID string) string {
	return fmt.Sprintf("%s:%s:userEmail", keyPrefix, sessionID)
}

type Store struct {
	rdb redis.Cmdable
	ttl time.Duration
}

func NewStore(rdb redis.Cmdable, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{rdb: rdb, ttl: ttl}
}

func (s *Store) TTL() time.Duration {
	return s.ttl
}

// Save writes the answer-set and the e-mail in one transaction. The
// password used to create the account is never passed here.
func (s *Store) Save(ctx context.Context, sessionID string, set models.AnswerSet, email string) error {
	if sessionID == "" {
		return ErrInvalidSession
	}

	data, err := json.Marshal(set)
	if err != nil {
		return fmt.Errorf("marshal answer-set: %w", err)
	}

	_, err = s.rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.Set(ctx, FormDataKey(sessionID), data, s.ttl)
		p.Set(ctx, UserEmailKey(sessionID), email, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("save session %s: %w", sessionID, err)
	}
	return nil
}

// Load returns the stored answer-set with its derived fields recomputed,
// and the stored e-mail ("" when none). Records written by the legacy
// 12-field form are upgraded.
func (s *Store) Load(ctx context.Context, sessionID string) (models.AnswerSet, string, error) {
	if sessionID == "" {
		return models.AnswerSet{}, "", ErrInvalidSession
	}

	data, err := s.rdb.Get(ctx, FormDataKey(sessionID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.AnswerSet{}, "", ErrNotFound
	}
	if err != nil {
		return models.AnswerSet{}, "", fmt.Errorf("load session %s: %w", sessionID, err)
	}

	set, err := DecodeAnswerSet(data)
	if err != nil {
		return models.AnswerSet{}, "", err
	}

	email, err := s.rdb.Get(ctx, UserEmailKey(sessionID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return models.AnswerSet{}, "", fmt.Errorf("load session email %s: %w", sessionID, err)
	}

	return set, email, nil
}

// DecodeAnswerSet parses a stored or uploaded answer-set. Missing fields keep
// their session-start defaults.
func DecodeAnswerSet(data []byte) (models.AnswerSet, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return models.AnswerSet{}, fmt.Errorf("decode answer-set: %w", err)
	}

	_, legacy := probe["hasTeam"]
	_, current := probe["workingAlone"]
	if legacy && !current {
		var old models.LegacyAnswerSet
		if err := json.Unmarshal(data, &old); err != nil {
			return models.AnswerSet{}, fmt.Errorf("decode legacy answer-set: %w", err)
		}
		return feasibility.Recompute(old.Upgrade()), nil
	}

	set := models.NewAnswerSet()
	if err := json.Unmarshal(data, &set); err != nil {
		return models.AnswerSet{}, fmt.Errorf("decode answer-set: %w", err)
	}
	return feasibility.Recompute(set), nil
}
