package wizard

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"skillbridge/models"
	"skillbridge/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	sessionKeyPrefix = "wizard:session:"
	blobKeyPrefix    = "wizard:blob:"
)

// SessionStore persists wizard sessions and their attachment blobs between
// requests.
type SessionStore interface {
	Save(ctx context.Context, ses *models.WizardSession) error
	Get(ctx context.Context, id string) (*models.WizardSession, error)
	Delete(ctx context.Context, id string) error

	SaveBlob(ctx context.Context, sessionID, slot string, data []byte) error
	GetBlob(ctx context.Context, sessionID, slot string) ([]byte, error)
	DeleteBlob(ctx context.Context, sessionID, slot string) error
}

// RedisSessionStore implements SessionStore on Redis with a per-session TTL.
type RedisSessionStore struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewRedisSessionStore creates a session store with the given client and TTL.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{Client: client, TTL: ttl}
}

func blobKey(sessionID, slot string) string {
	return fmt.Sprintf("%s%s:%s", blobKeyPrefix, sessionID, slot)
}

func (s *RedisSessionStore) Save(ctx context.Context, ses *models.WizardSession) error {
	ses.LastUpdatedAt = time.Now()
	data, err := json.Marshal(ses)
	if err != nil {
		utils.GetLogger().Error("Failed to marshal wizard session", zap.Error(err))
		return err
	}
	if err := s.Client.Set(ctx, sessionKeyPrefix+ses.ID, data, s.TTL).Err(); err != nil {
		utils.GetLogger().Error("Failed to save wizard session", zap.String("sessionID", ses.ID), zap.Error(err))
		return err
	}
	return nil
}

func (s *RedisSessionStore) Get(ctx context.Context, id string) (*models.WizardSession, error) {
	data, err := s.Client.Get(ctx, sessionKeyPrefix+id).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrSessionNotFound
		}
		utils.GetLogger().Error("Failed to get wizard session", zap.String("sessionID", id), zap.Error(err))
		return nil, err
	}
	var ses models.WizardSession
	if err := json.Unmarshal([]byte(data), &ses); err != nil {
		utils.GetLogger().Error("Failed to unmarshal wizard session", zap.String("sessionID", id), zap.Error(err))
		return nil, err
	}
	return &ses, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id string) error {
	return s.Client.Del(ctx, sessionKeyPrefix+id).Err()
}

func (s *RedisSessionStore) SaveBlob(ctx context.Context, sessionID, slot string, data []byte) error {
	return s.Client.Set(ctx, blobKey(sessionID, slot), data, s.TTL).Err()
}

func (s *RedisSessionStore) GetBlob(ctx context.Context, sessionID, slot string) ([]byte, error) {
	data, err := s.Client.Get(ctx, blobKey(sessionID, slot)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrBlobNotFound
		}
		return nil, err
	}
	return data, nil
}

func (s *RedisSessionStore) DeleteBlob(ctx context.Context, sessionID, slot string) error {
	return s.Client.Del(ctx, blobKey(sessionID, slot)).Err()
}
