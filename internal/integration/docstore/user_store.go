package docstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/dowry-planner/backend/internal/application/adapter"
	"github.com/dowry-planner/backend/internal/domain/entity"
	domainerror "github.com/dowry-planner/backend/internal/domain/error"
)

// UserStore implements adapter.UserRepository on Redis. User documents live
// in one hash keyed by lowercase username; a second hash maps friend codes to
// usernames so code lookups stay a two-hop read instead of a scan.
type UserStore struct {
	client *redis.Client
}

// NewUserStore creates a Redis-backed user store.
func NewUserStore(client *redis.Client) adapter.UserRepository {
	return &UserStore{
		client: client,
	}
}

// Create writes the user document and its friend-code index entry.
func (s *UserStore) Create(ctx context.Context, user *entity.User) error {
	payload, err := json.Marshal(userDocFromEntity(user))
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, usersKey(), strings.ToLower(user.Username), payload)
	pipe.HSet(ctx, friendCodesKey(), strings.ToUpper(user.FriendCode), strings.ToLower(user.Username))
	if _, err := pipe.Exec(ctx); err != nil {
		return domainerror.NewBackendUnavailableError("create user", err)
	}
	return nil
}

// FindByID scans the user hash for a matching id. Documents are keyed by
// username, so the id path is a full-hash read; it only serves admin lookups.
func (s *UserStore) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	raw, err := s.client.HGetAll(ctx, usersKey()).Result()
	if err != nil {
		return nil, domainerror.NewBackendUnavailableError("find user by id", err)
	}
	for _, payload := range raw {
		var doc userDoc
		if err := json.Unmarshal([]byte(payload), &doc); err != nil {
			return nil, fmt.Errorf("corrupt user document: %w", err)
		}
		if doc.ID == id {
			return doc.toEntity(), nil
		}
	}
	return nil, domainerror.ErrUserNotFound
}

// FindByUsername retrieves a user document. Returns nil, nil when absent.
func (s *UserStore) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	doc, err := s.readUserDoc(ctx, username)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, nil
	}
	return doc.toEntity(), nil
}

// FindByFriendCode resolves the code through the index hash, then loads the
// user document. Returns nil, nil when the code is unknown.
func (s *UserStore) FindByFriendCode(ctx context.Context, code string) (*entity.User, error) {
	username, err := s.client.HGet(ctx, friendCodesKey(), strings.ToUpper(code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, domainerror.NewBackendUnavailableError("resolve friend code", err)
	}
	return s.FindByUsername(ctx, username)
}

// FindAll retrieves every user ordered by creation time.
func (s *UserStore) FindAll(ctx context.Context) ([]*entity.User, error) {
	raw, err := s.client.HGetAll(ctx, usersKey()).Result()
	if err != nil {
		return nil, domainerror.NewBackendUnavailableError("list users", err)
	}

	users := make([]*entity.User, 0, len(raw))
	for _, payload := range raw {
		var doc userDoc
		if err := json.Unmarshal([]byte(payload), &doc); err != nil {
			return nil, fmt.Errorf("corrupt user document: %w", err)
		}
		users = append(users, doc.toEntity())
	}
	sort.Slice(users, func(i, j int) bool {
		if users[i].CreatedAt.Equal(users[j].CreatedAt) {
			return users[i].Username < users[j].Username
		}
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})
	return users, nil
}

// Update rewrites the user document with non-nil fields applied. A friend
// code change also moves the index entry.
func (s *UserStore) Update(ctx context.Context, username string, updates adapter.UserUpdates) error {
	doc, err := s.readUserDoc(ctx, username)
	if err != nil {
		return err
	}
	if doc == nil {
		return domainerror.ErrUserNotFound
	}

	oldCode := doc.FriendCode
	if updates.Title != nil {
		doc.Title = *updates.Title
	}
	if updates.PasswordHash != nil {
		doc.PasswordHash = *updates.PasswordHash
	}
	if updates.Role != nil {
		doc.Role = string(*updates.Role)
	}
	if updates.FriendCode != nil {
		doc.FriendCode = *updates.FriendCode
	}
	if updates.WeddingDate != nil {
		weddingDate := *updates.WeddingDate
		doc.WeddingDate = &weddingDate
	}
	doc.UpdatedAt = nowUTC()

	payload, err := json.Marshal(*doc)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, usersKey(), strings.ToLower(username), payload)
	if doc.FriendCode != oldCode {
		pipe.HDel(ctx, friendCodesKey(), strings.ToUpper(oldCode))
		pipe.HSet(ctx, friendCodesKey(), strings.ToUpper(doc.FriendCode), strings.ToLower(username))
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return domainerror.NewBackendUnavailableError("update user", err)
	}
	return nil
}

// Rename moves the user document to the new username field and repoints the
// friend-code index. The tree itself is the checklist store's concern.
func (s *UserStore) Rename(ctx context.Context, oldUsername, newUsername string) error {
	doc, err := s.readUserDoc(ctx, oldUsername)
	if err != nil {
		return err
	}
	if doc == nil {
		return domainerror.ErrUserNotFound
	}

	doc.Username = strings.ToLower(newUsername)
	doc.UpdatedAt = nowUTC()

	payload, err := json.Marshal(*doc)
	if err != nil {
		return err
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, usersKey(), strings.ToLower(newUsername), payload)
	pipe.HSet(ctx, friendCodesKey(), strings.ToUpper(doc.FriendCode), strings.ToLower(newUsername))
	pipe.HDel(ctx, usersKey(), strings.ToLower(oldUsername))
	if _, err := pipe.Exec(ctx); err != nil {
		return domainerror.NewBackendUnavailableError("rename user", err)
	}
	return nil
}

// Delete removes the user document and its friend-code index entry.
func (s *UserStore) Delete(ctx context.Context, username string) error {
	doc, err := s.readUserDoc(ctx, username)
	if err != nil {
		return err
	}
	if doc == nil {
		return domainerror.ErrUserNotFound
	}

	pipe := s.client.TxPipeline()
	pipe.HDel(ctx, usersKey(), strings.ToLower(username))
	pipe.HDel(ctx, friendCodesKey(), strings.ToUpper(doc.FriendCode))
	if _, err := pipe.Exec(ctx); err != nil {
		return domainerror.NewBackendUnavailableError("delete user", err)
	}
	return nil
}

// ExistsByUsername checks if a user document exists for the username.
func (s *UserStore) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	exists, err := s.client.HExists(ctx, usersKey(), strings.ToLower(username)).Result()
	if err != nil {
		return false, domainerror.NewBackendUnavailableError("check username", err)
	}
	return exists, nil
}

func (s *UserStore) readUserDoc(ctx context.Context, username string) (*userDoc, error) {
	payload, err := s.client.HGet(ctx, usersKey(), strings.ToLower(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, domainerror.NewBackendUnavailableError("read user", err)
	}
	var doc userDoc
	if err := json.Unmarshal([]byte(payload), &doc); err != nil {
		return nil, fmt.Errorf("corrupt user document: %w", err)
	}
	return &doc, nil
}
