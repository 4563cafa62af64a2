package cache

import (
	"context"
	"encoding/json"
	"time"

	"staffing-backend/internal/models"

	"github.com/google/uuid"
)

const (
	userKeyPrefix        = "users:id:"
	userVersionKeyPrefix = "users:version:"
	userTTL              = 10 * time.Minute
	// Outlives any entry stamped with it.
	userVersionTTL = 2 * userTTL
)

// UserStore mirrors the service-side user store so the decorator can sit in front of any backend.
type UserStore interface {
	Create(ctx context.Context, u *models.User) error
	Get(ctx context.Context, id string) (*models.User, error)
	GetByPhone(ctx context.Context, phone string) (*models.User, error)
	List(ctx context.Context, role models.Role) ([]*models.User, error)
	Update(ctx context.Context, u *models.User) error
	UpdateRole(ctx context.Context, id string, role models.Role) error
	SetActive(ctx context.Context, id string, active bool) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int, error)
}

// CachedUserStore caches user lookups by id. Entries are stamped with the user's
// version token as read before the backing lookup; every write rotates the token
// and drops the entry, so an entry filled from a read that raced a write never matches.
type CachedUserStore struct {
	UserStore
	kv KV
}

func NewCachedUserStore(next UserStore, kv KV) *CachedUserStore {
	return &CachedUserStore{UserStore: next, kv: kv}
}

func userKey(id string) string        { return userKeyPrefix + id }
func userVersionKey(id string) string { return userVersionKeyPrefix + id }

// cachedUser carries the password hash too, which User omits from JSON.
type cachedUser struct {
	models.User
	PasswordHash string `json:"password_hash"`
	Version      string `json:"version"`
}

func (c *CachedUserStore) version(ctx context.Context, id string) string {
	v, _ := c.kv.Get(ctx, userVersionKey(id))
	return string(v)
}

func (c *CachedUserStore) Get(ctx context.Context, id string) (*models.User, error) {
	version := c.version(ctx, id)
	if data, ok := c.kv.Get(ctx, userKey(id)); ok {
		var cu cachedUser
		if err := json.Unmarshal(data, &cu); err == nil && cu.Version == version {
			u := cu.User
			u.PasswordHash = cu.PasswordHash
			return &u, nil
		}
	}

	u, err := c.UserStore.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if data, err := json.Marshal(cachedUser{User: *u, PasswordHash: u.PasswordHash, Version: version}); err == nil {
		c.kv.Set(ctx, userKey(id), data, userTTL)
	}
	return u, nil
}

// invalidate runs after the backing write: the new token retires every entry
// stamped before it, including one a concurrent reader is about to store.
func (c *CachedUserStore) invalidate(ctx context.Context, id string) {
	c.kv.Set(ctx, userVersionKey(id), []byte(uuid.NewString()), userVersionTTL)
	c.kv.Del(ctx, userKey(id))
}

func (c *CachedUserStore) Update(ctx context.Context, u *models.User) error {
	defer c.invalidate(ctx, u.ID)
	return c.UserStore.Update(ctx, u)
}

func (c *CachedUserStore) UpdateRole(ctx context.Context, id string, role models.Role) error {
	defer c.invalidate(ctx, id)
	return c.UserStore.UpdateRole(ctx, id, role)
}

func (c *CachedUserStore) SetActive(ctx context.Context, id string, active bool) error {
	defer c.invalidate(ctx, id)
	return c.UserStore.SetActive(ctx, id, active)
}

func (c *CachedUserStore) Delete(ctx context.Context, id string) error {
	defer c.invalidate(ctx, id)
	return c.UserStore.Delete(ctx, id)
}
