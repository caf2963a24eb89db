// file: repository/cached_account_repository.go

package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"minibank/logger"
	"minibank/model"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// CachedAccountRepository puts a Redis cache-aside in front of another
// AccountStore. Only GetByID reads the cache; every write invalidates the
// account's key. Cache failures are logged and never fail the call.
type CachedAccountRepository struct {
	inner AccountStore
	cache ICacheClient
	ttl   time.Duration
}

func NewCachedAccountRepository(inner AccountStore, cache ICacheClient, ttl time.Duration) *CachedAccountRepository {
	return &CachedAccountRepository{inner: inner, cache: cache, ttl: ttl}
}

func accountCacheKey(accountNumber int) string {
	return fmt.Sprintf("account:%d", accountNumber)
}

func (c *CachedAccountRepository) Add(account *model.Account) error {
	if err := c.inner.Add(account); err != nil {
		return err
	}
	c.invalidate(account.Number())
	return nil
}

func (c *CachedAccountRepository) Remove(account *model.Account) error {
	if err := c.inner.Remove(account); err != nil {
		return err
	}
	c.invalidate(account.Number())
	return nil
}

func (c *CachedAccountRepository) Update(account *model.Account) error {
	if err := c.inner.Update(account); err != nil {
		return err
	}
	c.invalidate(account.Number())
	return nil
}

func (c *CachedAccountRepository) GetByID(accountNumber int) (*model.Account, bool, error) {
	ctx := context.Background()
	key := accountCacheKey(accountNumber)
	log := logger.Log.WithFields(logrus.Fields{
		"account_number": accountNumber,
		"cache_key":      key,
	})

	// 1. Try the cache.
	cached, err := c.cache.Get(ctx, key).Result()
	switch {
	case err == nil:
		var snap model.AccountSnapshot
		if err := json.Unmarshal([]byte(cached), &snap); err == nil {
			if account, err := model.RestoreAccount(snap); err == nil {
				return account, true, nil
			}
		}
		log.Warn("Discarding unreadable cache entry")
	case !errors.Is(err, redis.Nil):
		log.WithError(err).Warn("Cache read failed")
	}

	// 2. Miss. Go to the backing store.
	account, found, err := c.inner.GetByID(accountNumber)
	if err != nil || !found {
		return account, found, err
	}

	// 3. Populate for the next reader.
	data, err := json.Marshal(account.Snapshot())
	if err == nil {
		if err := c.cache.Set(ctx, key, data, c.ttl).Err(); err != nil {
			log.WithError(err).Warn("Cache write failed")
		}
	}
	return account, true, nil
}

func (c *CachedAccountRepository) GetAll() ([]*model.Account, error) {
	return c.inner.GetAll()
}

func (c *CachedAccountRepository) Count() (int, error) {
	return c.inner.Count()
}

func (c *CachedAccountRepository) invalidate(accountNumber int) {
	key := accountCacheKey(accountNumber)
	if err := c.cache.Del(context.Background(), key).Err(); err != nil {
		logger.Log.WithError(err).WithField("cache_key", key).Warn("Cache invalidation failed")
	}
}

var _ AccountStore = (*CachedAccountRepository)(nil)
