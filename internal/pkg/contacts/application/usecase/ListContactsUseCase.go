package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	cacheport "github.com/1mmey/SecurityChat/internal/infrastructure/cache/port"
	contacts "github.com/1mmey/SecurityChat/internal/pkg/contacts/domain"
	repository "github.com/1mmey/SecurityChat/internal/pkg/contacts/persistence/repository/port"
)

const contactListTTL = 30 * time.Second

func contactListKey(userID int64) string {
	return fmt.Sprintf("contacts:accepted:%d", userID)
}

// ListCacheInvalidator drops cached contact lists after a mutation.
type ListCacheInvalidator interface {
	Invalidate(ctx context.Context, userIDs ...int64)
}

// ListContactsUseCase returns the accepted contacts of a user, serving from
// the cache when possible. Cache failures degrade to the repository; they
// are logged, never surfaced.
type ListContactsUseCase struct {
	Repo  repository.ContactRepository
	Cache cacheport.Cache
}

func NewListContactsUseCase(repo repository.ContactRepository, cache cacheport.Cache) *ListContactsUseCase {
	return &ListContactsUseCase{Repo: repo, Cache: cache}
}

func (uc *ListContactsUseCase) Execute(ctx context.Context, userID int64) ([]contacts.View, error) {
	key := contactListKey(userID)

	if uc.Cache != nil {
		cached, err := uc.Cache.Get(ctx, key)
		if err == nil {
			var views []contacts.View
			if json.Unmarshal([]byte(cached), &views) == nil {
				return views, nil
			}
		} else if !errors.Is(err, cacheport.ErrMiss) {
			logrus.WithError(err).Warn("contact list cache read failed")
		}
	}

	views, err := uc.Repo.ListAccepted(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPersistence, err)
	}

	if uc.Cache != nil {
		if encoded, err := json.Marshal(views); err == nil {
			if err := uc.Cache.Set(ctx, key, string(encoded), contactListTTL); err != nil {
				logrus.WithError(err).Warn("contact list cache write failed")
			}
		}
	}
	return views, nil
}

// Invalidate implements ListCacheInvalidator on top of the same cache.
func (uc *ListContactsUseCase) Invalidate(ctx context.Context, userIDs ...int64) {
	if uc.Cache == nil {
		return
	}
	keys := make([]string, 0, len(userIDs))
	for _, id := range userIDs {
		keys = append(keys, contactListKey(id))
	}
	if _, err := uc.Cache.Del(ctx, keys...); err != nil {
		logrus.WithError(err).Warn("contact list cache invalidation failed")
	}
}
