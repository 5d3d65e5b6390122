package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss est retourné quand la clé est absente ou expirée
var ErrMiss = errors.New("cache: miss")

// Cache est l'abstraction de cache à TTL du projet : une clé, une valeur
// texte, une durée de vie, et une invalidation explicite. Les appelants en
// sont propriétaires (aucun cache global au niveau module).
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Invalidate(ctx context.Context, key string) error
}
