// Package cache provides a TTL cache with stampede protection.
//
// The catalog's list endpoint is read far more often than it is written, so list results are
// cached per query and the whole cache is cleared after every accepted submission or deletion.
// Concurrent misses for the same query are collapsed into one database read with singleflight.
//
// # Usage
//
//	lists := cache.New[[]models.Item](time.Hour)
//	items, hit, err := lists.GetOrLoad(ctx, key, func(ctx context.Context) ([]models.Item, error) {
//	    return store.List(ctx, filter)
//	})
//	lists.Clear()
package cache
