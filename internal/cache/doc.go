// Package cache provides a generic LRU cache with an eviction callback.
//
//	c := cache.New[string, *Font](8, func(key string, f *Font) { f.Close() })
//	c.Set("a", font)
//	f, ok := c.Get("a")
//
// The cache is safe for concurrent use. Hit and miss counters are atomic so
// Stats does not contend with lookups.
package cache
