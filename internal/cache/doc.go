// Package cache provides the single-threaded LRU cache behind the shader
// identity registry.
//
// # Cache[K, V]
//
// A map plus an intrusive recency list. Lookups and insertions are O(1);
// once the soft limit is exceeded the least recently used quarter of the
// entries is evicted.
//
//	c := cache.New[render.Shader, shader.Fingerprint](4096)
//	c.Set(handle, fp)
//	fp, ok := c.Get(handle)
//
// # Thread Safety
//
// Cache is NOT safe for concurrent use. It belongs to the render thread,
// which is the only goroutine that classifies draws.
package cache
