// Package cache provides the LRU caches used by the layout pipeline.
//
// Two flavours are available:
//   - [Cache]: a single-mutex LRU, used for per-font data such as the
//     capability oracle's cluster answers.
//   - [Sharded]: sixteen independent [Cache] shards selected by key hash,
//     used for shaped runs and glyph paths that are hit from several
//     goroutines when runs are shaped in parallel.
//
// Both are safe for concurrent use and never hold their lock while a
// caller-supplied create function runs for a different shard.
package cache
