// Package store provides the namespaced key-value storage both the plain and
// encrypted configuration layers sit on.
//
// A Backend is one underlying storage area that loads and saves a whole JSON
// object; FileBackend persists it to disk and MemoryBackend keeps it in
// memory for tests. Namespaced scopes all fields under a single top-level
// namespace key inside the backend, so unrelated data in the same area is
// never touched and bulk inspection or erasure stays trivial.
//
// Every operation is a full load-merge-save cycle over the namespace object,
// never a partial write at the backend level. A per-instance mutex makes
// concurrent field updates from the same process read-modify-write
// consistent relative to each other. Two independent OS processes writing
// the same backend can still lose updates (last full cycle wins); writes are
// user-initiated and infrequent, so this is a known, accepted weakness
// rather than something the layer papers over.
//
// Two instances exist side by side in the application: a synced area for
// settings that follow the user, and a local-only area for device-specific
// caches such as fetched model lists.
package store
