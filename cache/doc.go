// Package cache stores derived rasters (cost surfaces, accumulated fields)
// keyed by a fingerprint of everything they were computed from.
//
// What:
//
//   - Fingerprints hash raster geometry and values with xxhash and
//     configuration structs with hashstructure.
//   - Store persists zstd-compressed rasters in a badger database, on disk
//     or in memory.
//   - Handle is an immutable reference to a cached raster and its key.
//
// The store holds no process-wide state; callers open one and pass it on.
package cache
