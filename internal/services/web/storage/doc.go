// Package storage declares persistence interfaces for web-owned cache data.
//
// Cached payloads are derived from content service reads and can always be
// discarded and rebuilt.
package storage
