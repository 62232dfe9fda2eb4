package query

import "strings"

// Key identifies a cached query as an ordered list of segments.
type Key []string

// NewKey builds a key from non-empty trimmed segments.
func NewKey(segments ...string) Key {
	key := make(Key, 0, len(segments))
	for _, segment := range segments {
		segment = strings.Trim(strings.TrimSpace(segment), "/")
		if segment != "" {
			key = append(key, segment)
		}
	}
	return key
}

// String joins the segments with slashes.
func (k Key) String() string {
	return strings.Join(k, "/")
}

// HasPrefix reports whether every segment of prefix leads k.
func (k Key) HasPrefix(prefix Key) bool {
	if len(prefix) == 0 || len(prefix) > len(k) {
		return false
	}
	for i, segment := range prefix {
		if k[i] != segment {
			return false
		}
	}
	return true
}
