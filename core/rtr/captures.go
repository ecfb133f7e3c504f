package rtr

// Capture is a named value bound to a path segment during route matching.
//
// Example:
//
//	Route: /users/:id/posts/:postId
//	URL:   /users/123/posts/456
//	Captures: {id 123}, {postId 456}
//
// A simple struct slice keeps captures ordered; order matters for
// positional extraction into sequences.
type Capture struct {
	Key   string
	Value string
}

// CaptureStore holds the captures for a single request, in the order
// the router bound them. It is created by the router when a route
// matches and owned by that request alone. Extractors treat it as
// read-only; values may still be percent-encoded.
type CaptureStore struct {
	captures []Capture
}

// NewCaptureStore creates a store holding the given captures.
func NewCaptureStore(captures ...Capture) *CaptureStore {
	return &CaptureStore{captures: captures}
}

// Append binds a new capture at the end of the store.
func (s *CaptureStore) Append(key, value string) {
	s.captures = append(s.captures, Capture{Key: key, Value: value})
}

// Get returns the value for the given key and whether it was present.
func (s *CaptureStore) Get(key string) (string, bool) {
	for i := range s.captures {
		if s.captures[i].Key == key {
			return s.captures[i].Value, true
		}
	}
	return "", false
}

// Len returns the number of captures in the store.
func (s *CaptureStore) Len() int {
	return len(s.captures)
}

// Captures returns the underlying capture slice in insertion order.
// Callers must not modify it.
func (s *CaptureStore) Captures() []Capture {
	return s.captures
}

// Merge folds the incoming store into s. On a key collision the
// incoming value wins and keeps the key's original position; new keys
// are appended in the incoming order. Nested routers merge the inner
// match's captures into the outer store as matching descends, so the
// innermost binding is the one extraction sees.
func (s *CaptureStore) Merge(incoming *CaptureStore) {
	if incoming == nil {
		return
	}
	for _, in := range incoming.captures {
		replaced := false
		for i := range s.captures {
			if s.captures[i].Key == in.Key {
				s.captures[i].Value = in.Value
				replaced = true
				break
			}
		}
		if !replaced {
			s.captures = append(s.captures, in)
		}
	}
}

// Reset empties the store, keeping the backing array for reuse.
func (s *CaptureStore) Reset() {
	s.captures = s.captures[:0]
}
