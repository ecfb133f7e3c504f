package rtr

import (
	"strings"
)

// Router matches a method and path to a handler and produces the
// ordered CaptureStore for any `:param` segments along the way.
//
// Exact paths go through a hash lookup; parameterized paths are
// matched segment by segment. A router may also have child routers
// mounted under a prefix, in which case the prefix's captures and the
// child match's captures are merged into one store.
//
// Routers are built at startup and never mutated afterward, so
// concurrent lookups from many connections need no locking.
type Router[T any] struct {
	static  map[string]map[string]T
	dynamic map[string][]route[T]
	mounts  []mount[T]
}

type route[T any] struct {
	segments []segment
	rest     string // name of a trailing *rest capture, or ""
	handler  T
}

type segment struct {
	literal string
	param   string // non-empty for a :param segment
}

type mount[T any] struct {
	segments []segment
	child    *Router[T]
}

// New creates an empty router.
func New[T any]() *Router[T] {
	return &Router[T]{
		static:  make(map[string]map[string]T),
		dynamic: make(map[string][]route[T]),
	}
}

// Add registers a handler for the given method and path pattern.
// Pattern segments beginning with ':' capture the matched URL segment
// under that name; a final segment beginning with '*' captures the
// rest of the path.
func (r *Router[T]) Add(method, path string, handler T) {
	if !strings.ContainsAny(path, ":*") {
		paths := r.static[method]
		if paths == nil {
			paths = make(map[string]T)
			r.static[method] = paths
		}
		paths[cleanPath(path)] = handler
		return
	}

	rt := route[T]{handler: handler}
	for _, seg := range splitPath(path) {
		switch {
		case strings.HasPrefix(seg, ":"):
			rt.segments = append(rt.segments, segment{param: seg[1:]})
		case strings.HasPrefix(seg, "*"):
			rt.rest = seg[1:]
		default:
			rt.segments = append(rt.segments, segment{literal: seg})
		}
	}
	r.dynamic[method] = append(r.dynamic[method], rt)
}

// Mount attaches a child router under the given prefix. The prefix
// may itself contain :param segments; their captures are merged with
// the child's on lookup, the child's winning on key collision.
func (r *Router[T]) Mount(prefix string, child *Router[T]) {
	m := mount[T]{child: child}
	for _, seg := range splitPath(prefix) {
		if strings.HasPrefix(seg, ":") {
			m.segments = append(m.segments, segment{param: seg[1:]})
		} else {
			m.segments = append(m.segments, segment{literal: seg})
		}
	}
	r.mounts = append(r.mounts, m)
}

// Lookup finds the handler for the given method and path. On a match
// it returns the handler and the store of captures bound along the
// way; the store is freshly allocated and owned by the caller.
func (r *Router[T]) Lookup(method, path string) (handler T, store *CaptureStore, found bool) {
	if paths := r.static[method]; paths != nil {
		if h, ok := paths[cleanPath(path)]; ok {
			return h, NewCaptureStore(), true
		}
	}

	segs := splitPath(path)

	for _, rt := range r.dynamic[method] {
		if st, ok := rt.match(segs); ok {
			return rt.handler, st, true
		}
	}

	for _, m := range r.mounts {
		if len(segs) < len(m.segments) {
			continue
		}
		st := NewCaptureStore()
		ok := true
		for i, seg := range m.segments {
			if seg.param != "" {
				st.Append(seg.param, segs[i])
			} else if seg.literal != segs[i] {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}

		remainder := "/" + strings.Join(segs[len(m.segments):], "/")
		h, childStore, ok := m.child.Lookup(method, remainder)
		if !ok {
			continue
		}
		st.Merge(childStore)
		return h, st, true
	}

	return handler, nil, false
}

func (rt route[T]) match(segs []string) (*CaptureStore, bool) {
	if rt.rest == "" {
		if len(segs) != len(rt.segments) {
			return nil, false
		}
	} else if len(segs) < len(rt.segments) {
		return nil, false
	}

	store := NewCaptureStore()
	for i, seg := range rt.segments {
		if seg.param != "" {
			store.Append(seg.param, segs[i])
		} else if seg.literal != segs[i] {
			return nil, false
		}
	}
	if rt.rest != "" {
		store.Append(rt.rest, strings.Join(segs[len(rt.segments):], "/"))
	}
	return store, true
}

// splitPath breaks a URL path into its segments, ignoring empty ones
// so "/a//b/" and "/a/b" match the same routes.
func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	segs := parts[:0]
	for _, p := range parts {
		if p != "" {
			segs = append(segs, p)
		}
	}
	return segs
}

func cleanPath(path string) string {
	if path == "" {
		return "/"
	}
	if len(path) > 1 && strings.HasSuffix(path, "/") {
		return path[:len(path)-1]
	}
	return path
}
