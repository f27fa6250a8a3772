// Package memory holds in-process implementations of the repository interfaces.
// They evaluate the same bson filters the mongodb package sends to the server,
// limited to the operators this service builds.
package memory

import (
	"reflect"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/oksasatya/storefront-api/internal/domain"
)

// Counters records how many writes reached a table.
type Counters struct {
	Creates     int
	Updates     int
	Deactivates int
}

// Mutations is the total number of writes.
func (c Counters) Mutations() int { return c.Creates + c.Updates + c.Deactivates }

type table[T any] struct {
	mu     sync.Mutex
	rows   []*T
	fields func(*T) bson.M
	calls  Counters
}

func (t *table[T]) insert(row *T) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.calls.Creates++
	t.rows = append(t.rows, row)
}

func (t *table[T]) first(filter bson.M) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.rows {
		if matches(t.fields(r), filter) {
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (t *table[T]) all(filter bson.M) []T {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]T, 0)
	for _, r := range t.rows {
		if matches(t.fields(r), filter) {
			out = append(out, *r)
		}
	}
	return out
}

// modify applies fn to the first row matching filter and returns a copy of the result.
func (t *table[T]) modify(filter bson.M, fn func(*T)) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	for _, r := range t.rows {
		if matches(t.fields(r), filter) {
			fn(r)
			cp := *r
			return &cp, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (t *table[T]) counters() Counters {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.calls
}

func matches(doc, filter bson.M) bool {
	for key, want := range filter {
		if key == "$or" {
			branches, _ := want.(bson.A)
			ok := false
			for _, b := range branches {
				if sub, isMap := b.(bson.M); isMap && matches(doc, sub) {
					ok = true
					break
				}
			}
			if !ok {
				return false
			}
			continue
		}
		if !matchValue(doc[key], want) {
			return false
		}
	}
	return true
}

func matchValue(got, want any) bool {
	switch w := want.(type) {
	case primitive.Regex:
		s, ok := got.(string)
		if !ok {
			return false
		}
		pattern := w.Pattern
		if strings.Contains(w.Options, "i") {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		return err == nil && re.MatchString(s)
	case bson.M:
		return matchRange(got, w)
	default:
		return reflect.DeepEqual(got, want)
	}
}

func matchRange(got any, ops bson.M) bool {
	ts, ok := got.(time.Time)
	if !ok {
		return false
	}
	for op, v := range ops {
		bound, ok := v.(time.Time)
		if !ok {
			return false
		}
		switch op {
		case "$gte":
			if ts.Before(bound) {
				return false
			}
		case "$lt":
			if !ts.Before(bound) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Millisecond)
}
