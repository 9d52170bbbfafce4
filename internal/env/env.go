// Package env models the process environment as an ordered snapshot of
// variable names to values. The credential resolver clones a snapshot,
// mutates the clone, and hands it to the launcher, so no code ever edits
// the ambient process environment in place.
package env

import (
	"os"
	"strings"
)

// Snapshot is an ordered mapping from environment variable name to value.
// The zero value is not usable; construct via New, FromEnviron, or FromOS.
type Snapshot struct {
	keys   []string
	values map[string]string
}

// New returns an empty snapshot.
func New() *Snapshot {
	return &Snapshot{values: make(map[string]string)}
}

// FromEnviron builds a snapshot from "KEY=value" pairs, preserving first-seen
// order. A repeated key keeps its original position and takes the last value,
// matching how child processes see duplicate entries. Malformed entries
// (no '=', or an empty name) are dropped.
func FromEnviron(environ []string) *Snapshot {
	s := New()
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			continue
		}
		s.Set(key, value)
	}
	return s
}

// FromOS snapshots the current process environment.
func FromOS() *Snapshot {
	return FromEnviron(os.Environ())
}

// Lookup returns the value for key and whether it is present.
func (s *Snapshot) Lookup(key string) (string, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Get returns the value for key, or "" if absent.
func (s *Snapshot) Get(key string) string {
	return s.values[key]
}

// Has reports whether key is present, regardless of value.
func (s *Snapshot) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Set stores value under key. A new key is appended; an existing key keeps
// its position.
func (s *Snapshot) Set(key, value string) {
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Unset removes key if present.
func (s *Snapshot) Unset(key string) {
	if _, ok := s.values[key]; !ok {
		return
	}
	delete(s.values, key)
	for i, k := range s.keys {
		if k == key {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

// Clone returns an independent copy of the snapshot.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{
		keys:   make([]string, len(s.keys)),
		values: make(map[string]string, len(s.values)),
	}
	copy(c.keys, s.keys)
	for k, v := range s.values {
		c.values[k] = v
	}
	return c
}

// Environ renders the snapshot as "KEY=value" pairs in insertion order,
// suitable for exec.Cmd.Env.
func (s *Snapshot) Environ() []string {
	out := make([]string, 0, len(s.keys))
	for _, k := range s.keys {
		out = append(out, k+"="+s.values[k])
	}
	return out
}

// Len returns the number of variables in the snapshot.
func (s *Snapshot) Len() int {
	return len(s.keys)
}
