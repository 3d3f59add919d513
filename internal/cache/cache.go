// Package cache stores the instances produced for singleton and request scopes.
package cache

import "sync"

type Store struct {
	mu         sync.RWMutex
	singletons map[any]any
	requests   map[string]map[any]any
}

func New() *Store {
	return &Store{
		singletons: make(map[any]any),
		requests:   make(map[string]map[any]any),
	}
}

func (s *Store) Singleton(token any) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instance, ok := s.singletons[token]
	return instance, ok
}

// SetSingleton stores instance for token. A later write replaces an earlier one.
func (s *Store) SetSingleton(token any, instance any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.singletons[token] = instance
}

// Evict drops the singleton cached for token.
func (s *Store) Evict(token any) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.singletons[token]
	delete(s.singletons, token)
	return ok
}

func (s *Store) Request(id string, token any) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	instances, ok := s.requests[id]
	if !ok {
		return nil, false
	}
	instance, ok := instances[token]
	return instance, ok
}

func (s *Store) SetRequest(id string, token any, instance any) {
	s.mu.Lock()
	defer s.mu.Unlock()

	instances, ok := s.requests[id]
	if !ok {
		instances = make(map[any]any)
		s.requests[id] = instances
	}
	instances[token] = instance
}

// ReleaseRequest drops every instance cached for id and reports whether any existed.
func (s *Store) ReleaseRequest(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.requests[id]
	delete(s.requests, id)
	return ok
}

func (s *Store) Requests() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.requests)
}

func (s *Store) Singletons() map[any]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := make(map[any]any, len(s.singletons))
	for k, v := range s.singletons {
		snapshot[k] = v
	}
	return snapshot
}

func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.singletons = make(map[any]any)
	s.requests = make(map[string]map[any]any)
}
