// Package store holds the client state tree: one injectable container with a
// typed region per component. Regions change only through the pure reducers in
// this package, applied atomically by Store.
package store

import (
	"sync"
)

type Region string

const (
	RegionAuth      Region = "auth"
	RegionCatalog   Region = "catalog"
	RegionFavorites Region = "favorites"
	RegionProfile   Region = "profile"
)

type State struct {
	Auth      AuthState      `json:"auth"`
	Catalog   CatalogState   `json:"catalog"`
	Favorites FavoritesState `json:"favorites"`
	Profile   ProfileState   `json:"profile"`
}

// Listener receives the region that changed and the state right after the change.
type Listener func(region Region, state State)

type Config struct {
	CatalogPageSize    int
	CollectionPageSize int
}

func InitialState(cfg Config) State {
	return State{
		Auth:      InitialAuthState(),
		Catalog:   InitialCatalogState(cfg.CatalogPageSize),
		Favorites: InitialFavoritesState(),
		Profile:   InitialProfileState(cfg.CollectionPageSize),
	}
}

type notification struct {
	region Region
	state  State
}

type Store struct {
	mu        sync.Mutex
	state     State
	listeners map[int]Listener
	nextID    int

	pending   []notification
	notifying bool
}

func New(initial State) *Store {
	return &Store{
		state:     initial,
		listeners: make(map[int]Listener),
	}
}

// State returns a snapshot. Reducers never mutate slices or maps in place, so
// the snapshot stays valid after later updates.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Subscribe registers l and returns a function that removes it. Notifications
// racing with the removal are dropped.
func (s *Store) Subscribe(l Listener) func() {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.listeners[id] = l
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

func (s *Store) UpdateAuth(fn func(AuthState) AuthState) AuthState {
	return apply(s, RegionAuth, func(st *State) *AuthState { return &st.Auth }, fn)
}

func (s *Store) UpdateCatalog(fn func(CatalogState) CatalogState) CatalogState {
	return apply(s, RegionCatalog, func(st *State) *CatalogState { return &st.Catalog }, func(c CatalogState) CatalogState {
		next := fn(c)
		next.Revision = c.Revision + 1
		return next
	})
}

func (s *Store) UpdateFavorites(fn func(FavoritesState) FavoritesState) FavoritesState {
	return apply(s, RegionFavorites, func(st *State) *FavoritesState { return &st.Favorites }, fn)
}

func (s *Store) UpdateProfile(fn func(ProfileState) ProfileState) ProfileState {
	return apply(s, RegionProfile, func(st *State) *ProfileState { return &st.Profile }, fn)
}

// apply runs fn against one region while holding the lock, so a read-then-write
// reducer can never interleave with another update. Listeners see updates in
// the order they were applied.
func apply[T any](s *Store, region Region, field func(*State) *T, fn func(T) T) T {
	s.mu.Lock()
	ptr := field(&s.state)
	next := fn(*ptr)
	*ptr = next
	s.pending = append(s.pending, notification{region: region, state: s.state})
	if s.notifying {
		s.mu.Unlock()
		return next
	}
	s.notifying = true
	s.mu.Unlock()

	s.drain()
	return next
}

// drain delivers queued notifications outside the lock. Only one goroutine
// drains at a time; updates made meanwhile, including those made by a
// listener, are queued behind the one being delivered.
func (s *Store) drain() {
	defer func() {
		if r := recover(); r != nil {
			s.mu.Lock()
			s.notifying = false
			s.mu.Unlock()
			panic(r)
		}
	}()

	for {
		s.mu.Lock()
		if len(s.pending) == 0 {
			s.pending = nil
			s.notifying = false
			s.mu.Unlock()
			return
		}
		n := s.pending[0]
		s.pending = s.pending[1:]
		listeners := make([]Listener, 0, len(s.listeners))
		for _, l := range s.listeners {
			listeners = append(listeners, l)
		}
		s.mu.Unlock()

		for _, l := range listeners {
			l(n.region, n.state)
		}
	}
}
