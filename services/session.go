package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"playstore-insights/models"
	"playstore-insights/utils"
)

// ErrNotReady is returned by SetFilters before a dataset has been loaded.
var ErrNotReady = errors.New("session is not ready")

// Status is the externally visible load state of a Session.
type Status struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
	Apps    int    `json:"apps"`
	Reviews int    `json:"reviews"`
	Dropped int    `json:"dropped"`
}

// Session is the single application state shared by every view: the loaded
// datasets, the current criteria and the filtered pair derived from them.
// Readers always observe a complete Snapshot; a filter change publishes a new
// one in a single pointer swap.
type Session struct {
	engine *FilterEngine
	logger *utils.Logger

	mu      sync.Mutex
	data    *Dataset
	loading bool
	loadErr error

	snap      atomic.Pointer[Snapshot]
	observers []func(Snapshot)
}

// NewSession creates a Session in the loading state.
func NewSession(engine *FilterEngine, logger *utils.Logger) *Session {
	return &Session{engine: engine, logger: logger, loading: true}
}

// OnUpdate registers fn to run after every published snapshot. Register
// observers before calling Load.
func (s *Session) OnUpdate(fn func(Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// Load runs the loader once. On success the session becomes ready with
// default criteria; on failure the error is kept and returned.
func (s *Session) Load(ctx context.Context, loader *Loader) error {
	ds, err := loader.Load(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.loading = false
	if err != nil {
		s.loadErr = err
		s.logger.Error("[session] Load failed: %v", err)
		return err
	}

	s.data = ds
	s.publishLocked(models.DefaultCriteria())
	s.logger.Info("[session] Ready with %d apps and %d reviews", len(ds.Apps), len(ds.Reviews))
	return nil
}

// SetFilters replaces the criteria wholesale and re-derives the filtered pair.
func (s *Session) SetFilters(criteria models.FilterCriteria) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.data == nil {
		return Snapshot{}, ErrNotReady
	}
	return s.publishLocked(criteria), nil
}

// ClearFilters resets every criterion to its unrestricted default.
func (s *Session) ClearFilters() (Snapshot, error) {
	return s.SetFilters(models.DefaultCriteria())
}

// Snapshot returns the current filtered pair. ok is false until the session
// is ready.
func (s *Session) Snapshot() (snap Snapshot, ok bool) {
	p := s.snap.Load()
	if p == nil {
		return Snapshot{}, false
	}
	return *p, true
}

// Dataset returns the full clean datasets, or nil before a successful load.
func (s *Session) Dataset() *Dataset {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Status reports the load state.
func (s *Session) Status() Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Status{Loading: s.loading}
	if s.loadErr != nil {
		st.Error = s.loadErr.Error()
	}
	if s.data != nil {
		st.Apps = len(s.data.Apps)
		st.Reviews = len(s.data.Reviews)
		st.Dropped = s.data.Dropped
	}
	return st
}

func (s *Session) publishLocked(criteria models.FilterCriteria) Snapshot {
	snap := s.engine.Derive(s.data.Apps, s.data.Reviews, criteria)
	s.snap.Store(&snap)

	s.logger.Debug("[session] Filters applied: %d/%d apps, %d/%d reviews",
		len(snap.Apps), len(s.data.Apps), len(snap.Reviews), len(s.data.Reviews))
	for _, fn := range s.observers {
		fn(snap)
	}
	return snap
}
