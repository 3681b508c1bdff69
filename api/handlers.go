package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"playstore-insights/models"
	"playstore-insights/services"
	"playstore-insights/utils"
)

const defaultTopN = 10

// Handler serves the session over HTTP. Every view reads one snapshot, so a
// single response never mixes two filter states.
type Handler struct {
	session *services.Session
	metrics *Metrics
	logger  *utils.Logger
}

// NewHandler creates a Handler over session.
func NewHandler(session *services.Session, metrics *Metrics, logger *utils.Logger) *Handler {
	return &Handler{session: session, metrics: metrics, logger: logger}
}

type viewFunc func(snap services.Snapshot) any

var views = map[string]viewFunc{
	"summary":            func(s services.Snapshot) any { return services.Summarize(s.Apps, s.Reviews) },
	"categories":         func(s services.Snapshot) any { return services.CategoryDistribution(s.Apps) },
	"ratings":            func(s services.Snapshot) any { return services.RatingDistribution(s.Apps) },
	"installs":           func(s services.Snapshot) any { return services.InstallsDistribution(s.Apps) },
	"sizes":              func(s services.Snapshot) any { return services.SizeDistribution(s.Apps) },
	"sentiments":         func(s services.Snapshot) any { return services.SentimentDistribution(s.Reviews) },
	"content-ratings":    func(s services.Snapshot) any { return services.ContentRatingDistribution(s.Apps) },
	"android-versions":   func(s services.Snapshot) any { return services.AndroidVersionDistribution(s.Apps) },
	"types":              func(s services.Snapshot) any { return services.TypeDistribution(s.Apps) },
	"rollups":            func(s services.Snapshot) any { return services.CategoryRollups(s.Apps) },
	"category-sentiment": func(s services.Snapshot) any { return services.CategorySentiment(s.Reviews, s.Apps) },
}

var correlations = map[string]viewFunc{
	"installs-rating":       func(s services.Snapshot) any { return services.InstallsVsRating(s.Apps) },
	"reviews-rating":        func(s services.Snapshot) any { return services.ReviewsVsRating(s.Apps) },
	"size-rating":           func(s services.Snapshot) any { return services.SizeVsRating(s.Apps) },
	"polarity-subjectivity": func(s services.Snapshot) any { return services.PolarityVsSubjectivity(s.Reviews) },
}

// Health always answers while the process is up.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ok(w, r, "ok", nil)
}

// Status reports loading state and dataset sizes.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	ok(w, r, "status", h.session.Status())
}

// GetFilters returns the criteria of the current snapshot.
func (h *Handler) GetFilters(w http.ResponseWriter, r *http.Request) {
	snap, ready := h.snapshot(w, r)
	if !ready {
		return
	}
	ok(w, r, "filters", snap.Criteria)
}

// PutFilters replaces the criteria wholesale. Fields omitted from the body
// take their unrestricted defaults.
func (h *Handler) PutFilters(w http.ResponseWriter, r *http.Request) {
	criteria := models.DefaultCriteria()
	if err := render.DecodeJSON(r.Body, &criteria); err != nil {
		fail(w, r, http.StatusBadRequest, "invalid filter criteria: "+err.Error())
		return
	}
	if msg := validateCriteria(criteria); msg != "" {
		fail(w, r, http.StatusBadRequest, msg)
		return
	}

	snap, err := h.session.SetFilters(criteria)
	if err != nil {
		h.notReady(w, r, err)
		return
	}
	ok(w, r, "filters updated", filterResult(snap))
}

// DeleteFilters resets every criterion.
func (h *Handler) DeleteFilters(w http.ResponseWriter, r *http.Request) {
	snap, err := h.session.ClearFilters()
	if err != nil {
		h.notReady(w, r, err)
		return
	}
	ok(w, r, "filters cleared", filterResult(snap))
}

// FilterOptions lists the choices available over the full app set.
func (h *Handler) FilterOptions(w http.ResponseWriter, r *http.Request) {
	ds := h.session.Dataset()
	if ds == nil {
		h.notReady(w, r, services.ErrNotReady)
		return
	}
	ok(w, r, "filter options", services.BuildFilterOptions(ds.Apps))
}

// View serves one named aggregate.
func (h *Handler) View(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "view")
	fn, found := views[name]
	if !found {
		fail(w, r, http.StatusNotFound, "unknown view: "+name)
		return
	}
	h.serve(w, r, name, fn)
}

// Correlation serves one scatter sample.
func (h *Handler) Correlation(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "pair")
	fn, found := correlations[name]
	if !found {
		fail(w, r, http.StatusNotFound, "unknown correlation: "+name)
		return
	}
	h.serve(w, r, "correlation:"+name, fn)
}

// Top serves a ranking: ?field=installs|rating|reviews|size|price&n=10.
func (h *Handler) Top(w http.ResponseWriter, r *http.Request) {
	field := services.SortField(r.URL.Query().Get("field"))
	if field == "" {
		field = services.SortByInstalls
	}
	if !validSortField(field) {
		fail(w, r, http.StatusBadRequest, "unknown field: "+string(field))
		return
	}

	n := defaultTopN
	if raw := r.URL.Query().Get("n"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			fail(w, r, http.StatusBadRequest, "n must be a non-negative integer")
			return
		}
		n = v
	}

	h.serve(w, r, "top", func(s services.Snapshot) any {
		return services.TopApps(s.Apps, field, n)
	})
}

func (h *Handler) serve(w http.ResponseWriter, r *http.Request, name string, fn viewFunc) {
	snap, ready := h.snapshot(w, r)
	if !ready {
		return
	}
	if h.metrics != nil {
		h.metrics.viewRequested(name)
	}
	ok(w, r, name, fn(snap))
}

func (h *Handler) snapshot(w http.ResponseWriter, r *http.Request) (services.Snapshot, bool) {
	snap, ready := h.session.Snapshot()
	if !ready {
		h.notReady(w, r, services.ErrNotReady)
	}
	return snap, ready
}

func (h *Handler) notReady(w http.ResponseWriter, r *http.Request, err error) {
	st := h.session.Status()
	msg := err.Error()
	if st.Error != "" {
		msg = st.Error
	}
	if !errors.Is(err, services.ErrNotReady) {
		h.logger.Error("[api] %s %s: %v", r.Method, r.URL.Path, err)
	}
	fail(w, r, http.StatusServiceUnavailable, msg)
}

type filterSummary struct {
	Criteria models.FilterCriteria `json:"criteria"`
	Apps     int                   `json:"apps"`
	Reviews  int                   `json:"reviews"`
}

func filterResult(snap services.Snapshot) filterSummary {
	return filterSummary{Criteria: snap.Criteria, Apps: len(snap.Apps), Reviews: len(snap.Reviews)}
}

func validateCriteria(c models.FilterCriteria) string {
	if c.RatingRange.Min > c.RatingRange.Max {
		return "rating_range.min must not exceed rating_range.max"
	}
	if c.InstallsRange.Min > c.InstallsRange.Max {
		return "installs_range.min must not exceed installs_range.max"
	}
	for _, s := range c.Sentiments {
		if _, known := services.ParseSentiment(string(s)); !known {
			return "unknown sentiment: " + string(s)
		}
	}
	for _, t := range c.AppTypes {
		if t != models.AppTypeFree && t != models.AppTypePaid {
			return "unknown app type: " + string(t)
		}
	}
	return ""
}

func validSortField(f services.SortField) bool {
	for _, known := range services.SortFields {
		if f == known {
			return true
		}
	}
	return false
}
