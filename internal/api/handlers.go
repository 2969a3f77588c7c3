// Package api exposes the presentation layer over the tracker core: it
// feeds user-entered field values into the recorders and renders snapshots
// and collections for display.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/akhillingutla-us/EcoTracker/internal/domain"
)

// Handler coordinates HTTP requests with the domain service.
type Handler struct {
	service *domain.Service
}

// NewHandler builds a Handler.
func NewHandler(service *domain.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes wires endpoints to the mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/v1/activities", h.createActivity)
	mux.HandleFunc("/v1/photos", h.createPhoto)
	mux.HandleFunc("/v1/stats", h.stats)
	mux.HandleFunc("/v1/export", h.export)
	mux.HandleFunc("/v1/reset", h.reset)
	mux.HandleFunc("/healthz", healthz)
}

// healthz reports a simple OK status for container health checks.
func healthz(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) createActivity(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req CreateActivityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	record, err := h.service.RecordActivity(r.Context(), domain.ActivityInput{
		Description:     req.Description,
		Category:        req.Category,
		DurationMinutes: req.DurationMinutes,
		Notes:           req.Notes,
	})
	if err != nil {
		writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, CreateActivityResponse{
		ActivityID: record.ID,
		Points:     record.Points,
		CreatedAt:  record.CreatedAt,
	})
}

func (h *Handler) createPhoto(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	var req CreatePhotoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "unable to parse body")
		return
	}

	photos, err := h.service.RecordPhoto(r.Context(), req.ImageRef, req.Caption)
	if err != nil {
		writeDomainError(w, err)
		return
	}

	items := make([]PhotoView, 0, len(photos))
	for _, p := range photos {
		items = append(items, toPhotoView(p))
	}
	writeJSON(w, http.StatusCreated, CreatePhotoResponse{Photos: items})
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	snapshot, err := h.service.Stats(r.Context())
	if err != nil {
		writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toStatsView(snapshot))
}

func (h *Handler) export(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	summary, err := h.service.Export(r.Context(), locationTagFromQuery(r))
	if err != nil {
		writeDomainError(w, err)
		return
	}

	resp := ExportResponse{
		GeneratedAt: summary.GeneratedAt,
		Location:    summary.Location,
		Stats:       toStatsView(summary.Stats),
		Activities:  make([]ActivityView, 0, len(summary.Activities)),
		Photos:      make([]PhotoView, 0, len(summary.Photos)),
	}
	for _, a := range summary.Activities {
		resp.Activities = append(resp.Activities, toActivityView(a))
	}
	for _, p := range summary.Photos {
		resp.Photos = append(resp.Photos, toPhotoView(p))
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) reset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "unsupported method")
		return
	}

	if err := h.service.ResetAll(r.Context()); err != nil {
		writeDomainError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// locationTagFromQuery consumes the geolocation collaborator's output. The
// coordinates become a display string; anything missing or unparsable
// falls back to the unavailable tag.
func locationTagFromQuery(r *http.Request) string {
	rawLat := r.URL.Query().Get("lat")
	rawLon := r.URL.Query().Get("lon")
	if rawLat == "" || rawLon == "" {
		return ""
	}
	lat, errLat := strconv.ParseFloat(rawLat, 64)
	lon, errLon := strconv.ParseFloat(rawLon, 64)
	if errLat != nil || errLon != nil {
		return ""
	}
	return domain.LocationTag(lat, lon)
}

// CreateActivityRequest is the payload for POST /v1/activities. Duration
// arrives as raw text, exactly as entered by the user.
type CreateActivityRequest struct {
	Description     string `json:"description"`
	Category        string `json:"category"`
	DurationMinutes string `json:"duration_minutes"`
	Notes           string `json:"notes"`
}

// CreateActivityResponse reports the computed points back for feedback.
type CreateActivityResponse struct {
	ActivityID string    `json:"activity_id"`
	Points     int       `json:"points"`
	CreatedAt  time.Time `json:"created_at"`
}

// CreatePhotoRequest is the payload for POST /v1/photos.
type CreatePhotoRequest struct {
	ImageRef string `json:"image_ref"`
	Caption  string `json:"caption"`
}

// CreatePhotoResponse returns the full photo collection newest-first.
type CreatePhotoResponse struct {
	Photos []PhotoView `json:"photos"`
}

// ActivityView exposes full details about a logged activity.
type ActivityView struct {
	ActivityID      string    `json:"activity_id"`
	Description     string    `json:"description"`
	Category        string    `json:"category"`
	DurationMinutes int       `json:"duration_minutes"`
	Notes           string    `json:"notes,omitempty"`
	Points          int       `json:"points"`
	CreatedAt       time.Time `json:"created_at"`
}

// PhotoView exposes full details about a logged photo.
type PhotoView struct {
	PhotoID   string    `json:"photo_id"`
	ImageRef  string    `json:"image_ref"`
	Caption   string    `json:"caption"`
	CreatedAt time.Time `json:"created_at"`
}

// StatsView renders the analytics snapshot.
type StatsView struct {
	TotalPoints           int            `json:"total_points"`
	TotalActivities       int            `json:"total_activities"`
	TodayPoints           int            `json:"today_points"`
	AverageDailyLast7Days int            `json:"average_daily_last_7_days"`
	BestCategory          string         `json:"best_category"`
	CurrentStreakDays     int            `json:"current_streak_days"`
	PointsByCategory      map[string]int `json:"points_by_category"`
}

// ExportResponse merges both collections with the stats and location tag.
type ExportResponse struct {
	GeneratedAt time.Time      `json:"generated_at"`
	Location    string         `json:"location"`
	Stats       StatsView      `json:"stats"`
	Activities  []ActivityView `json:"activities"`
	Photos      []PhotoView    `json:"photos"`
}

func writeDomainError(w http.ResponseWriter, err error) {
	var validation *domain.ValidationError
	if errors.As(err, &validation) {
		writeError(w, http.StatusBadRequest, "validation_failed", validation.Error())
		return
	}
	if errors.Is(err, domain.ErrStoreUnavailable) {
		writeError(w, http.StatusServiceUnavailable, "storage_unavailable", err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, "server_error", err.Error())
}

func writeError(w http.ResponseWriter, status int, code, detail string) {
	payload := map[string]string{
		"type":   code,
		"detail": detail,
	}
	writeJSON(w, status, payload)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func toActivityView(record domain.ActivityRecord) ActivityView {
	return ActivityView{
		ActivityID:      record.ID,
		Description:     record.Description,
		Category:        record.Category,
		DurationMinutes: record.DurationMinutes,
		Notes:           record.Notes,
		Points:          record.Points,
		CreatedAt:       record.CreatedAt,
	}
}

func toPhotoView(record domain.PhotoRecord) PhotoView {
	return PhotoView{
		PhotoID:   record.ID,
		ImageRef:  record.ImageRef,
		Caption:   record.Caption,
		CreatedAt: record.CreatedAt,
	}
}

func toStatsView(snapshot domain.Snapshot) StatsView {
	return StatsView{
		TotalPoints:           snapshot.TotalPoints,
		TotalActivities:       snapshot.TotalActivities,
		TodayPoints:           snapshot.TodayPoints,
		AverageDailyLast7Days: snapshot.AverageDailyLast7Days,
		BestCategory:          snapshot.BestCategory,
		CurrentStreakDays:     snapshot.CurrentStreakDays,
		PointsByCategory:      snapshot.PointsByCategory,
	}
}
