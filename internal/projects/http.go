// Package projects exposes the document endpoints the player and the
// admin console consume: project list, config, promotions, schedule.
package projects

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"marquee/internal/docstore"
	"marquee/internal/models"
	"marquee/internal/schedule"

	"github.com/gorilla/mux"
)

type HTTP struct{ store docstore.Store }

func NewHTTP(s docstore.Store) *HTTP { return &HTTP{store: s} }

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/projects", h.listProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", h.createProject).Methods(http.MethodPost)

	api.HandleFunc("/config", h.getDoc(docstore.KindConfig)).Methods(http.MethodGet)
	api.HandleFunc("/config", h.setDoc(docstore.KindConfig)).Methods(http.MethodPost)
	api.HandleFunc("/promotions", h.getDoc(docstore.KindPromotions)).Methods(http.MethodGet)
	api.HandleFunc("/promotions", h.setDoc(docstore.KindPromotions)).Methods(http.MethodPost)
	api.HandleFunc("/schedule", h.getDoc(docstore.KindSchedule)).Methods(http.MethodGet)
	api.HandleFunc("/schedule", h.setDoc(docstore.KindSchedule)).Methods(http.MethodPost)
}

func projectParam(r *http.Request) string {
	id := strings.TrimSpace(r.URL.Query().Get("project"))
	if id == "" {
		id = "default"
	}
	return id
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeRaw(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}

func (h *HTTP) listProjects(w http.ResponseWriter, _ *http.Request) {
	ids, err := h.store.ListProjects()
	if err != nil {
		models.WriteProblem(w, http.StatusInternalServerError, "Storage failure", err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, ids)
}

func (h *HTTP) createProject(w http.ResponseWriter, r *http.Request) {
	var in struct {
		ProjectID string `json:"projectId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad JSON", err.Error(), nil)
		return
	}
	if docstore.SanitizeProjectID(in.ProjectID) == "" {
		models.WriteProblem(w, http.StatusBadRequest, "Validation failed", "projectId required", nil)
		return
	}

	if err := h.store.CreateProject(in.ProjectID); err != nil {
		if errors.Is(err, docstore.ErrExists) {
			models.WriteProblem(w, http.StatusBadRequest, "Validation failed", "project already exists", nil)
			return
		}
		models.WriteProblem(w, http.StatusInternalServerError, "Storage failure", err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *HTTP) getDoc(kind docstore.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := h.store.Get(projectParam(r), kind)
		if err != nil {
			models.WriteProblem(w, http.StatusInternalServerError, "Storage failure", err.Error(), nil)
			return
		}
		writeRaw(w, body)
	}
}

func (h *HTTP) setDoc(kind docstore.Kind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		if err != nil {
			models.WriteProblem(w, http.StatusBadRequest, "Bad body", err.Error(), nil)
			return
		}
		if err := validateDoc(kind, body); err != nil {
			models.WriteProblem(w, http.StatusBadRequest, "Validation failed", err.Error(), nil)
			return
		}
		if err := h.store.Put(projectParam(r), kind, body); err != nil {
			models.WriteProblem(w, http.StatusInternalServerError, "Storage failure", err.Error(), nil)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"success": true})
	}
}

// validateDoc отсекает мусор до записи; схемы полей сервер не навязывает.
func validateDoc(kind docstore.Kind, body []byte) error {
	switch kind {
	case docstore.KindConfig:
		var obj map[string]any
		if err := json.Unmarshal(body, &obj); err != nil {
			return errors.New("config must be a JSON object")
		}
	case docstore.KindPromotions:
		var arr []any
		if err := json.Unmarshal(body, &arr); err != nil {
			return errors.New("promotions must be a JSON array")
		}
	case docstore.KindSchedule:
		var rules []schedule.Rule
		if err := json.Unmarshal(body, &rules); err != nil {
			return errors.New("schedule must be an array of rules")
		}
	}
	return nil
}
