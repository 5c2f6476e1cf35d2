package registry

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"marquee/internal/models"

	"github.com/gorilla/mux"
)

/*
Эндпоинты пейринга:

POST /api/devices/register   {deviceId, code, name} -> {success, device}
GET  /api/devices/poll/{deviceId}                   -> {assignedProject, status} | 404
GET  /api/devices                                   -> [device]
POST /api/devices/assign     {deviceId, projectId}  -> {success} | 404
POST /api/devices/delete     {deviceId}             -> {success}
*/

type HTTP struct{ store Store }

func NewHTTP(s Store) *HTTP { return &HTTP{store: s} }

func (h *HTTP) RegisterRoutes(r *mux.Router) {
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/devices/register", h.register).Methods(http.MethodPost)
	api.HandleFunc("/devices/poll/{deviceId}", h.poll).Methods(http.MethodGet)
	api.HandleFunc("/devices", h.list).Methods(http.MethodGet)
	api.HandleFunc("/devices/assign", h.assign).Methods(http.MethodPost)
	api.HandleFunc("/devices/delete", h.delete).Methods(http.MethodPost)
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (h *HTTP) register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DeviceID string `json:"deviceId"`
		Code     string `json:"code"`
		Name     string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad JSON", err.Error(), nil)
		return
	}
	in.DeviceID = strings.TrimSpace(in.DeviceID)
	if in.DeviceID == "" {
		models.WriteProblem(w, http.StatusBadRequest, "Validation failed", "deviceId required", nil)
		return
	}

	dev, err := h.store.Register(Device{ID: in.DeviceID, Code: in.Code, Name: in.Name})
	if err != nil {
		models.WriteProblem(w, http.StatusInternalServerError, "Storage failure", err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true, "device": dev})
}

func (h *HTTP) poll(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["deviceId"]

	res, err := h.store.Poll(id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			// значимое 404: дисплей должен пройти регистрацию заново
			models.WriteProblem(w, http.StatusNotFound, "Not found", "device not found", map[string]string{"deviceId": id})
			return
		}
		models.WriteProblem(w, http.StatusInternalServerError, "Storage failure", err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *HTTP) list(w http.ResponseWriter, _ *http.Request) {
	devices, err := h.store.List()
	if err != nil {
		models.WriteProblem(w, http.StatusInternalServerError, "Storage failure", err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, devices)
}

func (h *HTTP) assign(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DeviceID  string `json:"deviceId"`
		ProjectID string `json:"projectId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad JSON", err.Error(), nil)
		return
	}
	if in.DeviceID == "" {
		models.WriteProblem(w, http.StatusBadRequest, "Validation failed", "deviceId required", nil)
		return
	}

	err := h.store.Assign(in.DeviceID, in.ProjectID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			models.WriteProblem(w, http.StatusNotFound, "Not found", "device not found", map[string]string{"deviceId": in.DeviceID})
			return
		}
		models.WriteProblem(w, http.StatusInternalServerError, "Storage failure", err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

func (h *HTTP) delete(w http.ResponseWriter, r *http.Request) {
	var in struct {
		DeviceID string `json:"deviceId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		models.WriteProblem(w, http.StatusBadRequest, "Bad JSON", err.Error(), nil)
		return
	}

	if err := h.store.Delete(in.DeviceID); err != nil {
		models.WriteProblem(w, http.StatusInternalServerError, "Storage failure", err.Error(), nil)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}
