package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"

	"pieceJobBack/internal/models"
)

type ctxKey string

const userIDKey ctxKey = "user_id"

// WithUserID stores the authenticated caller in ctx.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated caller, or "" when anonymous.
func UserIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey).(string)
	return id
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps the error taxonomy onto HTTP statuses. Unexpected
// errors are written to errorLog.
func writeServiceError(w http.ResponseWriter, errorLog *log.Logger, err error) {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error(), "field": verr.Field})
	case errors.Is(err, models.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, models.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, models.ErrInvalidState):
		writeError(w, http.StatusConflict, err.Error())
	case errors.Is(err, models.ErrForbidden):
		writeError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, models.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		if errorLog != nil {
			errorLog.Output(2, fmt.Sprintf("handler error: %v", err))
		}
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func decodeJSON(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return models.Invalid("body", "invalid JSON")
	}
	return nil
}

// requireUser returns the caller or writes 401.
func requireUser(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := UserIDFromContext(r.Context())
	if id == "" {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return "", false
	}
	return id, true
}

// parseLocation reads optional lat, lon and radius query parameters.
// It returns a nil origin when lat and lon are both absent.
func parseLocation(r *http.Request) (*models.Coordinates, float64, error) {
	q := r.URL.Query()
	latStr, lonStr := strings.TrimSpace(q.Get("lat")), strings.TrimSpace(q.Get("lon"))
	var radius float64
	if v := strings.TrimSpace(q.Get("radius")); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) || f <= 0 {
			return nil, 0, models.Invalid("radius", "must be a positive number")
		}
		radius = f
	}
	if latStr == "" && lonStr == "" {
		return nil, radius, nil
	}
	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		return nil, 0, models.Invalid("lat", "must be a number")
	}
	lon, err := strconv.ParseFloat(lonStr, 64)
	if err != nil {
		return nil, 0, models.Invalid("lon", "must be a number")
	}
	c := models.Coordinates{Latitude: lat, Longitude: lon}
	if !c.Valid() {
		return nil, 0, models.Invalid("location", "out of range")
	}
	return &c, radius, nil
}

func parseLimit(r *http.Request, def int) (int, error) {
	v := r.URL.Query().Get("limit")
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, models.Invalid("limit", fmt.Sprintf("must be a positive integer, got %q", v))
	}
	return n, nil
}
