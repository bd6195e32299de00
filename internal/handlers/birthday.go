package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"BirthdayKeeper/internal/middleware"
	"BirthdayKeeper/internal/model"
	"BirthdayKeeper/internal/service"
)

// BirthdayHandler serves the bulk sync endpoints. All three require an
// authenticated user; records are always scoped to that user.
type BirthdayHandler struct {
	BirthdayService *service.BirthdayService
	Logger          *zap.SugaredLogger
}

func NewBirthdayHandler(birthdayService *service.BirthdayService, logger *zap.SugaredLogger) *BirthdayHandler {
	return &BirthdayHandler{BirthdayService: birthdayService, Logger: logger}
}

// birthdayDTO is the wire form of a record, shared with the client.
// Timestamps travel as RFC 3339 strings.
type birthdayDTO struct {
	ID                 int64  `json:"id"`
	SyncID             string `json:"sync_id"`
	OwnerID            string `json:"owner_id,omitempty"`
	Name               string `json:"name"`
	Date               string `json:"date"`
	Note               string `json:"note,omitempty"`
	Group              string `json:"group,omitempty"`
	LinkedContactID    string `json:"linked_contact_id,omitempty"`
	ContactPhoneNumber string `json:"contact_phone_number,omitempty"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

func toDTO(b model.Birthday) birthdayDTO {
	return birthdayDTO{
		ID:                 b.ClientID,
		SyncID:             b.SyncID,
		Name:               b.Name,
		Date:               b.Date,
		Note:               b.Note,
		Group:              b.Group,
		LinkedContactID:    b.LinkedContactID,
		ContactPhoneNumber: b.ContactPhoneNumber,
		CreatedAt:          b.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:          b.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromDTO(d birthdayDTO) (model.Birthday, error) {
	createdAt, err := time.Parse(time.RFC3339Nano, d.CreatedAt)
	if err != nil {
		return model.Birthday{}, fmt.Errorf("bad created_at %q", d.CreatedAt)
	}
	updatedAt, err := time.Parse(time.RFC3339Nano, d.UpdatedAt)
	if err != nil {
		return model.Birthday{}, fmt.Errorf("bad updated_at %q", d.UpdatedAt)
	}
	return model.Birthday{
		SyncID:             d.SyncID,
		ClientID:           d.ID,
		Name:               d.Name,
		Date:               d.Date,
		Note:               d.Note,
		Group:              d.Group,
		LinkedContactID:    d.LinkedContactID,
		ContactPhoneNumber: d.ContactPhoneNumber,
		CreatedAt:          createdAt,
		UpdatedAt:          updatedAt,
	}, nil
}

// List returns every record of the authenticated user.
func (h *BirthdayHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	rows, err := h.BirthdayService.List(r.Context(), userID)
	if err != nil {
		h.Logger.Errorw("List: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	dtos := make([]birthdayDTO, 0, len(rows))
	for _, b := range rows {
		dtos = append(dtos, toDTO(b))
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(dtos)
}

// UpsertBatch stores a batch of records for the authenticated user.
func (h *BirthdayHandler) UpsertBatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var dtos []birthdayDTO
	if err := json.NewDecoder(r.Body).Decode(&dtos); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	records := make([]model.Birthday, 0, len(dtos))
	for _, d := range dtos {
		b, err := fromDTO(d)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		records = append(records, b)
	}
	if err := h.BirthdayService.UpsertMany(r.Context(), userID, records); err != nil {
		if errors.Is(err, service.ErrInvalidRecord) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Logger.Errorw("UpsertBatch: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]int{"upserted": len(records)})
}

// DeleteBatch removes the user's records with the given sync ids.
func (h *BirthdayHandler) DeleteBatch(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	var syncIDs []string
	if err := json.NewDecoder(r.Body).Decode(&syncIDs); err != nil {
		http.Error(w, "invalid request", http.StatusBadRequest)
		return
	}
	if err := h.BirthdayService.DeleteMany(r.Context(), userID, syncIDs); err != nil {
		if errors.Is(err, service.ErrInvalidRecord) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		h.Logger.Errorw("DeleteBatch: service error", "user_id", userID, "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]int{"deleted": len(syncIDs)})
}
