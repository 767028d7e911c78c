package http

import (
	"net/http"

	"brickvest-backend/internal/domain"
	"brickvest-backend/internal/service"

	"github.com/gorilla/mux"
)

type PropertyHandler struct {
	propertySvc service.PropertyService
}

func NewPropertyHandler(propertySvc service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertySvc: propertySvc}
}

// CreateProperty handles POST /properties
func (h *PropertyHandler) CreateProperty(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	var req struct {
		Name    string `json:"name"`
		Address string `json:"address"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	property, err := h.propertySvc.CreateProperty(r.Context(), claims.UserID, req.Name, req.Address)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"property": property})
}

// ListProperties handles GET /properties
func (h *PropertyHandler) ListProperties(w http.ResponseWriter, r *http.Request) {
	properties, err := h.propertySvc.ListProperties(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	if properties == nil {
		properties = []domain.Property{}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"properties": properties})
}

// GetProperty handles GET /properties/{propertyId}
func (h *PropertyHandler) GetProperty(w http.ResponseWriter, r *http.Request) {
	property, err := h.propertySvc.GetProperty(r.Context(), mux.Vars(r)["propertyId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"property": property})
}
