package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"brickvest-backend/internal/domain"
	"brickvest-backend/internal/service"

	"github.com/gorilla/mux"
)

type OfferingHandler struct {
	offeringSvc service.OfferingService
}

func NewOfferingHandler(offeringSvc service.OfferingService) *OfferingHandler {
	return &OfferingHandler{offeringSvc: offeringSvc}
}

// CreateOffering handles POST /offerings
func (h *OfferingHandler) CreateOffering(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	var req struct {
		Property string          `json:"property"`
		Price    json.RawMessage `json:"price"`
		Quantity json.Number     `json:"quantity"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	quantity, err := parseIntField(req.Quantity)
	if err != nil {
		writeError(w, domain.ErrInvalidQuantity)
		return
	}

	offering, err := h.offeringSvc.OpenOffering(r.Context(), claims.UserID, req.Property, priceString(req.Price), quantity)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"offering": domain.ToPublicView(offering)})
}

// ListOfferings handles GET /offerings
func (h *OfferingHandler) ListOfferings(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	property := r.URL.Query().Get("property")

	offerings, err := h.offeringSvc.ListOfferings(r.Context(), status, property)
	if err != nil {
		writeError(w, err)
		return
	}

	views := make([]domain.OfferingView, 0, len(offerings))
	for i := range offerings {
		views = append(views, domain.ToPublicView(&offerings[i]))
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"offerings": views})
}

// GetOffering handles GET /offerings/{offeringId}
func (h *OfferingHandler) GetOffering(w http.ResponseWriter, r *http.Request) {
	offering, err := h.offeringSvc.GetOffering(r.Context(), mux.Vars(r)["offeringId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"offering": domain.ToPublicView(offering)})
}

// AddBacker handles POST /offerings/{offeringId}/backers
func (h *OfferingHandler) AddBacker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Backer string      `json:"backer"`
		Shares json.Number `json:"shares"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}

	shares, err := parseIntField(req.Shares)
	if err != nil {
		writeError(w, domain.ErrInvalidShares)
		return
	}

	offering, err := h.offeringSvc.AddBacker(r.Context(), mux.Vars(r)["offeringId"], req.Backer, shares)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"offering": domain.ToPublicView(offering)})
}

// UpdateBacker handles PUT /offerings/{offeringId}/backers/{backerId}.
// Reserved; no business rule is defined yet.
func (h *OfferingHandler) UpdateBacker(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Shares json.Number `json:"shares"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	shares, _ := parseIntField(req.Shares)

	vars := mux.Vars(r)
	offering, err := h.offeringSvc.UpdateBacker(r.Context(), vars["offeringId"], vars["backerId"], shares)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"offering": domain.ToPublicView(offering)})
}

// RemoveBacker handles DELETE /offerings/{offeringId}/backers/{backerId}.
// Reserved; no business rule is defined yet.
func (h *OfferingHandler) RemoveBacker(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	if err := h.offeringSvc.RemoveBacker(r.Context(), vars["offeringId"], vars["backerId"]); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CloseOffering handles POST /offerings/{offeringId}/close
func (h *OfferingHandler) CloseOffering(w http.ResponseWriter, r *http.Request) {
	claims, ok := ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, domain.ErrUnauthorized)
		return
	}

	offering, err := h.offeringSvc.CloseOffering(r.Context(), claims.UserID, mux.Vars(r)["offeringId"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"offering": domain.ToPublicView(offering)})
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()
	return dec.Decode(v)
}

// parseIntField parses a JSON number that must be a whole number.
func parseIntField(n json.Number) (int32, error) {
	v, err := strconv.ParseInt(n.String(), 10, 32)
	if err != nil {
		return 0, err
	}
	return int32(v), nil
}

// priceString renders a price field that may arrive as a JSON number or a
// quoted decimal string.
func priceString(raw json.RawMessage) string {
	s := strings.TrimSpace(string(raw))
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
