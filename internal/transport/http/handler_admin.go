package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"voice-arcade/internal/betting"
	"voice-arcade/internal/ledger"
	"voice-arcade/internal/store"

	"github.com/go-chi/chi/v5"
)

type AdminHandlers struct {
	store      *store.Store
	ledger     *ledger.Ledger
	bettingSvc *betting.Service
}

func NewAdminHandlers(st *store.Store, led *ledger.Ledger, bettingSvc *betting.Service) *AdminHandlers {
	return &AdminHandlers{store: st, ledger: led, bettingSvc: bettingSvc}
}

func (h *AdminHandlers) Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := h.store.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "db": "down"})
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "db": "up"})
	}
}

func (h *AdminHandlers) Accounts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		items, err := h.store.ListAccounts(r.Context(), limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

func (h *AdminHandlers) Ledger() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset := ParsePagination(r)
		f := store.LedgerFilter{
			AccountID: r.URL.Query().Get("account_id"),
			Kind:      r.URL.Query().Get("kind"),
			RefType:   r.URL.Query().Get("ref_type"),
			RefID:     r.URL.Query().Get("ref_id"),
		}
		if v := r.URL.Query().Get("from"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.From = &t
			}
		}
		if v := r.URL.Query().Get("to"); v != "" {
			if t, err := time.Parse(time.RFC3339, v); err == nil {
				f.To = &t
			}
		}
		items, err := h.store.ListLedgerEntries(r.Context(), f, limit, offset)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"items": items, "limit": limit, "offset": offset})
	}
}

// Charge applies an operator adjustment, positive to grant and negative to
// fine. A fine past the balance fails rather than overdraw.
func (h *AdminHandlers) Charge() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AccountID   string `json:"account_id"`
			AmountPT    int64  `json:"amount_pt"`
			Description string `json:"description"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.AccountID == "" || body.AmountPT == 0 {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		bal, err := h.ledger.Charge(r.Context(), body.AccountID, body.AmountPT, body.Description)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrInsufficientFunds):
				WriteHTTPError(w, http.StatusPaymentRequired, "insufficient_funds")
			case errors.Is(err, store.ErrNotFound):
				WriteHTTPError(w, http.StatusNotFound, "account_not_found")
			default:
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			}
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "balance_pt": bal})
	}
}

func (h *AdminHandlers) CreateEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Title string `json:"title"`
			SideA string `json:"side_a"`
			SideB string `json:"side_b"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.Title == "" || body.SideA == "" || body.SideB == "" || body.SideA == body.SideB {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		id, err := h.store.CreateEvent(r.Context(), body.Title, body.SideA, body.SideB)
		if err != nil {
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "event_id": id})
	}
}

func (h *AdminHandlers) SettleEvent() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "event_id")
		var body struct {
			WinningSide string `json:"winning_side"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.WinningSide == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		sum, err := h.bettingSvc.SettleEvent(r.Context(), eventID, body.WinningSide)
		if err != nil {
			writeBettingError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(sum)
	}
}
