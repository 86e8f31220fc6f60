package httptransport

import (
	"encoding/json"
	"errors"
	"net/http"

	"voice-arcade/internal/betting"
	"voice-arcade/internal/config"
	"voice-arcade/internal/ledger"
	"voice-arcade/internal/market"
	"voice-arcade/internal/minigame"
	"voice-arcade/internal/store"

	"github.com/go-chi/chi/v5"
)

type PlayerHandlers struct {
	store      *store.Store
	ledger     *ledger.Ledger
	bettingSvc *betting.Service
	gameSvc    *minigame.Service
	marketSvc  *market.Service
	cfg        config.ServerConfig
}

func NewPlayerHandlers(st *store.Store, led *ledger.Ledger, bettingSvc *betting.Service, gameSvc *minigame.Service, marketSvc *market.Service, cfg config.ServerConfig) *PlayerHandlers {
	return &PlayerHandlers{store: st, ledger: led, bettingSvc: bettingSvc, gameSvc: gameSvc, marketSvc: marketSvc, cfg: cfg}
}

func (h *PlayerHandlers) Signup() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Nickname string `json:"nickname"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.Username == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if body.Nickname == "" {
			body.Nickname = body.Username
		}
		id, err := h.store.CreateAccount(r.Context(), body.Username, body.Nickname, store.RoleUser)
		if err != nil {
			if errors.Is(err, store.ErrDuplicate) {
				WriteHTTPError(w, http.StatusConflict, "username_taken")
				return
			}
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		bal := int64(0)
		if h.cfg.SignupGrantPT > 0 {
			bal, err = h.ledger.SignupGrant(r.Context(), id, h.cfg.SignupGrantPT)
			if err != nil {
				WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
				return
			}
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"account_id": id, "balance_pt": bal})
	}
}

func (h *PlayerHandlers) PlaceWager() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		eventID := chi.URLParam(r, "event_id")
		var body struct {
			AccountID string `json:"account_id"`
			Side      string `json:"side"`
			StakePT   int64  `json:"stake_pt"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.AccountID == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		wagerID, err := h.bettingSvc.PlaceWager(r.Context(), body.AccountID, eventID, body.Side, body.StakePT)
		if err != nil {
			writeBettingError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "wager_id": wagerID})
	}
}

func (h *PlayerHandlers) PlayRPS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AccountID string `json:"account_id"`
			StakePT   int64  `json:"stake_pt"`
			Choice    string `json:"choice"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		res, err := h.gameSvc.PlayRPS(r.Context(), body.AccountID, body.StakePT, body.Choice)
		if err != nil {
			writeGameError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

func (h *PlayerHandlers) PlayOddEven() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AccountID string `json:"account_id"`
			StakePT   int64  `json:"stake_pt"`
			Choice    string `json:"choice"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		res, err := h.gameSvc.PlayOddEven(r.Context(), body.AccountID, body.StakePT, body.Choice)
		if err != nil {
			writeGameError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

func (h *PlayerHandlers) PlayLadder() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			AccountID string               `json:"account_id"`
			StakePT   int64                `json:"stake_pt"`
			Picks     minigame.LadderPicks `json:"picks"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		res, err := h.gameSvc.PlayLadder(r.Context(), body.AccountID, body.StakePT, body.Picks)
		if err != nil {
			writeGameError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(res)
	}
}

func (h *PlayerHandlers) CreateListing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			OwnerAccountID string `json:"owner_account_id"`
			Name           string `json:"name"`
			PricePT        int64  `json:"price_pt"`
			Public         bool   `json:"public"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.OwnerAccountID == "" || body.Name == "" || body.PricePT < 0 {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		id, err := h.marketSvc.RegisterListing(r.Context(), body.OwnerAccountID, body.Name, body.PricePT, body.Public)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				WriteHTTPError(w, http.StatusNotFound, "account_not_found")
				return
			}
			WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "listing_id": id})
	}
}

func (h *PlayerHandlers) PurchaseListing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listingID := chi.URLParam(r, "listing_id")
		var body struct {
			AccountID string `json:"account_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.AccountID == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := h.marketSvc.Purchase(r.Context(), body.AccountID, listingID); err != nil {
			writeMarketError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}
}

func (h *PlayerHandlers) Speak() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		listingID := chi.URLParam(r, "listing_id")
		var body struct {
			AccountID string `json:"account_id"`
			Text      string `json:"text"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_json")
			return
		}
		if body.AccountID == "" || body.Text == "" {
			WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
			return
		}
		if err := h.marketSvc.ChargeUsage(r.Context(), body.AccountID, listingID, h.cfg.TTSCostPT, len(body.Text)); err != nil {
			writeMarketError(w, err)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "cost_pt": h.cfg.TTSCostPT})
	}
}

func writeBettingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, betting.ErrEventNotFound):
		WriteHTTPError(w, http.StatusNotFound, "event_not_found")
	case errors.Is(err, betting.ErrEventNotOpen):
		WriteHTTPError(w, http.StatusConflict, "event_not_open")
	case errors.Is(err, betting.ErrAlreadySettled):
		WriteHTTPError(w, http.StatusConflict, "already_settled")
	case errors.Is(err, betting.ErrInvalidSide), errors.Is(err, betting.ErrInvalidStake):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, betting.ErrDuplicateWager):
		WriteHTTPError(w, http.StatusConflict, "duplicate_wager")
	case errors.Is(err, store.ErrInsufficientFunds):
		WriteHTTPError(w, http.StatusPaymentRequired, "insufficient_funds")
	case errors.Is(err, store.ErrNotFound):
		WriteHTTPError(w, http.StatusNotFound, "not_found")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}

func writeGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, minigame.ErrInvalidChoice), errors.Is(err, minigame.ErrInvalidStake), errors.Is(err, minigame.ErrNoPicks):
		WriteHTTPError(w, http.StatusBadRequest, "invalid_request")
	case errors.Is(err, store.ErrInsufficientFunds):
		WriteHTTPError(w, http.StatusPaymentRequired, "insufficient_funds")
	case errors.Is(err, store.ErrNotFound):
		WriteHTTPError(w, http.StatusNotFound, "account_not_found")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}

func writeMarketError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, market.ErrListingNotFound):
		WriteHTTPError(w, http.StatusNotFound, "listing_not_found")
	case errors.Is(err, market.ErrAlreadyOwned):
		WriteHTTPError(w, http.StatusConflict, "already_owned")
	case errors.Is(err, market.ErrSelfPurchase):
		WriteHTTPError(w, http.StatusBadRequest, "self_purchase")
	case errors.Is(err, market.ErrPrivate), errors.Is(err, market.ErrUnauthorized):
		WriteHTTPError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, store.ErrInsufficientFunds):
		WriteHTTPError(w, http.StatusPaymentRequired, "insufficient_funds")
	case errors.Is(err, store.ErrNotFound):
		WriteHTTPError(w, http.StatusNotFound, "not_found")
	default:
		WriteHTTPError(w, http.StatusInternalServerError, "internal_error")
	}
}
