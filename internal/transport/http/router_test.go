package httptransport_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"voice-arcade/internal/config"
	"voice-arcade/internal/ledger"
	"voice-arcade/internal/store"
	"voice-arcade/internal/testutil"
	httptransport "voice-arcade/internal/transport/http"
)

func newTestRouter(t *testing.T, st *store.Store) http.Handler {
	t.Helper()
	houseID, err := st.EnsureHouseAccount(context.Background(), "house")
	if err != nil {
		t.Fatalf("ensure house: %v", err)
	}
	cfg := config.ServerConfig{
		AdminAPIKey:   "admin-key",
		SignupGrantPT: 1000,
		BetFeeRate:    0.10,
		GameFeeRate:   0.10,
		TTSCostPT:     50,
		SelfUseFree:   true,
		OwnerSharePct: 70,
	}
	return httptransport.NewRouter(st, ledger.New(st, houseID), cfg)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string, headers map[string]string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	out := map[string]any{}
	_ = json.Unmarshal(w.Body.Bytes(), &out)
	return w, out
}

func TestBettingFlowOverHTTP(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	router := newTestRouter(t, st)
	admin := map[string]string{"X-Admin-Key": "admin-key"}

	w, _ := doJSON(t, router, http.MethodGet, "/healthz", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("healthz = %d, want 200", w.Code)
	}

	w, winner := doJSON(t, router, http.MethodPost, "/api/accounts/signup", `{"username":"winner"}`, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("signup = %d body=%s", w.Code, w.Body.String())
	}
	if winner["balance_pt"].(float64) != 1000 {
		t.Fatalf("signup balance = %v, want 1000", winner["balance_pt"])
	}
	_, loser := doJSON(t, router, http.MethodPost, "/api/accounts/signup", `{"username":"loser"}`, nil)

	w, _ = doJSON(t, router, http.MethodPost, "/api/accounts/signup", `{"username":"winner"}`, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate signup = %d, want 409", w.Code)
	}

	w, _ = doJSON(t, router, http.MethodPost, "/api/admin/events", `{"title":"cup","side_a":"A","side_b":"B"}`, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("unauth event create = %d, want 401", w.Code)
	}
	w, ev := doJSON(t, router, http.MethodPost, "/api/admin/events", `{"title":"cup","side_a":"A","side_b":"B"}`, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("event create = %d body=%s", w.Code, w.Body.String())
	}
	eventID := ev["event_id"].(string)

	wagerPath := fmt.Sprintf("/api/events/%s/wagers", eventID)
	w, _ = doJSON(t, router, http.MethodPost, wagerPath,
		fmt.Sprintf(`{"account_id":%q,"side":"A","stake_pt":200}`, winner["account_id"]), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("winner wager = %d body=%s", w.Code, w.Body.String())
	}
	w, _ = doJSON(t, router, http.MethodPost, wagerPath,
		fmt.Sprintf(`{"account_id":%q,"side":"B","stake_pt":300}`, loser["account_id"]), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("loser wager = %d body=%s", w.Code, w.Body.String())
	}
	w, _ = doJSON(t, router, http.MethodPost, wagerPath,
		fmt.Sprintf(`{"account_id":%q,"side":"A","stake_pt":50}`, winner["account_id"]), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate wager = %d, want 409", w.Code)
	}

	w, sum := doJSON(t, router, http.MethodPost, "/api/admin/events/"+eventID+"/settle", `{"winning_side":"A"}`, admin)
	if w.Code != http.StatusOK {
		t.Fatalf("settle = %d body=%s", w.Code, w.Body.String())
	}
	if sum["total_pot"].(float64) != 500 || sum["fee_taken"].(float64) != 50 {
		t.Fatalf("settle summary = %v, want pot 500 fee 50", sum)
	}
	w, _ = doJSON(t, router, http.MethodPost, "/api/admin/events/"+eventID+"/settle", `{"winning_side":"A"}`, admin)
	if w.Code != http.StatusConflict {
		t.Fatalf("repeat settle = %d, want 409", w.Code)
	}

	// 1000 - 200 stake + 450 share of the 450 prize pot.
	w, prof := doJSON(t, router, http.MethodGet, "/api/public/profile?username=winner", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("profile = %d", w.Code)
	}
	if prof["balance_pt"].(float64) != 1250 {
		t.Fatalf("winner balance = %v, want 1250", prof["balance_pt"])
	}
}

func TestMarketFlowOverHTTP(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	router := newTestRouter(t, st)

	_, owner := doJSON(t, router, http.MethodPost, "/api/accounts/signup", `{"username":"owner"}`, nil)
	_, buyer := doJSON(t, router, http.MethodPost, "/api/accounts/signup", `{"username":"buyer"}`, nil)

	w, listing := doJSON(t, router, http.MethodPost, "/api/listings",
		fmt.Sprintf(`{"owner_account_id":%q,"name":"narrator","price_pt":500,"public":true}`, owner["account_id"]), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("create listing = %d body=%s", w.Code, w.Body.String())
	}
	listingID := listing["listing_id"].(string)

	w, _ = doJSON(t, router, http.MethodPost, "/api/listings/"+listingID+"/purchase",
		fmt.Sprintf(`{"account_id":%q}`, buyer["account_id"]), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("purchase = %d body=%s", w.Code, w.Body.String())
	}
	w, _ = doJSON(t, router, http.MethodPost, "/api/listings/"+listingID+"/purchase",
		fmt.Sprintf(`{"account_id":%q}`, buyer["account_id"]), nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("repeat purchase = %d, want 409", w.Code)
	}

	w, _ = doJSON(t, router, http.MethodPost, "/api/listings/"+listingID+"/speak",
		fmt.Sprintf(`{"account_id":%q,"text":"hello there"}`, buyer["account_id"]), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("speak = %d body=%s", w.Code, w.Body.String())
	}

	// 1000 - 500 purchase - 50 per use.
	w, prof := doJSON(t, router, http.MethodGet, "/api/public/profile?username=buyer", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("profile = %d", w.Code)
	}
	if prof["balance_pt"].(float64) != 450 {
		t.Fatalf("buyer balance = %v, want 450", prof["balance_pt"])
	}
	// Owner keeps the signup grant plus the 350 sale share.
	_, ownerProf := doJSON(t, router, http.MethodGet, "/api/public/profile?username=owner", "", nil)
	if ownerProf["balance_pt"].(float64) != 1350 {
		t.Fatalf("owner balance = %v, want 1350", ownerProf["balance_pt"])
	}

	w, listings := doJSON(t, router, http.MethodGet, "/api/public/listings", "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("listings = %d", w.Code)
	}
	items := listings["items"].([]any)
	if len(items) != 1 {
		t.Fatalf("listings = %d, want 1", len(items))
	}
}

func TestMinigameEndpointsValidate(t *testing.T) {
	st, cleanup := testutil.OpenTestStore(t)
	defer cleanup()
	router := newTestRouter(t, st)

	_, player := doJSON(t, router, http.MethodPost, "/api/accounts/signup", `{"username":"gamer"}`, nil)
	acct := player["account_id"].(string)

	w, _ := doJSON(t, router, http.MethodPost, "/api/games/rps",
		fmt.Sprintf(`{"account_id":%q,"stake_pt":10,"choice":"LIZARD"}`, acct), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad choice = %d, want 400", w.Code)
	}
	w, _ = doJSON(t, router, http.MethodPost, "/api/games/rps",
		fmt.Sprintf(`{"account_id":%q,"stake_pt":99999,"choice":"ROCK"}`, acct), nil)
	if w.Code != http.StatusPaymentRequired {
		t.Fatalf("overdraft = %d, want 402", w.Code)
	}
	w, res := doJSON(t, router, http.MethodPost, "/api/games/rps",
		fmt.Sprintf(`{"account_id":%q,"stake_pt":100,"choice":"ROCK"}`, acct), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("rps = %d body=%s", w.Code, w.Body.String())
	}
	if res["result"] == nil || res["reveal"] == nil {
		t.Fatalf("rps response missing fields: %v", res)
	}
	w, _ = doJSON(t, router, http.MethodPost, "/api/games/ladder",
		fmt.Sprintf(`{"account_id":%q,"stake_pt":10,"picks":{}}`, acct), nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty picks = %d, want 400", w.Code)
	}
	w, _ = doJSON(t, router, http.MethodPost, "/api/games/ladder",
		fmt.Sprintf(`{"account_id":%q,"stake_pt":10,"picks":{"start":"LEFT","lines":3}}`, acct), nil)
	if w.Code != http.StatusOK {
		t.Fatalf("ladder = %d body=%s", w.Code, w.Body.String())
	}
}
