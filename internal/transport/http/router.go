package httptransport

import (
	"expvar"
	"fmt"
	"net/http"
	"sort"
	"strings"

	apppublic "voice-arcade/internal/app/public"
	"voice-arcade/internal/betting"
	"voice-arcade/internal/config"
	"voice-arcade/internal/ledger"
	"voice-arcade/internal/market"
	"voice-arcade/internal/minigame"
	"voice-arcade/internal/store"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
)

func NewRouter(st *store.Store, led *ledger.Ledger, cfg config.ServerConfig) *chi.Mux {
	publicSvc := apppublic.NewService(st)
	bettingSvc := betting.NewService(st, led, cfg.BetFeeRate)
	gameSvc := minigame.NewService(st, led, cfg.GameFeeRate)
	marketSvc := market.NewService(st, led, market.Policy{OwnerSharePct: cfg.OwnerSharePct, SelfUseFree: cfg.SelfUseFree})

	publicHandlers := NewPublicHandlers(publicSvc)
	playerHandlers := NewPlayerHandlers(st, led, bettingSvc, gameSvc, marketSvc, cfg)
	adminHandlers := NewAdminHandlers(st, led, bettingSvc)

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.Recoverer)
	r.Use(chimw.RealIP)

	r.With(APILogMiddleware()).Get("/healthz", adminHandlers.Health())

	r.Route("/api", func(r chi.Router) {
		r.Use(APILogMiddleware())
		r.Get("/public/profile", publicHandlers.Profile())
		r.Get("/public/leaderboard", publicHandlers.Leaderboard())
		r.Get("/public/events", publicHandlers.Events())
		r.Get("/public/listings", publicHandlers.Listings())
		r.Get("/accounts/{account_id}/ledger", publicHandlers.AccountLedger())
		r.Get("/accounts/{account_id}/wagers", publicHandlers.AccountWagers())
		r.Get("/accounts/{account_id}/usage", publicHandlers.AccountUsage())

		r.Post("/accounts/signup", playerHandlers.Signup())
		r.Post("/events/{event_id}/wagers", playerHandlers.PlaceWager())
		r.Post("/games/rps", playerHandlers.PlayRPS())
		r.Post("/games/odd-even", playerHandlers.PlayOddEven())
		r.Post("/games/ladder", playerHandlers.PlayLadder())
		r.Post("/listings", playerHandlers.CreateListing())
		r.Post("/listings/{listing_id}/purchase", playerHandlers.PurchaseListing())
		r.Post("/listings/{listing_id}/speak", playerHandlers.Speak())

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminAPIKey))
			r.Get("/admin/accounts", adminHandlers.Accounts())
			r.Get("/admin/ledger", adminHandlers.Ledger())
			r.Post("/admin/charge", adminHandlers.Charge())
			r.Post("/admin/events", adminHandlers.CreateEvent())
			r.Post("/admin/events/{event_id}/settle", adminHandlers.SettleEvent())

			r.Route("/admin/debug", func(r chi.Router) {
				r.Use(BodyCaptureMiddleware(4096))
				r.Get("/vars", expvar.Handler().ServeHTTP)
			})
		})
	})

	return r
}

func LogRoutes(r chi.Router) {
	type routeDef struct {
		Method string
		Path   string
	}
	routes := make([]routeDef, 0, 64)
	err := chi.Walk(r, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		routes = append(routes, routeDef{Method: method, Path: route})
		return nil
	})
	if err != nil {
		log.Error().Err(err).Msg("walk routes failed")
		return
	}
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path == routes[j].Path {
			return routes[i].Method < routes[j].Method
		}
		return routes[i].Path < routes[j].Path
	})
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Registered routes (%d):\n", len(routes)))
	for _, rt := range routes {
		b.WriteString(fmt.Sprintf("  %-6s %s\n", rt.Method, rt.Path))
	}
	fmt.Print(b.String())
}
