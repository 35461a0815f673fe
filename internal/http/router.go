package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	accounthttp "github.com/avolkov/tinycrm/internal/http/account"
	clienthttp "github.com/avolkov/tinycrm/internal/http/client"
	gcalhttp "github.com/avolkov/tinycrm/internal/http/gcal"
	interactionhttp "github.com/avolkov/tinycrm/internal/http/interaction"
	taghttp "github.com/avolkov/tinycrm/internal/http/tag"
	timeentryhttp "github.com/avolkov/tinycrm/internal/http/timeentry"
	trackerhttp "github.com/avolkov/tinycrm/internal/http/tracker"
	transactionhttp "github.com/avolkov/tinycrm/internal/http/transaction"
)

func New(
	auth *Authenticator,
	frontendOrigin string,
	accounts *accounthttp.Handler,
	clients *clienthttp.Handler,
	tags *taghttp.Handler,
	interactions *interactionhttp.Handler,
	transactions *transactionhttp.Handler,
	timeEntries *timeentryhttp.Handler,
	tracker *trackerhttp.Handler,
	calendar *gcalhttp.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	if frontendOrigin != "" {
		router.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{frontendOrigin},
			AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			AllowCredentials: true,
		}))
	}

	router.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			accounts.Routes(r)
		})

		// The provider's redirect carries state+code, not our credentials.
		r.Get("/calendar/auth/callback", calendar.Callback)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Route("/clients", clients.Routes)
			r.Route("/tags", tags.Routes)
			r.Route("/interactions", interactions.Routes)
			r.Route("/transactions", transactions.Routes)
			r.Route("/time-entries", timeEntries.Routes)
			r.Route("/tracker", tracker.Routes)
			r.Route("/calendar", calendar.Routes)

			r.Get("/finance/summary", transactions.Summary)
			r.Get("/google/contacts", calendar.Contacts)
		})
	})

	return router
}
