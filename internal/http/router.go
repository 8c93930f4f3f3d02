// Package http exposes the storefront over a JSON API.
package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"github.com/tanzeelaayaz69/kashcart/internal/account"
	"github.com/tanzeelaayaz69/kashcart/internal/cart"
	"github.com/tanzeelaayaz69/kashcart/internal/catalog"
	"github.com/tanzeelaayaz69/kashcart/internal/checkout"
	"github.com/tanzeelaayaz69/kashcart/internal/order"
)

type Deps struct {
	Catalog  *catalog.Store
	Sessions *cart.Sessions
	Orders   *order.Service
	Accounts *account.Service
	Checkout *checkout.Service
	Log      zerolog.Logger
	Clock    clockwork.Clock

	RequestTimeout   time.Duration
	TrackingInterval time.Duration
	RiderInterval    time.Duration
	RateLimitRPS     float64
}

// NewRouter builds the API. Catalog routes need no session; everything else
// under /api/v1 requires X-Session-ID.
func NewRouter(d Deps) http.Handler {
	if d.RequestTimeout <= 0 {
		d.RequestTimeout = 30 * time.Second
	}
	catalogHandler := NewCatalogHandler(d.Catalog)
	cartHandler := NewCartHandler(d.Sessions, d.Checkout)
	checkoutHandler := NewCheckoutHandler(d.Sessions, d.Checkout, d.RequestTimeout)
	ordersHandler := NewOrdersHandler(d.Orders, d.RequestTimeout, d.Clock, d.TrackingInterval, d.RiderInterval)
	accountHandler := NewAccountHandler(d.Accounts, d.RequestTimeout)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestIDMiddleware)
	r.Use(RequestLogger(d.Log))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if d.RateLimitRPS > 0 {
		r.Use(NewRateLimiter(d.RateLimitRPS).Middleware)
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/categories", catalogHandler.ListCategories)
		r.Get("/categories/{category_id}/products", catalogHandler.ListCategoryProducts)
		r.Get("/marts", catalogHandler.ListMarts)
		r.Get("/marts/{mart_id}", catalogHandler.GetMart)
		r.Get("/marts/{mart_id}/products", catalogHandler.ListMartProducts)
		r.Get("/products/search", catalogHandler.SearchProducts)

		r.Group(func(r chi.Router) {
			r.Use(SessionMiddleware)

			// tracking streams outlive the request timeout
			r.Get("/orders/{order_id}/tracking", ordersHandler.TrackOrder)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Timeout(d.RequestTimeout))

				r.Route("/cart", func(r chi.Router) {
					r.Get("/", cartHandler.GetCart)
					r.Delete("/", cartHandler.ClearCart)
					r.Get("/quote", cartHandler.GetQuote)
					r.Post("/items", cartHandler.AddItem)
					r.Patch("/items/{product_id}", cartHandler.UpdateQuantity)
					r.Delete("/items/{product_id}", cartHandler.RemoveItem)
					r.Put("/items/{product_id}/recurring", cartHandler.SetRecurring)
				})

				r.Post("/checkout", checkoutHandler.Checkout)

				r.Get("/orders", ordersHandler.ListOrders)
				r.Get("/orders/{order_id}", ordersHandler.GetOrder)

				r.Post("/auth/login", accountHandler.Login)
				r.Get("/auth/check", accountHandler.CheckUser)
				r.Post("/auth/logout", accountHandler.Logout)

				r.Get("/me", accountHandler.Me)
				r.Post("/me/addresses", accountHandler.AddAddress)
				r.Delete("/me/addresses/{address_id}", accountHandler.RemoveAddress)
			})
		})
	})

	return otelhttp.NewHandler(r, "kashcart",
		otelhttp.WithFilter(func(r *http.Request) bool {
			return r.URL.Path != "/health"
		}),
	)
}
