package routes

import (
	"vitrina/cart"
	"vitrina/catalog"
	"vitrina/checkout"
	"vitrina/middleware"
	"vitrina/ratelim"
	"vitrina/session"

	"github.com/julienschmidt/httprouter"
)

func AddAuthRoutes(router *httprouter.Router, s *session.Store, rl *ratelim.RateLimiter) {
	router.POST("/api/auth/register", rl.Limit(s.RegisterHandler))
	router.POST("/api/auth/login", rl.Limit(s.LoginHandler))
	router.POST("/api/auth/logout", middleware.Authenticate(s.LogoutHandler))
	router.GET("/api/auth/session", middleware.Authenticate(s.GetSessionHandler))
}

// Catalog routes are public; OptionalAuth attaches the caller's identity when
// a token is present so the handlers can personalize without requiring one.
func AddCatalogRoutes(router *httprouter.Router, c *catalog.Store) {
	router.GET("/api/catalog/products", middleware.OptionalAuth(c.ListProducts))
	router.GET("/api/catalog/products/:productid", middleware.OptionalAuth(c.GetProduct))
	router.POST("/api/catalog/filter", middleware.OptionalAuth(c.PatchFilter))
	router.POST("/api/catalog/reload", middleware.OptionalAuth(c.Reload))
}

func AddCartRoutes(router *httprouter.Router, h *cart.Handler) {
	router.GET("/api/cart", middleware.Authenticate(h.GetCart))
	router.GET("/api/cart/totals", middleware.Authenticate(h.GetTotals))
	router.POST("/api/cart/items", middleware.Authenticate(h.AddItem))
	router.PUT("/api/cart/items/:productid", middleware.Authenticate(h.SetQuantity))
	router.DELETE("/api/cart/items/:productid", middleware.Authenticate(h.RemoveItem))
	router.DELETE("/api/cart", middleware.Authenticate(h.ClearCart))
}

func AddCheckoutRoutes(router *httprouter.Router, s *checkout.Service, rl *ratelim.RateLimiter) {
	router.POST("/api/checkout/order", rl.Limit(middleware.Authenticate(s.PlaceOrderHandler)))
	router.POST("/api/payment/:orderid", rl.Limit(middleware.Authenticate(s.PayHandler)))
	router.POST("/api/payment/:orderid/retry", rl.Limit(middleware.Authenticate(s.PayHandler)))
	router.GET("/api/orders/:orderid", middleware.Authenticate(s.GetOrderHandler))
	router.GET("/api/orders/:orderid/receipt", middleware.Authenticate(s.ReceiptHandler))
}
