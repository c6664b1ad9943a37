package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vitrina/cart"
	"vitrina/catalog"
	"vitrina/checkout"
	"vitrina/db"
	"vitrina/persist"
	"vitrina/ratelim"
	"vitrina/rdx"
	"vitrina/routes"
	"vitrina/session"

	"github.com/joho/godotenv"
	"github.com/julienschmidt/httprouter"
	"github.com/rs/cors"
)

// Demo-flavored latencies: the storefront simulates a network even though
// everything runs in-process.
const (
	catalogLatency = 1 * time.Second
	authLatency    = 1 * time.Second
	paymentLatency = 3 * time.Second
)

// securityHeaders applies a set of recommended HTTP security headers.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Content-Security-Policy", "frame-ancestors 'none'")
		w.Header().Set("Referrer-Policy", "no-referrer")
		w.Header().Set("Cache-Control", "no-store, no-cache, must-revalidate, private")
		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request method, path, remote address, and duration.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		duration := time.Since(start)
		log.Printf("%s %s from %s – %v", r.Method, r.RequestURI, r.RemoteAddr, duration)
	})
}

// Index is a simple health check handler.
func Index(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	fmt.Fprint(w, "200")
}

func setupRouter(
	rateLimiter *ratelim.RateLimiter,
	catalogStore *catalog.Store,
	cartHandler *cart.Handler,
	sessionStore *session.Store,
	checkoutService *checkout.Service,
) *httprouter.Router {
	router := httprouter.New()
	router.GET("/health", Index)

	routes.AddAuthRoutes(router, sessionStore, rateLimiter)
	routes.AddCatalogRoutes(router, catalogStore)
	routes.AddCartRoutes(router, cartHandler)
	routes.AddCheckoutRoutes(router, checkoutService, rateLimiter)

	return router
}

// catalogProvider prefers a Mongo-backed catalog when MONGO_URI is set,
// falling back to the static seed.
func catalogProvider() catalog.Provider {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		return catalog.NewSeedProvider(catalogLatency)
	}
	if err := db.Connect(uri); err != nil {
		log.Printf("MongoDB unavailable (%v); using seed catalog", err)
		return catalog.NewSeedProvider(catalogLatency)
	}
	log.Println("Catalog source: MongoDB")
	return catalog.NewMongoProvider(db.ProductsCollection)
}

// slotStore prefers Redis for the persistence slots, falling back to an
// in-process store so the demo runs without any servers around it.
func slotStore() persist.Slots {
	rdx.Init()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := rdx.Conn.Ping(ctx).Err(); err != nil {
		log.Printf("Redis unavailable (%v); using in-memory slots", err)
		rdx.Conn = nil
		return persist.NewMemorySlots()
	}
	return persist.NewRedisSlots(rdx.Conn)
}

func main() {
	// load .env if present
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found; using system environment")
	}

	// read port
	port := os.Getenv("PORT")
	if port == "" {
		port = ":8080"
	} else if port[0] != ':' {
		port = ":" + port
	}

	slots := slotStore()

	catalogStore := catalog.NewStore(catalogProvider())
	loadCtx, loadCancel := context.WithTimeout(context.Background(), 15*time.Second)
	if err := catalogStore.Load(loadCtx); err != nil {
		log.Fatalf("❌ Failed to load catalog: %v", err)
	}
	loadCancel()
	log.Printf("Catalog loaded: %d products", len(catalogStore.Products()))

	cartStore := cart.NewStore()
	cartStore.Subscribe(persist.CartSubscriber(slots))

	sessionStore := session.NewStore(slots, authLatency)
	checkoutService := checkout.NewService(cartStore, slots, nil, paymentLatency)
	cartHandler := cart.NewHandler(cartStore, catalogStore, slots)

	rateLimiter := ratelim.NewRateLimiter()
	router := setupRouter(rateLimiter, catalogStore, cartHandler, sessionStore, checkoutService)

	// apply middleware: logging → security headers → CORS → router
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // lock down in production
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(router)

	handler := loggingMiddleware(securityHeaders(corsHandler))

	server := &http.Server{
		Addr:              port,
		Handler:           handler,
		ReadTimeout:       7 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       120 * time.Second,
		ReadHeaderTimeout: 2 * time.Second,
	}

	go func() {
		log.Printf("🚀 Storefront listening on %s", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe error: %v", err)
		}
	}()

	// wait for interrupt or SIGTERM
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	log.Println("🛑 Shutdown signal received; shutting down gracefully...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Graceful shutdown failed: %v", err)
	}

	if db.Client != nil {
		_ = db.Client.Disconnect(context.Background())
	}

	log.Println("✅ Server stopped cleanly")
}
