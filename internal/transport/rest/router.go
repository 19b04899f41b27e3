package rest

import (
	"net/http"
	"os"

	"github.com/gorilla/mux"

	"spicysweet/internal/service"
	"spicysweet/internal/transport/rest/handler"
	"spicysweet/internal/transport/rest/middleware"
	"spicysweet/internal/transport/ws"
)

// Container holds all dependencies for the router
type Container struct {
	AuthService      *service.AuthService
	SessionService   *service.SessionService
	GeneratorService *service.GeneratorService
	WSHub            *ws.Hub
}

// NewRouter creates the API router with all endpoints
func NewRouter(c *Container) http.Handler {
	r := mux.NewRouter()

	sessionHandler := handler.NewSessionHandler(c.SessionService, c.WSHub)
	phaseHandler := handler.NewPhaseHandler(c.SessionService, c.GeneratorService)
	generationHandler := handler.NewGenerationHandler(c.GeneratorService)
	wsHandler := ws.NewHandler(c.WSHub, c.AuthService, c.SessionService)

	authMW := middleware.NewAuthMiddleware(c.AuthService)

	// CORS middleware (apply first)
	r.Use(corsMiddleware)

	v1 := r.PathPrefix("/v1").Subrouter()

	// Public routes
	v1.HandleFunc("/sessions", sessionHandler.Create).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{code}", sessionHandler.Get).Methods("GET", "OPTIONS")
	v1.HandleFunc("/sessions/{code}/join", sessionHandler.Join).Methods("POST", "OPTIONS")
	v1.HandleFunc("/sessions/{code}/history", sessionHandler.History).Methods("GET", "OPTIONS")

	// WebSocket route (token optional; spectators read only)
	v1.HandleFunc("/ws/sessions/{code}", wsHandler.SessionWS).Methods("GET")

	// Health check
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	}).Methods("GET")

	// Player routes (require a session-scoped token; whether the action
	// is allowed right now is decided inside the store transaction)
	playerRoutes := v1.NewRoute().Subrouter()
	playerRoutes.Use(authMW.RequirePlayer)

	playerRoutes.HandleFunc("/sessions/{code}", sessionHandler.Teardown).Methods("DELETE", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/team", sessionHandler.SetTeam).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/profile", sessionHandler.UpdateProfile).Methods("PUT", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/start", sessionHandler.Start).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/advance", sessionHandler.Advance).Methods("POST", "OPTIONS")

	playerRoutes.HandleFunc("/sessions/{code}/generate", generationHandler.Generate).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/generate/extend", generationHandler.Extend).Methods("POST", "OPTIONS")

	playerRoutes.HandleFunc("/sessions/{code}/phase1/reading", phaseHandler.RapidReading).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase1/answering", phaseHandler.RapidAnswering).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase1/answer", phaseHandler.RapidAnswer).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase1/resolve", phaseHandler.RapidResolve).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase1/next", phaseHandler.RapidNext).Methods("POST", "OPTIONS")

	playerRoutes.HandleFunc("/sessions/{code}/phase2/reading", phaseHandler.SortReading).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase2/answer", phaseHandler.SortAnswer).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase2/check", phaseHandler.SortCheck).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase2/next", phaseHandler.SortNext).Methods("POST", "OPTIONS")

	playerRoutes.HandleFunc("/sessions/{code}/phase3/select", phaseHandler.MenuSelect).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase3/advance", phaseHandler.MenuAdvance).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase3/finish", phaseHandler.MenuFinish).Methods("POST", "OPTIONS")

	playerRoutes.HandleFunc("/sessions/{code}/phase4/buzz", phaseHandler.Buzz).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase4/resolve", phaseHandler.BuzzResolve).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase4/timeout", phaseHandler.BuzzTimeout).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase4/next", phaseHandler.BuzzNext).Methods("POST", "OPTIONS")

	playerRoutes.HandleFunc("/sessions/{code}/phase5/selection", phaseHandler.MemorySelection).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase5/claim", phaseHandler.MemoryClaim).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase5/memorize", phaseHandler.MemoryStart).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase5/memorize/next", phaseHandler.MemoryAdvance).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase5/answer", phaseHandler.MemoryAnswer).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase5/validate", phaseHandler.MemoryValidate).Methods("POST", "OPTIONS")
	playerRoutes.HandleFunc("/sessions/{code}/phase5/finish", phaseHandler.MemoryFinish).Methods("POST", "OPTIONS")

	return r
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		allowedOrigins := os.Getenv("CORS_ALLOWED_ORIGINS")
		if allowedOrigins == "" {
			allowedOrigins = "*"
		}

		allowedMethods := os.Getenv("CORS_ALLOWED_METHODS")
		if allowedMethods == "" {
			allowedMethods = "GET, POST, PUT, DELETE, OPTIONS"
		}

		allowedHeaders := os.Getenv("CORS_ALLOWED_HEADERS")
		if allowedHeaders == "" {
			allowedHeaders = "Content-Type, Authorization"
		}

		w.Header().Set("Access-Control-Allow-Origin", allowedOrigins)
		w.Header().Set("Access-Control-Allow-Methods", allowedMethods)
		w.Header().Set("Access-Control-Allow-Headers", allowedHeaders)

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
