package server

import (
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

// setupRoutes - setups http routes
func (a *API) setupRoutes() {
	// System Health
	a.mux.HandleFunc("GET /health", a.routes.health.HealthCheck)
	a.mux.Handle("GET /metrics", promhttp.Handler())

	// Swagger UI endpoint
	a.mux.HandleFunc("/swagger/", httpSwagger.Handler())

	a.setupAuthRoutes()
	a.setupEmergencyRoutes()
	a.setupChatRoutes()
	a.setupProfileRoutes()

	// WebSocket connection for broadcast events
	a.mux.Handle("GET /ws", a.m.RequireAuth(a.routes.ws.Connect))
}

func (a *API) setupAuthRoutes() {
	a.mux.HandleFunc("POST /auth/register", a.routes.auth.Register)
	a.mux.HandleFunc("POST /auth/login", a.routes.auth.Login)
	a.mux.HandleFunc("POST /auth/forgot-password", a.routes.auth.ForgotPassword)
	a.mux.HandleFunc("POST /auth/reset-password", a.routes.auth.ResetPassword)
}

func (a *API) setupEmergencyRoutes() {
	a.mux.Handle("POST /emergencies", a.m.RequireAuth(a.routes.emergency.Raise))                          // Raise a new emergency
	a.mux.Handle("POST /emergencies/cancel", a.m.RequireAuth(a.routes.emergency.Cancel))                  // Cancel own active emergency
	a.mux.Handle("DELETE /emergencies/{emergency_id}", a.m.RequireAuth(a.routes.emergency.Deactivate))    // Deactivate a specific emergency
	a.mux.Handle("GET /emergencies/active", a.m.RequireAuth(a.routes.emergency.Active))                   // Get own active emergency
	a.mux.Handle("GET /emergencies/nearby", a.m.RequireAuth(a.routes.emergency.Nearby))                   // List nearby active emergencies
}

func (a *API) setupChatRoutes() {
	a.mux.Handle("POST /chat/messages", a.m.RequireAuth(a.routes.chat.Send))                 // Send a chat message
	a.mux.Handle("GET /chat/nearby", a.m.RequireAuth(a.routes.chat.Nearby))                  // List nearby recent messages
	a.mux.Handle("DELETE /chat/messages/{message_id}", a.m.RequireAuth(a.routes.chat.Delete)) // Delete own message
}

func (a *API) setupProfileRoutes() {
	a.mux.Handle("GET /settings", a.m.RequireAuth(a.routes.profile.GetSettings))
	a.mux.Handle("POST /settings", a.m.RequireAuth(a.routes.profile.UpdateSettings))
	a.mux.Handle("POST /location", a.m.RequireAuth(a.routes.profile.UpdateLocation))
	a.mux.Handle("POST /devices/bind", a.m.RequireAuth(a.routes.profile.BindDevice))
	a.mux.Handle("GET /devices/check", a.m.RequireAuth(a.routes.profile.CheckDevice))
}
