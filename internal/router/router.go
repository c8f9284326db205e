package router

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/delicato-app/restaurant-service/internal/api"
	"github.com/delicato-app/restaurant-service/internal/api/handler"
	"github.com/delicato-app/restaurant-service/internal/config"
	"github.com/delicato-app/restaurant-service/internal/db"
	"github.com/delicato-app/restaurant-service/internal/db/repository"
	"github.com/delicato-app/restaurant-service/internal/middleware"
	"github.com/delicato-app/restaurant-service/internal/models"
	"github.com/delicato-app/restaurant-service/internal/service"
	"github.com/delicato-app/restaurant-service/internal/websockets"
)

// Services bundles the service layer handed to the router.
type Services struct {
	Auth    *service.AuthService
	Orders  *service.OrderService
	Users   *service.UserService
	Loyalty *service.LoyaltyService
	Portal  *service.PortalService
}

// Router handles HTTP routing
type Router struct {
	mux      *http.ServeMux
	cfg      *config.Config
	postgres *db.Postgres
	auth     *service.AuthService
	hub      *websockets.Hub
	upgrader websocket.Upgrader
}

// New creates a new router
func New(cfg *config.Config, postgres *db.Postgres, repos *repository.Repositories, services Services, hub *websockets.Hub) *Router {
	r := &Router{
		mux:      http.NewServeMux(),
		cfg:      cfg,
		postgres: postgres,
		auth:     services.Auth,
		hub:      hub,
		upgrader: websockets.NewUpgrader(cfg.CORS.AllowedOrigins),
	}

	r.setupRoutes(repos, services)

	return r
}

// Handler returns the router wrapped in the shared middleware chain.
func (r *Router) Handler() http.Handler {
	return middleware.SecurityHeaders(
		middleware.CORS(r.cfg.CORS.AllowedOrigins)(
			middleware.Logger(
				middleware.Session(r.auth)(
					r.mux,
				),
			),
		),
	)
}

// ServeHTTP implements the http.Handler interface
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.Handler().ServeHTTP(w, req)
}

// setupRoutes sets up the routes for the router
func (r *Router) setupRoutes(repos *repository.Repositories, services Services) {
	authHandler := handler.NewAuthHandler(services.Auth, r.cfg.Server)
	menuHandler := handler.NewMenuHandler(repos.Menu)
	orderHandler := handler.NewOrderHandler(services.Orders, r.hub)
	reservationHandler := handler.NewReservationHandler(repos.Reservation)
	customerHandler := handler.NewCustomerHandler(services.Portal)
	portalHandler := handler.NewPortalHandler(services.Portal)
	userHandler := handler.NewUserHandler(services.Users)
	settingsHandler := handler.NewSettingsHandler(services.Loyalty)

	apiMux := http.NewServeMux()

	// Open routes; gates sit inside the handlers where a route mixes
	// public and manager access.
	apiMux.HandleFunc("/health", r.handleHealth)
	apiMux.HandleFunc("/auth/", authHandler.HandleAuth)
	apiMux.HandleFunc("/menu", menuHandler.HandleMenu)
	apiMux.HandleFunc("/menu/", menuHandler.HandleMenu)
	apiMux.HandleFunc("/orders", orderHandler.HandleOrders)
	apiMux.HandleFunc("/orders/", orderHandler.HandleOrders)
	apiMux.HandleFunc("/ws", r.handleWebSocket)

	// Manager routes
	apiMux.Handle("/reservations", middleware.RequireManager(http.HandlerFunc(reservationHandler.HandleReservations)))
	apiMux.Handle("/reservations/", middleware.RequireManager(http.HandlerFunc(reservationHandler.HandleReservations)))
	apiMux.Handle("/customers/", middleware.RequireManager(http.HandlerFunc(customerHandler.HandleCustomers)))
	apiMux.Handle("/users", middleware.RequireManager(http.HandlerFunc(userHandler.HandleUsers)))
	apiMux.Handle("/users/", middleware.RequireManager(http.HandlerFunc(userHandler.HandleUsers)))
	apiMux.Handle("/settings/", middleware.RequireManager(http.HandlerFunc(settingsHandler.HandleSettings)))

	// Customer routes
	apiMux.Handle("/customer-portal/dashboard", middleware.RequireCustomer(http.HandlerFunc(portalHandler.HandleDashboard)))

	// Anything else under /api is a JSON 404.
	apiMux.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		api.NotFound(w)
	})

	r.mux.Handle("/api/", http.StripPrefix("/api", apiMux))
}

// handleHealth reports liveness with a database ping.
func (r *Router) handleHealth(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		api.NotFound(w)
		return
	}

	if err := r.postgres.HealthCheck(req.Context()); err != nil {
		api.Error(w, http.StatusServiceUnavailable, "Database unavailable")
		return
	}

	api.JSON(w, http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleWebSocket upgrades kitchen display connections. Any staff or manager
// session may subscribe.
func (r *Router) handleWebSocket(w http.ResponseWriter, req *http.Request) {
	claims := middleware.GetSession(req.Context())
	if claims == nil || (claims.Role != models.RoleManager && claims.Role != models.RoleStaff) {
		api.Error(w, http.StatusUnauthorized, "Authentication required")
		return
	}

	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		// The upgrader has already written the error response.
		return
	}

	websockets.ServeWs(r.hub, conn, claims.UserID)
}
