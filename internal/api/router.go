package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/hotproperties/hot-properties/internal/api/handler"
	"github.com/hotproperties/hot-properties/internal/api/middleware"
	"github.com/hotproperties/hot-properties/internal/core/domain"
	"github.com/hotproperties/hot-properties/internal/core/ports"
)

// Dependencies carries everything the router wires together.
type Dependencies struct {
	Users      ports.UserRepository
	Tokens     ports.TokenCodec
	Auth       ports.AuthService
	Properties ports.PropertyService
	Favorites  ports.FavoriteService
	Messages   ports.MessageService
	Accounts   ports.UserService
	RateGate   ports.RateGate
	Mongo      *mongo.Database
	Redis      *redis.Client
	Logger     zerolog.Logger
	CookieTTL  time.Duration
}

// accessPolicy is the declarative route permission table, evaluated top to
// bottom with first-match-wins. Specific patterns are declared before the
// broad ones that would shadow them, and the final "/**" sentinel guarantees
// every path resolves to a decision.
func accessPolicy() []middleware.RoutePermission {
	return []middleware.RoutePermission{
		middleware.PermitAll("/login"),
		middleware.PermitAll("/register"),

		middleware.Authenticated("/profile"),
		middleware.Authenticated("/logout"),
		middleware.Authenticated("/dashboard"),
		middleware.Authenticated("/editprofile"),

		// agent specific
		middleware.AnyRole("/properties/add", domain.RoleAgent),
		middleware.AnyRole("/properties/edit/**", domain.RoleAgent),
		middleware.AnyRole("/properties/delete/**", domain.RoleAgent),
		middleware.AnyRole("/properties/manage/**", domain.RoleAgent),
		middleware.AnyRole("/properties/*/images/*/delete", domain.RoleAgent),
		middleware.AnyRole("/messages/agent", domain.RoleAgent),
		middleware.AnyRole("/messages/view/**", domain.RoleAgent),
		middleware.AnyRole("/messages/reply/**", domain.RoleAgent),

		// buyer specific
		middleware.AnyRole("/properties/view/**", domain.RoleBuyer),
		middleware.AnyRole("/properties/list", domain.RoleBuyer),
		middleware.AnyRole("/favorites/**", domain.RoleBuyer),
		middleware.AnyRole("/messages/buyer", domain.RoleBuyer),
		middleware.AnyRole("/messages/send", domain.RoleBuyer),

		// admin specific
		middleware.AnyRole("/agents/**", domain.RoleAdmin),

		// public assets and operational endpoints
		middleware.PermitAll("/"),
		middleware.PermitAll("/index"),
		middleware.PermitAll("/css/**"),
		middleware.PermitAll("/js/**"),
		middleware.PermitAll("/images/**"),
		middleware.PermitAll("/health/**"),
		middleware.PermitAll("/metrics"),
		middleware.PermitAll("/swagger/**"),

		middleware.PermitAll("/**"),
	}
}

// NewRouter builds the Echo instance with the full middleware chain. Order is
// load-bearing: the rate gate runs before authentication so floods are shed
// before any signature or credential work, and authorization runs after
// authentication so the gate sees the resolved principal.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("hotproperties"))
	e.Use(middleware.RateLimit(deps.RateGate, deps.Logger))
	e.Use(middleware.Authenticate(deps.Tokens, deps.Users, middleware.DefaultExemptPrefixes, deps.Logger))
	e.Use(middleware.Authorize(accessPolicy(), deps.Logger))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.CookieTTL)
	profileHandler := handler.NewProfileHandler(deps.Accounts)
	propertyHandler := handler.NewPropertyHandler(deps.Properties)
	favoriteHandler := handler.NewFavoriteHandler(deps.Favorites)
	messageHandler := handler.NewMessageHandler(deps.Messages)
	agentHandler := handler.NewAgentHandler(deps.Accounts)

	// --- Auth routes ---
	e.POST("/login", authHandler.Login)
	e.GET("/logout", authHandler.Logout)
	e.POST("/register", authHandler.Register)

	// --- Profile routes ---
	e.GET("/profile", profileHandler.Profile)
	e.POST("/editprofile", profileHandler.EditProfile)
	e.GET("/dashboard", profileHandler.Dashboard)

	// --- Property routes ---
	e.GET("/properties/list", propertyHandler.List)
	e.GET("/properties/view/:id", propertyHandler.View)
	e.POST("/properties/add", propertyHandler.Add)
	e.POST("/properties/edit/:id", propertyHandler.Edit)
	e.POST("/properties/delete/:id", propertyHandler.Delete)
	e.GET("/properties/manage", propertyHandler.Manage)
	e.POST("/properties/:propertyID/images/:imageID/delete", propertyHandler.DeleteImage)

	// --- Favorite routes ---
	e.GET("/favorites", favoriteHandler.List)
	e.POST("/favorites/add/:propertyID", favoriteHandler.Add)
	e.POST("/favorites/remove/:propertyID", favoriteHandler.Remove)

	// --- Message routes ---
	e.POST("/messages/send", messageHandler.Send)
	e.GET("/messages/buyer", messageHandler.BuyerInbox)
	e.GET("/messages/agent", messageHandler.AgentInbox)
	e.GET("/messages/view/:id", messageHandler.View)
	e.POST("/messages/reply/:id", messageHandler.Reply)

	// --- Agent administration ---
	e.GET("/agents", agentHandler.List)
	e.POST("/agents/create", agentHandler.Create)
	e.POST("/agents/delete", agentHandler.Delete)

	// --- Operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
