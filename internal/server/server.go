package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	calendarapi "google.golang.org/api/calendar/v3"

	"github.com/ryyderbros/wellness_server/internal/auth"
	"github.com/ryyderbros/wellness_server/internal/config"
	"github.com/ryyderbros/wellness_server/internal/model"
	"github.com/ryyderbros/wellness_server/internal/service"
)

type Server struct {
	cfg            *config.Config
	logger         *zap.Logger
	authManager    *auth.Manager
	oauth          *oauth2.Config
	userService    *service.UserService
	slotService    *service.SlotService
	bookingService *service.BookingService
	router         *gin.Engine
}

func New(
	cfg *config.Config,
	logger *zap.Logger,
	authManager *auth.Manager,
	userService *service.UserService,
	slotService *service.SlotService,
	bookingService *service.BookingService,
) *Server {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:         cfg,
		logger:      logger,
		authManager: authManager,
		oauth: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Endpoint:     google.Endpoint,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.profile",
				"https://www.googleapis.com/auth/userinfo.email",
				calendarapi.CalendarEventsScope,
			},
		},
		userService:    userService,
		slotService:    slotService,
		bookingService: bookingService,
	}

	s.router = s.buildRouter()

	return s
}

// Router returns the configured gin engine.
func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) buildRouter() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{s.cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	router.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "ryyderbros_wellness API Running")
	})

	router.Static("/uploads", s.cfg.UploadDir)

	// Login flow
	router.GET("/auth/google", s.googleLogin)
	router.GET("/auth/google/callback", s.googleCallback)
	router.POST("/auth/logout", s.logout)

	authed := router.Group("/api", s.authRequired())
	authed.GET("/me", s.me)

	// Client-facing routes
	authed.POST("/bookings", s.requireRole(model.RoleUser, model.RoleTherapist, model.RoleAdmin), s.createBooking)
	authed.GET("/my/bookings", s.requireRole(model.RoleUser, model.RoleTherapist, model.RoleAdmin), s.myBookings)
	authed.GET("/therapists", s.listTherapists)
	authed.GET("/therapists/:id/slots", s.therapistAvailableSlots)

	// Therapist console
	therapist := authed.Group("/therapist", s.requireRole(model.RoleTherapist, model.RoleAdmin))
	therapist.GET("/slots", s.therapistSlots)
	therapist.POST("/slots", s.createSlot)
	therapist.DELETE("/slots/:id", s.deleteSlot)
	therapist.GET("/bookings", s.therapistBookings)
	therapist.GET("/profile", s.getProfile)
	therapist.PUT("/profile", s.updateProfile)
	therapist.POST("/profile/photo", s.uploadPhoto)

	// Admin console
	admin := authed.Group("/admin", s.requireRole(model.RoleAdmin))
	admin.GET("/users", s.adminUsers)
	admin.GET("/therapists", s.adminTherapists)
	admin.GET("/bookings", s.adminBookings)
	admin.PUT("/users/:id/role", s.adminUpdateRole)

	return router
}
