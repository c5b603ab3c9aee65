package main

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberLogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/swiftbus/swiftbus-backend/internal/config"
	"github.com/swiftbus/swiftbus-backend/internal/handler"
	"github.com/swiftbus/swiftbus-backend/internal/middleware"
	"github.com/swiftbus/swiftbus-backend/internal/repository"
	"github.com/swiftbus/swiftbus-backend/internal/service"
	"github.com/swiftbus/swiftbus-backend/pkg/database"
	"github.com/swiftbus/swiftbus-backend/pkg/email"
	"github.com/swiftbus/swiftbus-backend/pkg/logger"
	"github.com/swiftbus/swiftbus-backend/pkg/payment"
	"github.com/swiftbus/swiftbus-backend/pkg/storage"
	"github.com/swiftbus/swiftbus-backend/pkg/ticket"
	"github.com/swiftbus/swiftbus-backend/pkg/utils"
)

func main() {
	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	cfg := config.LoadConfig()

	appLogger := logger.New()
	defer appLogger.Sync()

	// Initialize database (runs migrations and seeds the admin account)
	db := database.NewDatabase(cfg)

	// Repositories
	userRepo := repository.NewUserRepository(db)
	travelRepo := repository.NewTravelRepository(db)
	bookingRepo := repository.NewBookingRepository(db)

	// Ticket storage
	r2Storage, err := storage.NewR2Storage(cfg)
	if err != nil {
		log.Fatal("Failed to initialize R2 storage:", err)
	}
	ticketService := ticket.NewService(r2Storage, cfg.FrontendURL+"/bookings")

	// Email service
	emailService := email.NewEmailService(appLogger)

	// Stripe service
	stripeService := payment.NewStripeService(cfg.Stripe.SecretKey, cfg.FrontendURL)

	// Services
	authService := service.NewAuthService(userRepo, emailService)
	userService := service.NewUserService(userRepo)
	travelService := service.NewTravelService(travelRepo)
	bookingService := service.NewBookingService(bookingRepo)
	paymentService := service.NewPaymentService(
		stripeService,
		travelRepo,
		bookingRepo,
		userRepo,
		emailService,
		ticketService,
		appLogger,
	)

	validator := utils.NewValidator()

	// Handlers
	authHandler := handler.NewAuthHandler(authService, validator)
	userHandler := handler.NewUserHandler(userService, validator)
	travelHandler := handler.NewTravelHandler(travelService, validator)
	bookingHandler := handler.NewBookingHandler(bookingService)
	paymentHandler := handler.NewPaymentHandler(paymentService, validator)

	// Router
	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.FrontendURL,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE",
		AllowCredentials: true,
	}))
	app.Use(fiberLogger.New())
	app.Use(limiter.New(limiter.Config{
		Max:        20,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	api := app.Group("/api")

	// Public routes
	auth := api.Group("/auth")
	auth.Post("/register", authHandler.Register)
	auth.Post("/login", authHandler.Login)

	api.Get("/travels", travelHandler.GetTravels)
	api.Get("/travels/:id", travelHandler.GetTravel)

	// Protected routes
	api.Use(middleware.AuthMiddleware())
	{
		user := api.Group("/user")
		user.Get("/profile", userHandler.GetMyProfile)
		user.Put("/profile", userHandler.UpdateProfile)
		user.Post("/change-password", userHandler.ChangePassword)

		bookings := api.Group("/bookings")
		bookings.Get("/", bookingHandler.GetMyBookings)

		payments := api.Group("/payments")
		payments.Post("/checkout", paymentHandler.CreateCheckoutSession)
		payments.Post("/confirm", paymentHandler.ConfirmPayment)

		// Admin panel routes
		admin := api.Group("/admin", middleware.AdminMiddleware())

		admin.Post("/travels", travelHandler.CreateTravel)
		admin.Put("/travels/:id", travelHandler.UpdateTravel)
		admin.Delete("/travels/:id", travelHandler.DeleteTravel)

		admin.Get("/bookings", bookingHandler.GetAllBookings)
		admin.Get("/bookings/user/:userId", bookingHandler.GetUserBookings)
		admin.Delete("/bookings/:id", bookingHandler.DeleteBooking)

		admin.Get("/users", userHandler.GetAllUsers)
		admin.Get("/users/:id", userHandler.GetUser)
		admin.Post("/users", userHandler.CreateUser)
		admin.Put("/users/:id", userHandler.UpdateUser)
		admin.Delete("/users/:id", userHandler.DeleteUser)
	}

	appLogger.Info("Starting server", zap.String("port", cfg.Port))
	log.Fatal(app.Listen(":" + cfg.Port))
}
