package routes

import (
	"log"

	"mylibrary/internal/adapters/cache"
	"mylibrary/internal/adapters/http/handlers"
	"mylibrary/internal/adapters/persistence/repositories"
	"mylibrary/internal/config"
	"mylibrary/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Setup configures all routes for the application and wires the dependency
// graph by hand: stores, transaction manager, services, handlers.
func Setup(app *fiber.App, db *gorm.DB, rdb *redis.Client, cfg *config.Config) *services.StatsService {
	// Stores
	bookRepo := repositories.NewBookRepository(db)
	userRepo := repositories.NewUserRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	txManager := repositories.NewTxManager(db)

	// Services
	var bookService services.BookService = services.NewBookService(bookRepo)
	if rdb != nil {
		// Read-side decorator only; the loan service below always reads
		// through to the store under lock
		bookService = services.NewCachedBookService(bookService, cache.NewRedisCache(rdb), cfg.Cache.TTL)
		log.Println("✅ Book read cache enabled")
	}
	userService := services.NewUserService(userRepo)
	loanService := services.NewLoanService(loanRepo, bookRepo, userRepo, txManager)
	statsService := services.NewStatsService(loanRepo)

	// Handlers
	healthHandler := handlers.NewHealthHandler(rdb)
	bookHandler := handlers.NewBookHandler(bookService)
	userHandler := handlers.NewUserHandler(userService)
	loanHandler := handlers.NewLoanHandler(loanService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Library API group
	library := app.Group("/library")

	bookRoutes := library.Group("/books")
	bookRoutes.Get("/", bookHandler.ListBooks)
	bookRoutes.Post("/", bookHandler.AddBook)
	bookRoutes.Get("/:id", bookHandler.GetBook)
	bookRoutes.Delete("/:id", bookHandler.DeleteBook)

	userRoutes := library.Group("/users")
	userRoutes.Get("/", userHandler.ListUsers)
	userRoutes.Post("/", userHandler.AddUser)
	userRoutes.Get("/:id", userHandler.GetUser)
	userRoutes.Delete("/:id", userHandler.DeleteUser)

	loanRoutes := library.Group("/loans")
	loanRoutes.Get("/", loanHandler.ListLoans)
	loanRoutes.Post("/", loanHandler.AddLoan)
	loanRoutes.Post("/:id/refund", loanHandler.RefundLoan)

	return statsService
}
