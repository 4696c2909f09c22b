package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"storefront-backend/internal/config"
	"storefront-backend/internal/database"
	"storefront-backend/internal/events"
	"storefront-backend/internal/handlers"
	"storefront-backend/internal/images"
	"storefront-backend/internal/ingest"
	"storefront-backend/internal/middleware"
	"storefront-backend/internal/store"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetOutput(os.Stdout)

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	} else {
		logger.SetLevel(logrus.DebugLevel)
	}

	manager := database.NewManager(cfg.MongoURI, cfg.MongoDB, cfg.IsProduction(), logger)

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.WithError(err).Warn("Invalid REDIS_URL, caching disabled")
		} else {
			redisClient = redis.NewClient(opts)
			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			if err := redisClient.Ping(ctx).Err(); err != nil {
				logger.WithError(err).Warn("Redis unreachable, caching disabled")
				redisClient = nil
			} else {
				logger.Info("Connected to Redis")
			}
			cancel()
		}
	}

	publisher := events.NewPublisher(cfg.NATSURL, logger)
	defer publisher.Close()

	var uploader images.Uploader
	if cfg.UploadAPIKey != "" {
		uploader = images.NewHostedUploader(cfg.UploadEndpoint, cfg.UploadAPIKey,
			cfg.UploadPerMin, cfg.UploadBurst, logger)
	} else {
		logger.Info("No image hosting API key configured, drive links resolve to direct-view URLs")
	}

	products := store.NewProductStore(manager, logger, redisClient, store.SeedProducts())
	carousels := store.NewCarouselStore(manager, logger, store.SeedCarousels())
	orders := store.NewOrderStore(manager, logger)
	users := store.NewUserStore(manager, logger)

	engine := ingest.NewEngine(products, uploader, logger)

	productsHandler := handlers.NewProductsHandler(products, publisher, logger)
	carouselsHandler := handlers.NewCarouselsHandler(carousels, logger)
	ordersHandler := handlers.NewOrdersHandler(orders, publisher, logger)
	usersHandler := handlers.NewUsersHandler(users, logger)
	importHandler := handlers.NewImportHandler(engine, publisher, logger)
	healthHandler := handlers.NewHealthHandler(manager)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.CORSOrigins))

	router.GET("/health", healthHandler.Health)

	api := router.Group("/api")
	{
		api.GET("/products", productsHandler.GetProducts)
		api.GET("/products/:id", productsHandler.GetProduct)
		api.POST("/products", productsHandler.CreateProduct)
		api.PUT("/products/:id", productsHandler.UpdateProduct)
		api.DELETE("/products/:id", productsHandler.DeleteProduct)
		api.DELETE("/products", productsHandler.DeleteAllProducts)
		api.DELETE("/products/invalid", productsHandler.DeleteInvalidProducts)

		api.POST("/products/import", importHandler.ImportProducts)
		api.GET("/products/import/template", importHandler.GetImportTemplate)

		api.GET("/carousels", carouselsHandler.GetCarousels)
		api.GET("/carousels/:id", carouselsHandler.GetCarousel)
		api.POST("/carousels", carouselsHandler.CreateCarousel)
		api.PUT("/carousels/:id", carouselsHandler.UpdateCarousel)
		api.DELETE("/carousels/:id", carouselsHandler.DeleteCarousel)
		api.POST("/carousels/:id/slides", carouselsHandler.AddSlide)
		api.PUT("/carousels/:id/slides/reorder", carouselsHandler.ReorderSlides)
		api.PUT("/carousels/:id/slides/:slideId", carouselsHandler.UpdateSlide)
		api.DELETE("/carousels/:id/slides/:slideId", carouselsHandler.DeleteSlide)

		api.GET("/orders", ordersHandler.GetOrders)
		api.GET("/orders/:id", ordersHandler.GetOrder)
		api.POST("/orders", ordersHandler.CreateOrder)
		api.PATCH("/orders/:id/status", ordersHandler.UpdateOrderStatus)
		api.DELETE("/orders/:id", ordersHandler.DeleteOrder)

		api.POST("/users/register", usersHandler.Register)
		api.POST("/users/login", usersHandler.Login)
		api.GET("/users", usersHandler.GetUsers)
		api.GET("/users/:id", usersHandler.GetUser)
		api.PUT("/users/:id", usersHandler.UpdateUser)
		api.DELETE("/users/:id", usersHandler.DeleteUser)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		logger.WithFields(logrus.Fields{
			"port":        cfg.Port,
			"environment": cfg.Environment,
		}).Info("Storefront backend listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Forced shutdown")
	}
	manager.Release(ctx)
	if redisClient != nil {
		_ = redisClient.Close()
	}
	logger.Info("Server stopped")
}
