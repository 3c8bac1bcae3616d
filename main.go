package main

import (
	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"

	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handlers"
	"backend/internal/middleware"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})

	config.Load()

	client, err := database.Connect(config.AppEnv.MongoURI)
	if err != nil {
		log.Fatal(err)
	}

	db := client.Database(config.AppEnv.DBName)

	if err := database.EnsurePizzaIndexes(db); err != nil {
		log.WithError(err).Warn("pizza index warning")
	}
	if err := database.EnsureUserIndexes(db); err != nil {
		log.WithError(err).Warn("user index warning")
	}
	if err := database.EnsureOrderIndexes(db); err != nil {
		log.WithError(err).Warn("order index warning")
	}
	if err := database.EnsureMessageIndexes(db); err != nil {
		log.WithError(err).Warn("message index warning")
	}

	secret := config.AppEnv.JWTSecret
	ttl := config.AppEnv.AccessTokenTTL
	uploadDir := config.AppEnv.UploadDir

	r := gin.Default()
	r.Static("/public", uploadDir)

	r.GET("/", handlers.APIIndex())
	r.GET("/health", handlers.Health())
	r.NoRoute(handlers.NotFound())

	users := r.Group("/users")
	{
		users.POST("/register", handlers.Register(db, secret, ttl))
		users.POST("/login", handlers.Login(db, secret, ttl))
		users.GET("/me", middleware.UserAuth(secret), handlers.GetMe(db))
	}

	pizzas := r.Group("/pizzas")
	{
		pizzas.GET("", handlers.GetAllPizzas(db))
		pizzas.GET("/popular", handlers.GetPopularPizzas(db))
		pizzas.GET("/:id", handlers.GetPizzaByID(db))

		pizzas.POST("/createPizza", middleware.AdminAuth(secret), handlers.CreatePizza(db, uploadDir))
		pizzas.PUT("/:id", middleware.AdminAuth(secret), handlers.UpdatePizza(db, uploadDir))
		pizzas.DELETE("/:id", middleware.AdminAuth(secret), handlers.DeletePizza(db, uploadDir))
		pizzas.PATCH("/:id/quantity", middleware.AdminAuth(secret), handlers.UpdatePizzaQuantity(db))
	}

	orders := r.Group("/orders")
	{
		orders.POST("", middleware.UserAuth(secret), handlers.CreateOrder(db))
		orders.GET("/my-orders", middleware.UserAuth(secret), handlers.GetUserOrders(db))
		orders.GET("/:id", middleware.UserAuth(secret), handlers.GetOrderByID(db))
		orders.PATCH("/:id/cancel", middleware.UserAuth(secret), handlers.CancelOrder(db))

		orders.GET("", middleware.AdminAuth(secret), handlers.GetAllOrders(db))
		orders.PATCH("/:id/status", middleware.AdminAuth(secret), handlers.UpdateOrderStatus(db))
		orders.DELETE("/:id", middleware.AdminAuth(secret), handlers.DeleteOrder(db))
	}

	messages := r.Group("/messages")
	{
		messages.POST("", middleware.UserAuth(secret), handlers.CreateMessage(db))
		messages.GET("/my-messages", middleware.UserAuth(secret), handlers.GetUserMessages(db))
		messages.GET("/unread-count", middleware.UserAuth(secret), handlers.GetUnreadCount(db))
		messages.GET("/:id", middleware.UserAuth(secret), handlers.GetMessageByID(db))
		messages.POST("/:id/reply", middleware.UserAuth(secret), handlers.ReplyToMessage(db))

		messages.GET("", middleware.AdminAuth(secret), handlers.GetAllMessages(db))
		messages.GET("/admin/unread-count", middleware.AdminAuth(secret), handlers.GetAdminUnreadCount(db))
		messages.POST("/:id/admin-reply", middleware.AdminAuth(secret), handlers.AdminReply(db))
		messages.PATCH("/:id/status", middleware.AdminAuth(secret), handlers.UpdateMessageStatus(db))
	}

	admin := r.Group("/admin")
	admin.Use(middleware.AdminAuth(secret))
	{
		admin.GET("/users", handlers.GetAllUsers(db))
		admin.DELETE("/users/:id", handlers.DeleteUser(db))
		admin.GET("/stats", handlers.GetDashboardStats(db))
	}

	log.WithField("port", config.AppEnv.Port).Info("server starting")
	if err := r.Run(":" + config.AppEnv.Port); err != nil {
		log.Fatal(err)
	}
}
