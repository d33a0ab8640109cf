package main

import (
	"context"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/vinhphat/vpmetalbackend/controllers"
	"github.com/vinhphat/vpmetalbackend/database"
	"github.com/vinhphat/vpmetalbackend/middleware"
	"github.com/vinhphat/vpmetalbackend/uploads"
	"github.com/vinhphat/vpmetalbackend/utils"
)

func main() {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("no .env file found, using system environment variables")
	}

	logrus.SetFormatter(&logrus.JSONFormatter{})
	if os.Getenv("GIN_MODE") == "release" {
		logrus.SetLevel(logrus.InfoLevel)
	} else {
		logrus.SetLevel(logrus.DebugLevel)
	}

	ctx := context.Background()

	usersCol := database.OpenCollection("users")
	if err := utils.SeedAdminUser(ctx, usersCol); err != nil {
		logrus.WithError(err).Fatal("admin seeding failed")
	}

	store, err := uploads.NewFromEnv(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("object storage init failed")
	}

	r := gin.New()

	allowedOrigins := map[string]bool{}
	for _, origin := range strings.Split(os.Getenv("ALLOWED_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			allowedOrigins[origin] = true
		}
	}
	r.Use(cors.New(cors.Config{
		AllowOriginFunc: func(origin string) bool {
			return allowedOrigins[origin]
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(gin.Logger())
	r.Use(gin.Recovery())

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	r.POST("/auth/login", controllers.Login())
	r.POST("/auth/refresh", controllers.Refresh())
	r.POST("/auth/logout", controllers.Logout())

	r.GET("/products", controllers.GetProducts())
	r.GET("/products/:id", controllers.GetProduct())
	r.GET("/services", controllers.GetServices(false))
	r.GET("/services/:id", controllers.GetService())
	r.GET("/categories", controllers.GetCategories())
	r.GET("/categories/:id", controllers.GetCategory())
	r.GET("/categories/slug/:slug", controllers.GetCategory())
	r.GET("/projects", controllers.GetProjects())
	r.GET("/projects/:id", controllers.GetProject())
	r.POST("/contacts", controllers.CreateContact())

	admin := r.Group("/admin")
	admin.Use(middleware.AuthMiddleware())
	{
		admin.POST("/products", controllers.AddProduct(store))
		admin.PATCH("/products/:id", controllers.UpdateProduct(store))
		admin.DELETE("/products/:id", controllers.DeleteProduct(store))

		admin.GET("/services", controllers.GetServices(true))
		admin.POST("/services", controllers.AddService())
		admin.PATCH("/services/:id", controllers.UpdateService())
		admin.PATCH("/services/:id/order", controllers.UpdateServiceOrder())
		admin.DELETE("/services/:id", controllers.DeleteService())

		admin.POST("/categories", controllers.AddCategory())
		admin.PATCH("/categories/:id", controllers.UpdateCategory())
		admin.DELETE("/categories/:id", controllers.DeleteCategory())

		admin.GET("/contacts", controllers.GetContacts())
		admin.GET("/contacts/:id", controllers.GetContact())
		admin.PATCH("/contacts/:id/status", controllers.UpdateContactStatus())
		admin.DELETE("/contacts/:id", controllers.DeleteContact())

		admin.POST("/projects", controllers.AddProject(store))
		admin.PATCH("/projects/:id", controllers.UpdateProject(store))
		admin.DELETE("/projects/:id", controllers.DeleteProject(store))

		admin.POST("/users", controllers.CreateUser())
		admin.GET("/users", controllers.GetUsers())
		admin.POST("/users/me/password", controllers.ChangeMyPassword())

		admin.POST("/uploads", controllers.UploadImages(store))
	}

	if err := r.Run(); err != nil {
		logrus.WithError(err).Fatal("server exited")
	}
}
