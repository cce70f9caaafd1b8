package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"mealboard/internal/auth"
	"mealboard/internal/hall"
	"mealboard/internal/menu"
	"mealboard/internal/middleware"
)

// Deps carries the wired handlers the router mounts.
type Deps struct {
	Auth           *auth.Handler
	Hall           *hall.Handler
	Menu           *menu.Handler
	AdminMenu      *menu.AdminHandler
	AllowedOrigins []string
}

func NewRouter(deps Deps) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// ───────────────────────── AUTH ─────────────────────────
	authGroup := r.Group("/auth")
	{
		authGroup.POST("/register", deps.Auth.Register)
		authGroup.POST("/login", deps.Auth.Login)
	}

	// ───────────────────────── HALLS ─────────────────────────
	halls := r.Group("/halls")
	halls.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleStaff),
	)
	{
		halls.POST("", deps.Hall.Create)
		halls.GET("/me", deps.Hall.ListMine)
	}

	// ───────────────────────── MENUS ─────────────────────────
	menus := r.Group("/menus")
	menus.Use(middleware.AuthMiddleware())
	{
		menus.POST("/upload", middleware.RequireRole(auth.RoleStaff), deps.Menu.Upload)
		menus.GET("/:hall_id/status", deps.Menu.Status)
		menus.POST("/:hall_id/retry", middleware.RequireRole(auth.RoleStaff), deps.Menu.Retry)
		menus.GET("/:hall_id/week", deps.Menu.Week)
		menus.PUT("/:hall_id/week", middleware.RequireRole(auth.RoleStaff), deps.Menu.UpdateWeek)
	}

	// ───────────────────────── ADMIN ─────────────────────────
	admin := r.Group("/admin")
	admin.Use(
		middleware.AuthMiddleware(),
		middleware.RequireRole(auth.RoleAdmin),
	)
	{
		admin.GET("/menus/pending", deps.AdminMenu.ListPending)
		admin.POST("/menus/:hall_id/approve", deps.AdminMenu.Approve)
		admin.POST("/menus/:hall_id/reject", deps.AdminMenu.Reject)
		admin.POST("/halls/:id/approve", deps.Hall.Approve)
	}

	return r
}
