package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/taskhub-dev/taskhub/internal/activity"
	"github.com/taskhub-dev/taskhub/internal/handlers"
	"github.com/taskhub-dev/taskhub/internal/middleware"
	"github.com/taskhub-dev/taskhub/internal/models"
	"github.com/taskhub-dev/taskhub/internal/storage"
	"github.com/taskhub-dev/taskhub/internal/types"
)

func New(store storage.Store, demoUser *models.User) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	recorder := activity.NewRecorder(store)
	projects := handlers.NewProjectHandler(store, recorder)
	tasks := handlers.NewTaskHandler(store, recorder)
	users := handlers.NewUserHandler(store)

	api := r.Group("/api", middleware.Identity(demoUser))
	{
		api.GET("/health", handlers.HealthCheck)

		p := api.Group("/projects")
		{
			p.GET("", projects.List)
			p.POST("", projects.Create)
			p.GET("/:id", projects.Get)
			p.PUT("/:id", projects.Update)
			p.DELETE("/:id", projects.Delete)
			p.GET("/:id/tasks", projects.Tasks)
			p.GET("/:id/stats", projects.Stats)
		}

		t := api.Group("/tasks")
		{
			t.GET("", tasks.List)
			t.POST("", tasks.Create)
			t.GET("/stats/overview", tasks.Overview)
			t.GET("/:id", tasks.Get)
			t.PUT("/:id", tasks.Update)
			t.DELETE("/:id", tasks.Delete)
			t.POST("/:id/comments", tasks.AddComment)
		}

		u := api.Group("/users")
		{
			u.GET("/profile", users.Profile)
			u.PUT("/profile", users.UpdateProfile)
			u.GET("/activities", users.Activities)
			u.GET("/stats", users.Stats)
		}
	}

	return r
}
