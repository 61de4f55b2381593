package httpserver

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"wbsplanner/internal/handler"
	"wbsplanner/pkg/otel"
	"wbsplanner/pkg/rbac"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnChecker is satisfied by *mq.Publisher.
type ConnChecker interface {
	IsConnected() bool
}

type Deps struct {
	Auth         *handler.AuthHandler
	Projects     *handler.ProjectHandler
	Tasks        *handler.TaskHandler
	Dependencies *handler.DependencyHandler
	JWTSecret    string
	DB           Pinger
	MQ           ConnChecker
	Logger       *zap.Logger
}

func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(TraceMiddleware())
	r.Use(RequestLogMiddleware(d.Logger))
	r.Use(MetricsMiddleware())
	r.Use(otel.GinMiddleware())

	// Health endpoints (放在最前面)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.HEAD("/healthz", func(c *gin.Context) {
		c.Status(200)
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	r.GET("/readyz", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 1*time.Second)
		defer cancel()

		if d.DB != nil {
			if err := d.DB.Ping(ctx); err != nil {
				c.JSON(500, gin.H{"status": "db_not_ready", "error": err.Error()})
				return
			}
		}
		if d.MQ != nil && !d.MQ.IsConnected() {
			c.JSON(500, gin.H{"status": "mq_not_ready"})
			return
		}
		c.JSON(200, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")

	// Public
	v1.POST("/users/login/simple", d.Auth.Login)

	// Protected
	auth := v1.Group("/")
	auth.Use(AuthMiddleware(d.JWTSecret))
	{
		auth.GET("/users/me", d.Auth.Me)

		can := RequirePermission
		auth.GET("/projects/", can(rbac.PermissionReadProject), d.Projects.List)
		auth.POST("/projects/", can(rbac.PermissionWriteProject), d.Projects.Create)
		auth.GET("/projects/statistics", can(rbac.PermissionReadProject), d.Projects.Statistics)
		auth.GET("/projects/export", can(rbac.PermissionExport), d.Projects.Export)
		auth.GET("/projects/:id", can(rbac.PermissionReadProject), d.Projects.Get)
		auth.PUT("/projects/:id", can(rbac.PermissionWriteProject), d.Projects.Update)
		auth.DELETE("/projects/:id", can(rbac.PermissionDeleteProject), d.Projects.Delete)

		auth.GET("/tasks/project/:projectId", can(rbac.PermissionReadTask), d.Tasks.ListByProject)
		auth.GET("/tasks/project/:projectId/gantt", can(rbac.PermissionReadTask), d.Tasks.Gantt)
		auth.GET("/tasks/project/:projectId/dependencies", can(rbac.PermissionReadTask), d.Dependencies.ListByProject)
		auth.POST("/tasks/", can(rbac.PermissionCreateTask), d.Tasks.Create)
		auth.GET("/tasks/:id", can(rbac.PermissionReadTask), d.Tasks.Get)
		auth.PUT("/tasks/:id", can(rbac.PermissionUpdateTask), d.Tasks.Update)
		auth.DELETE("/tasks/:id", can(rbac.PermissionDeleteTask), d.Tasks.Delete)
		auth.POST("/tasks/dependencies", can(rbac.PermissionWriteDependency), d.Dependencies.Create)
		auth.DELETE("/tasks/dependencies/:id", can(rbac.PermissionWriteDependency), d.Dependencies.Delete)
	}

	return r
}
