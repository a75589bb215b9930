package bootstrap

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	httpapi "github.com/devbridge-hq/devbridge-backend/internal/api/http"
	"github.com/devbridge-hq/devbridge-backend/internal/api/http/codegen"
	"github.com/devbridge-hq/devbridge-backend/internal/api/http/middleware"
	"github.com/devbridge-hq/devbridge-backend/internal/api/http/repos"
	"github.com/devbridge-hq/devbridge-backend/internal/api/http/tickets"
)

type RouterDeps struct {
	ServiceName string
	Version     string
	Tickets     tickets.TicketService
	Repos       repos.RepoService
	Generator   codegen.CodeGenerator
}

func BuildRouter(dep RouterDeps) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	corsCfg.AllowAllOrigins = true
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization", "X-Request-Id")
	r.Use(cors.New(corsCfg))
	r.Use(middleware.RequestIDMiddleware())

	healthHandler := httpapi.NewHealthHandler(dep.ServiceName, dep.Version)
	healthHandler.RegisterRoutes(r)

	tickets.NewHandler(dep.Tickets).Register(r)
	repos.NewHandler(dep.Repos).Register(r)
	codegen.NewHandler(dep.Generator).Register(r)

	return r
}
