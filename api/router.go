package api

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/Domenick1991/lastchanceair/config"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Registrar interface {
	Register(router *gin.RouterGroup)
}

// NewRouter mounts every handler under /api and adds health, docs and the
// optional static frontend.
func NewRouter(cfg config.HTTPConfig, handlers ...Registrar) *gin.Engine {
	r := gin.Default()

	corsCfg := cors.DefaultConfig()
	if len(cfg.CORSOrigins) == 0 || (len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
	}
	corsCfg.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	r.Use(cors.New(corsCfg))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "LastChance Air backend is running")
	})

	api := r.Group("/api")
	for _, h := range handlers {
		h.Register(api)
	}

	if cfg.OpenAPIFile != "" {
		r.StaticFile("/openapi.json", cfg.OpenAPIFile)
		r.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))
	}

	if cfg.StaticDir != "" {
		r.NoRoute(frontend(cfg.StaticDir))
	}
	return r
}

// frontend serves files from dir and falls back to index.html so browser
// refreshes on client-side views keep working.
func frontend(dir string) gin.HandlerFunc {
	files := http.FileServer(http.Dir(dir))
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet || strings.HasPrefix(c.Request.URL.Path, "/api/") {
			c.JSON(http.StatusNotFound, errorResponse{Error: "not found"})
			return
		}
		path := filepath.Join(dir, filepath.Clean("/"+c.Request.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			files.ServeHTTP(c.Writer, c.Request)
			return
		}
		c.File(filepath.Join(dir, "index.html"))
	}
}
