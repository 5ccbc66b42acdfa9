package rest

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func (s *HTTPServer) newRouter() *gin.Engine {
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(s.requestLogger())
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:   []string{"Content-Length", "Content-Type"},
		MaxAge:          12 * time.Hour,
	}))

	api := r.Group("/api")

	authGroup := api.Group("/auth")
	authGroup.POST("/register", s.register)
	authGroup.POST("/login", s.login)
	authGroup.POST("/signout", s.signOut)
	authGroup.GET("/session", s.requireSession(), s.session)

	api.GET("/nav", s.optionalSession(), s.nav)

	return r
}
