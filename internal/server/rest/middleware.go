package rest

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/common"
	"github.com/dmitrijs2005/tuktask/internal/server/services"
	"github.com/gin-gonic/gin"
)

const identityKey = "identity"

// bearerToken returns the token from the Authorization header, or "".
func bearerToken(c *gin.Context) string {
	h := c.GetHeader(common.AuthorizationHeaderName)
	token, ok := strings.CutPrefix(h, common.BearerPrefix)
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

func identityFrom(c *gin.Context) *services.Identity {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil
	}
	id, _ := v.(*services.Identity)
	return id
}

// requireSession rejects requests without a live session with 401.
func (s *HTTPServer) requireSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}

		id, err := s.users.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
				return
			}
			s.logger.Error(c.Request.Context(), "session lookup failed", "error", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
			return
		}

		c.Set(identityKey, id)
		c.Next()
	}
}

// optionalSession attaches the identity when a valid token is presented
// and lets every other request through as a guest.
func (s *HTTPServer) optionalSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}

		id, err := s.users.Authenticate(c.Request.Context(), token)
		switch {
		case err == nil:
			c.Set(identityKey, id)
		case !errors.Is(err, common.ErrorUnauthorized):
			s.logger.Warn(c.Request.Context(), "session lookup failed, serving guest", "error", err)
		}
		c.Next()
	}
}

func (s *HTTPServer) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info(c.Request.Context(), "HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
