package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/common"
	"github.com/dmitrijs2005/tuktask/internal/server/navigation"
	"github.com/dmitrijs2005/tuktask/internal/server/services"
	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Image string `json:"image"`
}

type sessionResponse struct {
	User    sessionUser `json:"user"`
	Expires string      `json:"expires"`
}

func internalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, gin.H{"message": "Internal Server Error"})
}

func (s *HTTPServer) register(c *gin.Context) {
	ctx := c.Request.Context()

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	user, err := s.users.Register(ctx, services.RegisterInput{Name: req.Name, Email: req.Email, Password: req.Password})
	if err != nil {
		switch {
		case errors.Is(err, services.ErrPasswordTooLong):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Password is too long"})
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		case errors.Is(err, common.ErrorAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"message": "User already exists"})
		default:
			s.logger.Error(ctx, "registration failed", "error", err)
			internalError(c)
		}
		return
	}

	s.logger.Info(ctx, "Registered", "user_id", user.ID)
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully", "userid": user.ID})
}

func (s *HTTPServer) login(c *gin.Context) {
	ctx := c.Request.Context()

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}

	sess, err := s.users.Login(ctx, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrorValidation):
			c.JSON(http.StatusBadRequest, gin.H{"message": "Email and password are required"})
		case errors.Is(err, common.ErrorUnauthorized):
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid email or password"})
		default:
			s.logger.Error(ctx, "login failed", "error", err)
			internalError(c)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": sess.Token, "expires": sess.ExpiresAt.UTC().Format(time.RFC3339)})
}

func (s *HTTPServer) session(c *gin.Context) {
	id := identityFrom(c)
	if id == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
		return
	}

	u := sessionUser{
		ID:    id.User.ID,
		Name:  id.User.Name,
		Email: id.User.Email,
		Image: navigation.AvatarURL(&navigation.User{Name: id.User.Name}),
	}

	c.JSON(http.StatusOK, sessionResponse{User: u, Expires: id.ExpiresAt.UTC().Format(time.RFC3339)})
}

func (s *HTTPServer) signOut(c *gin.Context) {
	ctx := c.Request.Context()

	if token := bearerToken(c); token != "" {
		if err := s.users.SignOut(ctx, token); err != nil {
			s.logger.Error(ctx, "sign out failed", "error", err)
			internalError(c)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"url": common.LoginRoute})
}

func (s *HTTPServer) nav(c *gin.Context) {
	var u *navigation.User
	if id := identityFrom(c); id != nil {
		u = &navigation.User{ID: id.User.ID, Name: id.User.Name, Email: id.User.Email}
	}
	c.JSON(http.StatusOK, navigation.Build(u))
}
