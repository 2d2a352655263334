package server

import (
	"time"

	"activity-game/internal/game"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	sessionCookie   = "activity_session"
	sessionLifetime = 30 * 24 * time.Hour
)

type sessionClaims struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(user *game.Player) (string, error) {
	claims := sessionClaims{
		Email:    user.Email,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(sessionLifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *Server) parseToken(tokenString string) (*sessionClaims, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(_ *jwt.Token) (any, error) {
		return []byte(s.cfg.JWTSecret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenUnverifiable
	}
	return &claims, nil
}

// requireUser resolves the session cookie into the current user id.
func (s *Server) requireUser() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, err := c.Cookie(sessionCookie)
		if err != nil || tokenString == "" {
			appErr := game.ErrUserNotAuthenticated()
			c.AbortWithStatusJSON(appErr.Status, ApiResponse{
				Success:   false,
				ErrorCode: int(appErr.Code),
				Message:   appErr.Message,
			})
			return
		}
		claims, err := s.parseToken(tokenString)
		if err != nil {
			appErr := game.ErrUserNotAuthenticated()
			c.AbortWithStatusJSON(appErr.Status, ApiResponse{
				Success:   false,
				ErrorCode: int(appErr.Code),
				Message:   appErr.Message,
			})
			return
		}
		c.Set("user_id", claims.Subject)
		c.Next()
	}
}

func currentUserID(c *gin.Context) string {
	return c.GetString("user_id")
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=2,max=32"`
}

// handleRegister creates the durable identity on first registration and
// issues the session cookie. Registering an existing email signs that
// user back in.
func (s *Server) handleRegister(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	user, err := s.users.UserByEmail(c.Request.Context(), req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		user, err = s.users.CreateUser(c.Request.Context(), game.Player{
			ID:       uuid.NewString(),
			Email:    req.Email,
			Username: req.Username,
		})
		if err != nil {
			respondError(c, err)
			return
		}
	}

	token, err := s.issueToken(user)
	if err != nil {
		respondError(c, err)
		return
	}
	c.SetCookie(sessionCookie, token, int(sessionLifetime/time.Second), "/", "", false, true)
	respondOK(c, user, "user registered")
}

type updateProfileRequest struct {
	Username string `json:"username" binding:"required,min=2,max=32"`
}

func (s *Server) handleUpdateMe(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err.Error())
		return
	}

	userID := currentUserID(c)
	if err := s.users.UpdateUsername(c.Request.Context(), userID, req.Username); err != nil {
		respondError(c, err)
		return
	}
	user, err := s.users.UserByID(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	respondOK(c, user, "profile updated")
}

func (s *Server) handleMe(c *gin.Context) {
	user, err := s.users.UserByID(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	if user == nil {
		respondError(c, game.ErrUserNotFound(currentUserID(c)))
		return
	}
	respondOK(c, user, "")
}
