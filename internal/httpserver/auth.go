package httpserver

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"reseller-portal/internal/domain"
	identitysvc "reseller-portal/internal/service/identity"
)

const userCtxKey = "portal.user"

type credentialsRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *handlers) signup(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}
	u, err := h.deps.Identity.Signup(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyExists) {
			c.JSON(http.StatusConflict, gin.H{"message": "account already exists"})
			return
		}
		if _, ok := domain.AsValidation(err); ok {
			respondError(c, h.logger, err)
			return
		}
		// password/email policy failures read as bad input
		badRequest(c, err.Error())
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user": u})
}

func (h *handlers) login(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "email and password are required")
		return
	}
	u, access, err := h.deps.Identity.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, identitysvc.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "invalid credentials"})
			return
		}
		respondError(c, h.logger, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"user":         u,
		"access_token": access,
		"token_type":   "Bearer",
		"expires_in":   h.deps.Identity.AccessTTLSeconds(),
	})
}

// authMiddleware resolves the Bearer token and stores the user on the
// request context.
func authMiddleware(identity IdentityService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "missing bearer token"})
			return
		}
		u, err := identity.LookupByToken(c.Request.Context(), strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "invalid token"})
			return
		}
		c.Set(userCtxKey, *u)
		c.Next()
	}
}

func adminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !currentUser(c).IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "forbidden"})
			return
		}
		c.Next()
	}
}

// currentUser returns the authenticated user. Routes behind
// authMiddleware always have one.
func currentUser(c *gin.Context) domain.User {
	u, _ := c.Get(userCtxKey)
	user, _ := u.(domain.User)
	return user
}
