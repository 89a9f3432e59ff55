package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"carscout/src/app"
	"carscout/src/repository"
)

type (
	AuthHandler struct {
		users  *repository.UserRepository
		tokens *app.TokenManager
	}

	RegisterBody struct {
		Email      string `json:"email"`
		Password   string `json:"password"`
		IsBusiness bool   `json:"isBusiness"`
	}

	LoginBody struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	ProfileBody struct {
		Name      string `json:"name"`
		Email     string `json:"email"`
		City      string `json:"city"`
		AvatarURL string `json:"avatarUrl"`
	}
)

func NewAuthHandler(users *repository.UserRepository, tokens *app.TokenManager) *AuthHandler {
	return &AuthHandler{users: users, tokens: tokens}
}

// RequireAuth verifies the bearer token and injects the identity into the
// request context, where the repositories pick it up.
func RequireAuth(tokens *app.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "error", "error": "no bearer token"})
			return
		}
		ident, err := tokens.Verify(strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "error", "error": "invalid token"})
			return
		}
		c.Request = c.Request.WithContext(repository.WithIdentity(c.Request.Context(), ident))
		c.Next()
	}
}

// OptionalAuth injects the identity when a valid bearer token is presented.
// Requests without one, or with a bad one, proceed anonymously; the read
// handlers use it so ownership signals like "editable" can reflect the
// caller.
func OptionalAuth(tokens *app.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			if ident, err := tokens.Verify(strings.TrimPrefix(authHeader, "Bearer ")); err == nil {
				c.Request = c.Request.WithContext(repository.WithIdentity(c.Request.Context(), ident))
			}
		}
		c.Next()
	}
}

// POST /api/auth/register
func (a *AuthHandler) Register(c *gin.Context) {
	var body RegisterBody
	if err := c.BindJSON(&body); err != nil {
		return
	}
	email := strings.TrimSpace(body.Email)
	if email == "" || body.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"message": "error", "error": "email and password are required"})
		return
	}

	if _, exists, err := a.users.FindByEmail(c.Request.Context(), email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error", "error": err.Error()})
		return
	} else if exists {
		c.JSON(http.StatusConflict, gin.H{"message": "error", "error": "email already registered"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error", "error": err.Error()})
		return
	}

	id := uuid.NewString()
	if err := a.users.Create(c.Request.Context(), id, email, string(hash), body.IsBusiness); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error", "error": err.Error()})
		return
	}

	token, err := a.tokens.Generate(repository.Identity{ID: id, Email: email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"status": "success", "payload": gin.H{"id": id, "token": token}})
}

// POST /api/auth/login
func (a *AuthHandler) Login(c *gin.Context) {
	var body LoginBody
	if err := c.BindJSON(&body); err != nil {
		return
	}

	user, found, err := a.users.FindByEmail(c.Request.Context(), strings.TrimSpace(body.Email))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error", "error": err.Error()})
		return
	}
	if !found || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "error", "error": "invalid credentials"})
		return
	}

	token, err := a.tokens.Generate(repository.Identity{ID: user.ID, Email: user.Email})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "payload": gin.H{"id": user.ID, "token": token}})
}

// GET /api/profile
func (a *AuthHandler) GetProfile(c *gin.Context) {
	ident, ok := repository.ContextIdentity{}.Current(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "error", "error": "authentication required"})
		return
	}
	user, found, err := a.users.Get(c.Request.Context(), ident.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error", "error": err.Error()})
		return
	}
	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "error", "error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success", "payload": user})
}

// PUT /api/profile
func (a *AuthHandler) PutProfile(c *gin.Context) {
	ident, ok := repository.ContextIdentity{}.Current(c.Request.Context())
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"message": "error", "error": "authentication required"})
		return
	}
	var body ProfileBody
	if err := c.BindJSON(&body); err != nil {
		return
	}
	fields := repository.ProfileFields{
		Name:      body.Name,
		Email:     body.Email,
		City:      body.City,
		AvatarURL: body.AvatarURL,
	}
	if err := a.users.Merge(c.Request.Context(), ident.ID, fields); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"message": "error", "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "success"})
}
