package api

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"zoo_management/pkg/apperror"
	"zoo_management/pkg/casing"
	"zoo_management/pkg/models"
	"zoo_management/pkg/resources"
)

const (
	defaultRole        = "visitor"
	registrationFailed = "Registration failed. Email might already exist."
	invalidCredentials = "Invalid email or password"
	loginFailed        = "Login failed"
)

func (h *Handler) register(c *gin.Context) {
	var payload resources.RegisterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respondError(c, bindError(err), "")
		return
	}

	hash, err := HashPassword(payload.Password)
	if err != nil {
		h.respondError(c, err, registrationFailed)
		return
	}

	role := defaultRole
	if payload.Role != nil && *payload.Role != "" {
		role = *payload.Role
	}
	user := &models.User{
		ID:       resources.GenerateID("user", h.now()),
		Name:     payload.Name,
		Email:    payload.Email,
		Password: hash,
		Role:     role,
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		h.respondError(c, err, registrationFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	})
}

func (h *Handler) login(c *gin.Context) {
	var payload resources.LoginPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		h.respondError(c, bindError(err), "")
		return
	}

	if payload.Email == "" || payload.Password == "" {
		h.respondError(c, apperror.Unauthorized(invalidCredentials), "")
		return
	}

	user, err := h.store.FindUserByEmail(c.Request.Context(), payload.Email)
	if apperror.Is(err, apperror.KindNotFound) {
		h.respondError(c, apperror.Unauthorized(invalidCredentials), "")
		return
	}
	if err != nil {
		h.respondError(c, err, loginFailed)
		return
	}
	if !PasswordMatches(user.Password, payload.Password) {
		h.respondError(c, apperror.Unauthorized(invalidCredentials), "")
		return
	}

	c.JSON(http.StatusOK, casing.MapToWire(map[string]any{
		"id":    user.ID,
		"name":  user.Name,
		"email": user.Email,
		"role":  user.Role,
	}))
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// PasswordMatches checks a bcrypt hash. Rows imported from the old store
// hold the password itself and are compared in constant time.
func PasswordMatches(stored, password string) bool {
	if isBcryptHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(password)) == 1
}

func isBcryptHash(s string) bool {
	return len(s) == 60 && (strings.HasPrefix(s, "$2a$") || strings.HasPrefix(s, "$2b$") || strings.HasPrefix(s, "$2y$"))
}
