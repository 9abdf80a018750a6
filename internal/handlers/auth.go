package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-dev/portfolio/db"
	"github.com/portfolio-dev/portfolio/internal/auth"
	"github.com/portfolio-dev/portfolio/internal/middleware"
	"github.com/portfolio-dev/portfolio/internal/models"
	"github.com/portfolio-dev/portfolio/internal/types"
	"github.com/portfolio-dev/portfolio/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Login checks the admin table first; an email that matches neither table,
// or a wrong password in either, produces the same response so callers
// cannot enumerate accounts.
func Login(ctx *gin.Context) {
	var body LoginRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var admin models.Admin
	err := db.DB.Where("email = ?", email).First(&admin).Error
	if err == nil {
		if bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(body.Password)) == nil {
			name := admin.Name
			if name == "" {
				name = "Admin"
			}
			finishLogin(ctx, UserResponse{ID: admin.ID, Name: name, Email: admin.Email, Role: types.RoleAdmin})
			return
		}
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when fetching admin: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	var user models.User
	err = db.DB.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
			return
		}
		log.Printf("Database error when fetching user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(body.Password)) != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid credentials"})
		return
	}

	finishLogin(ctx, UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role})
}

func finishLogin(ctx *gin.Context, user UserResponse) {
	token, err := auth.GenerateJWT(user.ID, user.Role)
	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	session, err := auth.NewSession(user.ID, user.Role)
	if err != nil {
		log.Printf("Failed to create session: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	middleware.SetSessionCookie(ctx, session.ID)

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		Domain:   Domain,
		MaxAge:   int(auth.TokenTTL.Seconds()),
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}

func Register(ctx *gin.Context) {
	var body RegisterRequest

	if err := ctx.BindJSON(&body); err != nil {
		log.Printf("Failed to bind JSON: %v", err)
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request"})
		return
	}

	email := strings.ToLower(strings.TrimSpace(body.Email))

	var existing models.User
	err := db.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"message": "User already exists"})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(body.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	role := body.Role
	if role == "" {
		role = types.RoleUser
	}

	user := models.User{
		Name:         body.Name,
		Email:        email,
		PasswordHash: string(passwordHash),
		Role:         role,
	}

	if err := db.DB.Create(&user).Error; err != nil {
		log.Printf("Failed to create user: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"message": "Server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    UserResponse{ID: user.ID, Name: user.Name, Email: user.Email, Role: user.Role},
	})
}

// Me returns the identity behind the current session. A session whose user
// no longer exists is destroyed and reported as unauthenticated.
func Me(ctx *gin.Context) {
	identity, err := utils.GetCurrentIdentity(ctx)
	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
		return
	}

	if identity.Role == types.RoleAdmin {
		var admin models.Admin
		if err := db.DB.First(&admin, identity.UserID).Error; err == nil {
			ctx.JSON(http.StatusOK, gin.H{"id": admin.ID, "email": admin.Email, "role": types.RoleAdmin})
			return
		}
	} else {
		var user models.User
		if err := db.DB.First(&user, identity.UserID).Error; err == nil {
			ctx.JSON(http.StatusOK, gin.H{"id": user.ID, "name": user.Name, "email": user.Email, "role": user.Role})
			return
		}
	}

	// The identity behind the session is gone; the session goes with it.
	destroySession(ctx)
	middleware.ClearSessionCookie(ctx)
	ctx.JSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
}

func Logout(ctx *gin.Context) {
	destroySession(ctx)
	middleware.ClearSessionCookie(ctx)

	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		Domain:   Domain,
		MaxAge:   -1,
		Secure:   true,
		HttpOnly: true,
		SameSite: http.SameSiteNoneMode,
	})

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// AuthCheck reports whether the caller has a live session. Always 200.
func AuthCheck(ctx *gin.Context) {
	_, ok := middleware.ResolveIdentity(ctx)
	ctx.JSON(http.StatusOK, gin.H{"isAuthenticated": ok})
}

func destroySession(ctx *gin.Context) {
	if cookie, err := ctx.Cookie(auth.SessionCookieName); err == nil && cookie != "" {
		auth.DestroyCookie(cookie)
	}
}

// SeedAdmin provisions the bootstrap admin account once. Safe to call on
// every start.
func SeedAdmin(email, password string) error {
	var existing models.Admin
	err := db.DB.Where("email = ?", email).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err := db.DB.Create(&models.Admin{Email: email, PasswordHash: string(passwordHash)}).Error; err != nil {
		return err
	}

	log.Printf("Default admin created: %s", email)
	return nil
}
