package controllers

import (
	"net/http"
	"strings"

	"memora/middleware"
	models "memora/models/postgres"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// @Summary Health check
// @Description Returns pong
// @Tags misc
// @Produce json
// @Success 200 {object} object{message=string}
// @Router /ping [get]
func Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "pong"})
}

// @Summary Create a new account
// @Description Registers a username with a numeric PIN and creates its player profile
// @Tags user
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param pin formData string true "Numeric PIN"
// @Param full_name formData string false "Full name"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /signup [post]
func SignUp(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := strings.TrimSpace(c.PostForm("username"))
		pin := strings.TrimSpace(c.PostForm("pin"))
		fullName := c.PostForm("full_name")

		if username == "" || pin == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}
		if len(pin) < 4 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "PIN must have at least 4 digits"})
			return
		}

		var existing models.User
		if err := db.Where("username = ?", username).First(&existing).Error; err == nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Username already taken"})
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating account"})
			return
		}

		user := models.User{
			Username: username,
			PinHash:  string(hash),
			FullName: fullName,
			PlayerProfile: models.PlayerProfile{
				Username: username,
			},
		}
		if err := db.Create(&user).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating account"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"message": "Account created successfully"})
	}
}

// @Summary Log in with username and PIN
// @Description Checks the PIN and returns a JWT for the auth endpoints
// @Tags user
// @Accept x-www-form-urlencoded
// @Produce json
// @Param username formData string true "Username"
// @Param pin formData string true "Numeric PIN"
// @Success 200 {object} object{token=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Router /login [post]
func Login(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		username := c.PostForm("username")
		pin := c.PostForm("pin")

		// Minimum input sanitizing
		if strings.Trim(username, " ") == "" || strings.Trim(pin, " ") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Parameters can't be empty"})
			return
		}

		var user models.User
		if err := db.Where("username = ?", username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or PIN!"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PinHash), []byte(pin)); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or PIN!"})
			return
		}

		token, err := middleware.GenerateToken(user.Username)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error generating token"})
			return
		}

		session.Set("Username", user.Username)
		if err := session.Save(); err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "No session!"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token})
	}
}

// Logout from server, deletes the session associated with the Username key
// @Summary Log out
// @Tags user
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Router /auth/logout [delete]
// @Security ApiKeyAuth
func Logout(c *gin.Context) {
	session := sessions.Default(c)
	user := session.Get("Username")
	// There is no session for the user, won't delete nothing
	if user == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid session token"})
		return
	}

	session.Delete("Username")
	if err := session.Save(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Successfully logged out"})
}

// @Summary Public profile of a user
// @Description Returns the public part of a player profile
// @Tags user
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} object{username=string,icon=integer}
// @Failure 404 {object} object{error=string}
// @Router /users/{username} [get]
func GetUserPublicInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.Param("username")

		var profile models.PlayerProfile
		if err := db.Where("username = ?", username).First(&profile).Error; err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username": profile.Username,
			"icon":     profile.AvatarIcon,
		})
	}
}

// @Summary Private info of the logged in user
// @Description Returns the full profile of the authenticated user
// @Tags user
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Success 200 {object} object{username=string,full_name=string,icon=integer,stats=object}
// @Failure 401 {object} object{error=string}
// @Router /auth/me [get]
// @Security ApiKeyAuth
func GetUserPrivateInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")

		var user models.User
		if err := db.Preload("PlayerProfile").Where("username = ?", username).First(&user).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "User not found"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"username":     user.Username,
			"full_name":    user.FullName,
			"member_since": user.MemberSince,
			"icon":         user.PlayerProfile.AvatarIcon,
			"stats":        user.PlayerProfile.GameStats,
		})
	}
}

// @Summary Update user info
// @Description Updates full name and avatar icon of the authenticated user
// @Tags user
// @Accept x-www-form-urlencoded
// @Produce json
// @Param Authorization header string true "Bearer JWT token"
// @Param full_name formData string false "Full name"
// @Param icon formData int false "Avatar icon"
// @Success 200 {object} object{message=string}
// @Failure 401 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /auth/update [patch]
// @Security ApiKeyAuth
func UpdateUserInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		username := c.GetString("username")

		if fullName, ok := c.GetPostForm("full_name"); ok {
			if err := db.Model(&models.User{}).Where("username = ?", username).
				Update("full_name", fullName).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating user"})
				return
			}
		}
		if icon, ok := c.GetPostForm("icon"); ok {
			if err := db.Model(&models.PlayerProfile{}).Where("username = ?", username).
				Update("avatar_icon", icon).Error; err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error updating profile"})
				return
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
	}
}

// @Summary Lists all users
// @Description Returns every registered username with its icon
// @Tags user
// @Produce json
// @Success 200 {array} object{username=string,icon=integer}
// @Failure 500 {object} object{error=string}
// @Router /allusers [get]
func GetAllUsers(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var profiles []models.PlayerProfile
		if err := db.Find(&profiles).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching users"})
			return
		}

		users := make([]gin.H, len(profiles))
		for i, profile := range profiles {
			users[i] = gin.H{
				"username": profile.Username,
				"icon":     profile.AvatarIcon,
			}
		}
		c.JSON(http.StatusOK, users)
	}
}
