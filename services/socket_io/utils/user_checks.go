package socketio_utils

import (
	"log"

	"memora/middleware"
	models "memora/models/postgres"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// VerifyUserConnection authenticates a fresh socket connection from its
// handshake auth data (a JWT under "token") and checks the account exists
func VerifyUserConnection(client *socket.Socket, db *gorm.DB) (bool, string) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		log.Println("[SOCKET-AUTH] No auth data provided in handshake")
		client.Emit("error", gin.H{"error": "Authentication failed: missing token"})
		client.Disconnect(true)
		return false, ""
	}

	tokenString, ok := authData["token"].(string)
	if !ok || tokenString == "" {
		log.Println("[SOCKET-AUTH] No token provided in handshake")
		client.Emit("error", gin.H{"error": "Authentication failed: missing token"})
		client.Disconnect(true)
		return false, ""
	}

	username, err := middleware.ParseToken(tokenString)
	if err != nil {
		log.Printf("[SOCKET-AUTH] Invalid token: %v", err)
		client.Emit("error", gin.H{"error": "Authentication failed: invalid token"})
		client.Disconnect(true)
		return false, ""
	}

	var user models.User
	if err := db.Where("username = ?", username).First(&user).Error; err != nil {
		log.Printf("[SOCKET-AUTH] Unknown user %s: %v", username, err)
		client.Emit("error", gin.H{"error": "Authentication failed: unknown user"})
		client.Disconnect(true)
		return false, ""
	}

	return true, username
}
