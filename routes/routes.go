package routes

import (
	"memora/controllers"
	"memora/middleware"
	"memora/services/rooms"
	utils "memora/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, manager *rooms.Manager) {
	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API routes group
	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.GET("/allusers", controllers.GetAllUsers(db))

	api.GET("/users/:username", controllers.GetUserPublicInfo(db))

	api.POST("/login", controllers.Login(db))

	api.POST("/signup", controllers.SignUp(db))

	authentication := api.Group("/auth")
	authentication.Use(middleware.AuthRequired)
	{
		authentication.DELETE("/logout", controllers.Logout)

		authentication.GET("/me", controllers.GetUserPrivateInfo(db))

		authentication.PATCH("/update", controllers.UpdateUserInfo(db))

		authentication.GET("/buddies", controllers.ListBuddies(db))

		authentication.POST("/sendBuddyRequest", controllers.SendBuddyRequest(db))

		authentication.GET("/buddy_requests", controllers.GetAllBuddyRequests(db))

		authentication.POST("/acceptBuddyRequest", controllers.AcceptBuddyRequest(db))

		authentication.DELETE("/delete_buddy_request", controllers.DeleteBuddyRequest(db))

		authentication.DELETE("/removeBuddy", controllers.RemoveBuddy(db))

		authentication.POST("/sendRoomInvitation", controllers.SendRoomInvitation(db, manager))

		authentication.GET("/room_invitations", controllers.GetAllRoomInvitations(db))

		authentication.DELETE("/delete_room_invitation", controllers.DeleteRoomInvitation(db))

		authentication.POST("/createRoom", controllers.CreateRoom(manager))

		authentication.GET("/roomInfo/:room_code", controllers.GetRoomInfo(manager))

		authentication.POST("/joinRoom/:room_code", controllers.JoinRoom(manager))

		authentication.POST("/leaveRoom/:room_code", controllers.LeaveRoom(manager))

		authentication.GET("/matchHistory", controllers.GetMatchHistory(db))
	}
}
