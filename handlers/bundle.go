package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers and the auth middleware into one struct.
type HandlerBundle struct {
	// Authentication applied to every /api route except registration.
	AuthMiddleware gin.HandlerFunc

	Auth     *AuthHandler
	Users    *UserHandler
	CheckIns *CheckInHandler
	Bookings *BookingHandler
	Chat     *ChatHandler
	Articles *ArticleHandler
	Storage  *StorageHandler
	Stream   *StreamHandler
}
