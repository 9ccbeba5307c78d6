package middleware

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
)

// RequireAdmin lets through only Telegram users accepted by isAdmin. It must
// run after TelegramInitData.
func RequireAdmin(isAdmin func(userID int64) bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := TelegramUser(c)
		if !ok {
			Abort(c, apperrors.NewUnauthorizedError("Telegram Init Data required"))
			return
		}
		if !isAdmin(user.ID) {
			Abort(c, apperrors.NewForbiddenError("admin access required").WithDetail("user_id", user.ID))
			return
		}
		c.Next()
	}
}
