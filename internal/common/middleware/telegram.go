package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	initdata "github.com/telegram-mini-apps/init-data-golang"

	apperrors "github.com/open-builders/questbot/internal/common/errors"
)

const (
	initDataHeader = "init_data"
	userKey        = "user"
)

// TelegramInitData validates the Mini App init data sent in the init_data
// header and stores the Telegram user in the context. A zero ttl disables the
// expiration check.
func TelegramInitData(botToken string, ttl time.Duration, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(initDataHeader)
		if raw == "" {
			Abort(c, apperrors.NewUnauthorizedError("Telegram Init Data required"))
			return
		}
		if botToken == "" {
			logger.Error().Msg("BOT_TOKEN is not configured")
			Abort(c, apperrors.New(apperrors.ErrCodeInternal, "Server configuration error"))
			return
		}

		if err := initdata.Validate(raw, botToken, ttl); err != nil {
			logger.Debug().Err(err).Msg("Init data validation failed")
			Abort(c, apperrors.NewUnauthorizedError("invalid init data"))
			return
		}

		parsed, err := initdata.Parse(raw)
		if err != nil {
			Abort(c, apperrors.Wrap(err, apperrors.ErrCodeBadRequest, "Failed to parse init data"))
			return
		}

		logger.Debug().Int64("user_id", parsed.User.ID).Str("username", parsed.User.Username).Msg("Init data accepted")
		c.Set(userKey, parsed.User)
		c.Next()
	}
}

// TelegramUser returns the user stored by TelegramInitData.
func TelegramUser(c *gin.Context) (initdata.User, bool) {
	v, exists := c.Get(userKey)
	if !exists {
		return initdata.User{}, false
	}
	u, ok := v.(initdata.User)
	return u, ok
}
