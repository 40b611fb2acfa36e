package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/derin/classpanel/internal/app/models"
	"github.com/derin/classpanel/internal/app/models/dto"
	"github.com/derin/classpanel/internal/pkg/auth"
	"github.com/derin/classpanel/internal/pkg/logger"
)

// Per-minute request budgets by caller role.
const (
	adminRateLimit   = 20
	teacherRateLimit = 10
	studentRateLimit = 10
	guestRateLimit   = 5
)

const rateWindow = time.Minute

// ContextRoleKey is where the security middleware stores the caller role.
const ContextRoleKey = "callerRole"

// SecurityMiddleware reads the optional bearer token to learn the caller's
// role and enforces a fixed-window per-minute rate limit in Redis, keyed by
// role and client identity. When Redis is unreachable the limiter fails
// open; slow requests beat dropped ones.
func SecurityMiddleware(tokens *auth.TokenReader, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := models.RoleType("")
		claims, err := tokens.ParseAuthorizationHeader(c.GetHeader("Authorization"))
		if err == nil {
			role = auth.RoleOf(claims)
		}
		c.Set(ContextRoleKey, role)

		limit := limitForRole(role)
		identity := c.ClientIP()
		if claims != nil && claims.UserID != "" {
			identity = claims.UserID
		}

		window := time.Now().Unix() / int64(rateWindow.Seconds())
		key := fmt.Sprintf("ratelimit:%s:%s:%d", roleKey(role), identity, window)

		count, err := rdb.Incr(c.Request.Context(), key).Result()
		if err != nil {
			logger.Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}
		if count == 1 {
			rdb.Expire(c.Request.Context(), key, rateWindow)
		}
		if count > int64(limit) {
			c.AbortWithStatusJSON(429, dto.NewErrorResponse("Too many requests"))
			return
		}

		c.Next()
	}
}

func limitForRole(role models.RoleType) int {
	switch role {
	case models.RoleAdmin:
		return adminRateLimit
	case models.RoleTeacher:
		return teacherRateLimit
	case models.RoleStudent:
		return studentRateLimit
	default:
		return guestRateLimit
	}
}

func roleKey(role models.RoleType) string {
	if role == "" {
		return "guest"
	}
	return string(role)
}
