package middleware

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"smatching/utils"
)

const authCacheTTL = time.Hour

// JWTAuthUserMiddleware authenticates Bearer tokens. The token's hash
// is checked against the auth cache entry written at sign-in, so a
// revoked or superseded token is rejected before its JWT expiry.
func JWTAuthUserMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		userID, err := utils.ExtractIDFromToken(tokenString)
		if err != nil || userID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
			return
		}

		computedHash := utils.HashToken(tokenString)
		cacheKey := utils.AuthCachePrefix + userID

		ctx := context.Background()
		authCache := utils.GetAuthCacheClient()

		cachedHash, err := authCache.Get(ctx, cacheKey).Result()
		switch {
		case err == nil:
			if cachedHash != computedHash {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Session superseded"})
				return
			}
			_ = authCache.Expire(ctx, cacheKey, authCacheTTL).Err()
		case err == redis.Nil:
			// No cached session (cache flushed or expired). The JWT
			// already validated, so accept and repopulate.
			_ = authCache.Set(ctx, cacheKey, computedHash, authCacheTTL).Err()
		default:
			utils.GetLogger().Sugar().Warnw("auth cache unavailable, accepting validated token", "error", err)
		}

		c.Set("userID", userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by the auth middleware.
func UserID(c *gin.Context) string {
	v, _ := c.Get("userID")
	id, _ := v.(string)
	return id
}
