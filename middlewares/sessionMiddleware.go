package middlewares

import (
	"net/http"

	"github.com/Jake1848/flowlogic-wms-ui-sub007/config"
	"github.com/Jake1848/flowlogic-wms-ui-sub007/utils"
	"github.com/gin-gonic/gin"
)

/*
caches:
	Token:$token -> username
*/

// SessionMiddleware resolves the token header into user context. Requests
// without a token pass through anonymously; handlers that need a user gate
// on the context themselves. A token that fails signature/expiry checks or
// has no live session is rejected.
func SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := c.Request.Header.Get("token")
		if token == "" {
			c.Next()
			return
		}

		parsed, err := utils.JwtValidate(token)
		if err != nil || !parsed.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		username, exists, err := config.GetRedisValue("Token:" + token)
		if err != nil || !exists {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			c.Abort()
			return
		}

		ctx := utils.SetTokenInContext(c.Request.Context(), token)
		ctx = utils.SetUsernameInContext(ctx, username)
		if claims, ok := parsed.Claims.(*utils.JwtCustomClaim); ok {
			ctx = utils.SetUserIdInContext(ctx, claims.ID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}
