package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"caretrack/apperr"
	"caretrack/role"
	"caretrack/services"
	"caretrack/util"
)

const (
	CtxAccountID = "accountId"
	CtxLoginID   = "loginId"
	CtxRole      = "role"
	CtxUserID    = "userId"
)

// JWTAuth validates the bearer token and stashes the claim fields on the
// request context for downstream handlers.
func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			util.RespondError(c, apperr.New(apperr.KindTokenInvalid, "no token provided"))
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			util.RespondError(c, apperr.New(apperr.KindTokenInvalid, "malformed authorization header"))
			c.Abort()
			return
		}

		claims, err := services.VerifyToken(parts[1])
		if err != nil {
			util.RespondError(c, err)
			c.Abort()
			return
		}

		c.Set(CtxAccountID, claims.Subject)
		c.Set(CtxLoginID, claims.LoginID)
		c.Set(CtxRole, claims.Role)
		c.Set(CtxUserID, claims.UserID)
		c.Next()
	}
}

// RequireRole gates a route group to the given roles. Admin passes every gate.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		current := c.GetString(CtxRole)
		if current == role.Admin {
			c.Next()
			return
		}
		for _, r := range roles {
			if current == r {
				c.Next()
				return
			}
		}
		util.RespondError(c, apperr.New(apperr.KindForbidden, "role not permitted for this resource"))
		c.Abort()
	}
}
