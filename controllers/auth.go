package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"caretrack/apperr"
	"caretrack/services"
	"caretrack/util"
)

func Auth(router *gin.Engine) {
	auth := router.Group("/auth")
	auth.POST("/login", Login)
	auth.GET("/verify", Verify)
}

/*
* Bind the credential pair, authenticate, and hand back the session token
* with the account snapshot.
 */
func Login(c *gin.Context) {
	var in services.LoginInput
	if !bindJSON(c, &in) {
		return
	}

	result, err := services.Login(c.Request.Context(), in)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(result))
}

// Verify reads the bearer token itself so clients can probe a stored token
// without tripping the auth middleware.
func Verify(c *gin.Context) {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		util.RespondError(c, apperr.New(apperr.KindTokenInvalid, "no token provided"))
		return
	}

	user, err := services.VerifyAccount(c.Request.Context(), parts[1])
	if err != nil {
		util.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, util.SuccessResponse(gin.H{"user": user}))
}
