package controllers

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"caretrack/apperr"
	"caretrack/util"
)

func bindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		util.RespondError(c, apperr.Wrap(apperr.KindValidation, "invalid request: "+err.Error(), err))
		return false
	}
	return true
}

// parseNumber reads a human-facing entity number from a path parameter.
func parseNumber(c *gin.Context, param string) (int64, bool) {
	n, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || n <= 0 {
		util.RespondError(c, apperr.New(apperr.KindValidation, "invalid "+param+": must be a positive number"))
		return 0, false
	}
	return n, true
}
