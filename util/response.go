package util

import (
	"github.com/gin-gonic/gin"

	"caretrack/apperr"
)

type ErrorBody struct {
	Kind    apperr.Kind `json:"kind"`
	Message string      `json:"message"`
}

func SuccessResponse(data interface{}) gin.H {
	return gin.H{"success": true, "data": data}
}

func FailedResponse(err error) gin.H {
	return gin.H{
		"success": false,
		"error": ErrorBody{
			Kind:    apperr.KindOf(err),
			Message: apperr.MessageOf(err),
		},
	}
}

// RespondError writes the failure envelope with the status its kind maps to.
func RespondError(c *gin.Context, err error) {
	c.JSON(apperr.HTTPStatus(err), FailedResponse(err))
}
