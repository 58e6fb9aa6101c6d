package server

import (
	"github.com/gin-gonic/gin"

	apperrors "github.com/kbukum/sypnna/errors"
)

// RespondWithError writes err as the {"error": "..."} wire shape. Errors
// that are not an AppError become a generic 500.
func RespondWithError(c *gin.Context, err error) {
	appErr := apperrors.From(err)
	c.JSON(appErr.HTTPStatus, appErr.ToResponse())
}
