package v1

import (
	"errors"

	"go-jobboard-backend/pkg/apperror"
	"go-jobboard-backend/pkg/validation"

	"github.com/gin-gonic/gin"
)

// bindBody validates the request body against schema and decodes it into
// dst. On failure the error is attached to c and false is returned.
func bindBody(c *gin.Context, schemas *validation.Registry, schema string, dst any) bool {
	err := schemas.Bind(schema, c.Request.Body, dst)
	if err == nil {
		return true
	}

	var verr *validation.Error
	if errors.As(err, &verr) {
		c.Error(apperror.Validation("The request body is invalid.", verr.Fields))
	} else {
		c.Error(apperror.Internal(err))
	}
	return false
}
