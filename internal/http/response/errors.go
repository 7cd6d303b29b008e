package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/andrewdionne/polishpages/internal/pipeline"
	"github.com/andrewdionne/polishpages/internal/set"
)

// RespondDomainError translates pipeline and store errors into the
// wire envelope.
func RespondDomainError(c *gin.Context, err error) {
	var (
		validationErr *pipeline.ValidationError
		collisionErr  *set.SlugCollisionError
	)
	switch {
	case errors.Is(err, set.ErrSetNotFound):
		RespondError(c, http.StatusNotFound, "set_not_found", err)
	case errors.Is(err, pipeline.ErrSetAlreadyExists):
		RespondError(c, http.StatusConflict, "set_exists", err)
	case errors.As(err, &collisionErr):
		RespondError(c, http.StatusConflict, "slug_collision", err)
	case errors.As(err, &validationErr):
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
	default:
		RespondError(c, http.StatusInternalServerError, "internal", err)
	}
}
