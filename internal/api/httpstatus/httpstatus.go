// Package httpstatus maps domain errors onto HTTP response codes so every
// handler reports the taxonomy the same way.
package httpstatus

import (
	"net/http"

	"github.com/pkg/errors"

	"arogya/queue-service/internal/constant"
)

func Of(err error) int {
	switch {
	case errors.Is(err, constant.UnauthorizedErr):
		return http.StatusForbidden
	case errors.Is(err, constant.NotFoundErr),
		errors.Is(err, constant.EmptyQueueErr):
		return http.StatusNotFound
	case errors.Is(err, constant.DuplicateActiveTokenErr),
		errors.Is(err, constant.InvalidTransitionErr),
		errors.Is(err, constant.InvalidArgumentErr):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
