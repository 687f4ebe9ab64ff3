package httpstatus_test

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	"arogya/queue-service/internal/api/httpstatus"
	"arogya/queue-service/internal/constant"
)

func TestOf(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"unauthorized", constant.UnauthorizedErr, http.StatusForbidden},
		{"not found", constant.NotFoundErr, http.StatusNotFound},
		{"empty queue", constant.EmptyQueueErr, http.StatusNotFound},
		{"duplicate token", constant.DuplicateActiveTokenErr, http.StatusBadRequest},
		{"invalid transition", constant.InvalidTransitionErr, http.StatusBadRequest},
		{"invalid argument", constant.InvalidArgumentErr, http.StatusBadRequest},
		{"unknown", errors.New("disk on fire"), http.StatusInternalServerError},
		{"wrapped sentinel", errors.Wrap(constant.EmptyQueueErr, "call next"), http.StatusNotFound},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, httpstatus.Of(tc.err))
		})
	}
}
