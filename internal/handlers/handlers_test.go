package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/YADAVSOMURAMYAS/Stackit/internal/service"
)

func TestRespondErrorMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name string
		err  error
		code int
	}{
		{"not found", service.ErrNotFound, http.StatusNotFound},
		{"not authorized", service.ErrNotAuthorized, http.StatusForbidden},
		{"self vote", service.ErrSelfVote, http.StatusBadRequest},
		{"duplicate answer", service.ErrDuplicateAnswer, http.StatusBadRequest},
		{"mismatch", service.ErrMismatch, http.StatusBadRequest},
		{"conflict", service.ErrConflict, http.StatusConflict},
		{"transient store", service.ErrTransientStore, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)

			respondError(c, tc.err)
			assert.Equal(t, tc.code, w.Code)
		})
	}
}

func TestRespondErrorWrapped(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	wrapped := errors.Join(errors.New("context"), service.ErrNotFound)
	respondError(c, wrapped)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
