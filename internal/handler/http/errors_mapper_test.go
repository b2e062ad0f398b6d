package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-quote-keeper/internal/service"
	"github.com/MKhiriev/go-quote-keeper/internal/store"
)

func TestStatusFromError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: %w", service.ErrValidation, errors.New("name: cannot be blank")), http.StatusBadRequest},
		{fmt.Errorf("%w: %w", service.ErrUnauthorized, service.ErrTokenInvalid), http.StatusUnauthorized},
		{fmt.Errorf("%w: %w", service.ErrForbidden, service.ErrDepthLimitExceeded), http.StatusForbidden},
		{fmt.Errorf("%w: %w", service.ErrNotFound, store.ErrFolderNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: %w", service.ErrConflict, service.ErrFolderNotEmpty), http.StatusConflict},
		{fmt.Errorf("%w: %w", service.ErrDataIntegrity, service.ErrDanglingParent), http.StatusInternalServerError},
		{fmt.Errorf("walk: %w", context.DeadlineExceeded), http.StatusGatewayTimeout},
		{store.ErrFolderNotFound, http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.want, statusFromError(tt.err))
		})
	}
}
