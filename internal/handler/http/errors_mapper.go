package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/MKhiriev/go-quote-keeper/internal/app"
	"github.com/MKhiriev/go-quote-keeper/internal/logger"
	"github.com/MKhiriev/go-quote-keeper/internal/service"
	"github.com/MKhiriev/go-quote-keeper/internal/utils"
)

var errorStatusMap = map[error]int{
	service.ErrValidation:    http.StatusBadRequest,
	service.ErrUnauthorized:  http.StatusUnauthorized,
	service.ErrForbidden:     http.StatusForbidden,
	service.ErrNotFound:      http.StatusNotFound,
	service.ErrConflict:      http.StatusConflict,
	service.ErrDataIntegrity: http.StatusInternalServerError,

	context.DeadlineExceeded: http.StatusGatewayTimeout,
}

func statusFromError(err error) int {
	for target, status := range errorStatusMap {
		if errors.Is(err, target) {
			return status
		}
	}
	return http.StatusInternalServerError
}

// writeServiceError responds with the status matching err's kind. Client
// errors carry err's message; server errors are logged and answered with a
// fixed message.
func writeServiceError(w http.ResponseWriter, r *http.Request, funcName string, err error) {
	log := logger.FromRequest(r)
	status := statusFromError(err)

	switch {
	case status == http.StatusGatewayTimeout:
		log.Err(err).Str("func", funcName).Msg("request timed out")
		utils.WriteError(w, app.MsgRequestTimeout, status)
	case status >= http.StatusInternalServerError:
		log.Err(err).Str("func", funcName).Msg("request failed")
		utils.WriteError(w, app.MsgInternalServerError, status)
	default:
		log.Warn().Err(err).Str("func", funcName).Int("status", status).Send()
		utils.WriteError(w, err.Error(), status)
	}
}
