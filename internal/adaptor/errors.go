package adaptor

import (
	"errors"
	"net/http"

	"travel-agency/internal/usecase"
	"travel-agency/pkg/utils"

	"go.uber.org/zap"
)

// writeServiceError maps usecase error categories to HTTP statuses.
// Messages of client faults are returned as is, server faults never are.
func writeServiceError(w http.ResponseWriter, log *zap.Logger, err error, operation string) {
	errMsg := err.Error()

	switch {
	case errors.Is(err, usecase.ErrNotFound):
		log.Warn(operation+" failed - not found", zap.Error(err))
		utils.ResponseNotFound(w, errMsg)

	case errors.Is(err, usecase.ErrValidation):
		log.Warn(operation+" validation failed", zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrInvalidInput),
		errors.Is(err, usecase.ErrInvalidState):
		log.Warn("Invalid input for "+operation, zap.Error(err))
		utils.ResponseBadRequest(w, errMsg, nil)

	case errors.Is(err, usecase.ErrInsufficientSpots),
		errors.Is(err, usecase.ErrAlreadyExists):
		log.Warn(operation+" failed - conflict", zap.Error(err))
		utils.ResponseConflict(w, errMsg)

	case errors.Is(err, usecase.ErrInvalidCredentials):
		log.Warn(operation+" failed - invalid credentials", zap.Error(err))
		utils.ResponseUnauthorized(w, errMsg)

	case errors.Is(err, usecase.ErrForbidden):
		log.Warn(operation+" failed - forbidden", zap.Error(err))
		utils.ResponseForbidden(w, errMsg)

	case errors.Is(err, usecase.ErrUpstream):
		log.Error(operation+" failed - upstream", zap.Error(err))
		utils.ResponseBadGateway(w, errMsg)

	case errors.Is(err, usecase.ErrUnavailable):
		log.Warn(operation+" failed - unavailable", zap.Error(err))
		utils.ResponseServiceUnavailable(w, errMsg)

	default:
		log.Error("Failed to "+operation, zap.Error(err), zap.String("operation", operation))
		utils.ResponseInternalError(w, "Internal server error")
	}
}
