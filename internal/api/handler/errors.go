package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/feedbackhub/feedbackhub/internal/domain"
	"github.com/feedbackhub/feedbackhub/internal/pkg/logger"
)

type ErrorCode string

const (
	CodeValidation         ErrorCode = "VALIDATION_ERROR"
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"
	CodeUserInactive       ErrorCode = "USER_INACTIVE"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeNotFound           ErrorCode = "NOT_FOUND"
	CodeEmailExists        ErrorCode = "EMAIL_EXISTS"
	CodeTeamExists         ErrorCode = "TEAM_EXISTS"
	CodeTypeExists         ErrorCode = "TYPE_EXISTS"
	CodeInternal           ErrorCode = "INTERNAL_ERROR"
)

type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
}

func WriteError(w http.ResponseWriter, err error, logger *logger.Logger) {
	status, response := mapError(err)

	if status < http.StatusInternalServerError {
		logger.Warn("domain error",
			"error", err.Error(),
			"code", response.Error.Code,
		)
	} else {
		logger.Error("unexpected error",
			"error", err.Error(),
		)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(response)
}

func mapError(err error) (int, ErrorResponse) {
	var vErrs validation.Errors
	if errors.As(err, &vErrs) {
		return http.StatusBadRequest, errorBody(CodeValidation, vErrs.Error())
	}

	switch {
	case errors.Is(err, domain.ErrInvalidFeedbackType):
		return http.StatusBadRequest, errorBody(CodeValidation, err.Error())

	case errors.Is(err, domain.ErrInvalidCredentials):
		// unknown email and bad password share this exact body
		return http.StatusUnauthorized, errorBody(CodeInvalidCredentials, domain.ErrInvalidCredentials.Error())

	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, errorBody(CodeInvalidToken, domain.ErrInvalidToken.Error())

	case errors.Is(err, domain.ErrUserInactive):
		return http.StatusForbidden, errorBody(CodeUserInactive, domain.ErrUserInactive.Error())

	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, errorBody(CodeForbidden, domain.ErrForbidden.Error())

	case errors.Is(err, domain.ErrEmailExists):
		return http.StatusConflict, errorBody(CodeEmailExists, domain.ErrEmailExists.Error())

	case errors.Is(err, domain.ErrTeamExists):
		return http.StatusConflict, errorBody(CodeTeamExists, domain.ErrTeamExists.Error())

	case errors.Is(err, domain.ErrTypeExists):
		return http.StatusConflict, errorBody(CodeTypeExists, domain.ErrTypeExists.Error())

	case errors.Is(err, domain.ErrUserNotFound),
		errors.Is(err, domain.ErrTeamNotFound),
		errors.Is(err, domain.ErrFeedbackNotFound),
		errors.Is(err, domain.ErrTypeNotFound),
		errors.Is(err, domain.ErrSettingNotFound):
		return http.StatusNotFound, errorBody(CodeNotFound, err.Error())

	default:
		// never leak internals
		return http.StatusInternalServerError, errorBody(CodeInternal, "internal server error")
	}
}

func errorBody(code ErrorCode, message string) ErrorResponse {
	return ErrorResponse{Error: ErrorDetail{Code: code, Message: message}}
}
