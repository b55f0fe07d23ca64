package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/hlog"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/account-api/shared/utilities"
	"github.com/vasapolrittideah/account-api/shared/validation"
)

const maxBodyBytes = 1 << 20

type accountHTTPHandler struct {
	accountUsecase usecase.AccountUsecase
	validator      *validation.Validator
	logger         *zerolog.Logger
}

func newAccountHTTPHandler(
	accountUsecase usecase.AccountUsecase,
	validator *validation.Validator,
	logger *zerolog.Logger,
) *accountHTTPHandler {
	return &accountHTTPHandler{
		accountUsecase: accountUsecase,
		validator:      validator,
		logger:         logger,
	}
}

// decodeAndValidate reads a JSON body into dst and validates it.
// On failure it writes the error response and returns false.
func (h *accountHTTPHandler) decodeAndValidate(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		utilities.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := h.validator.Struct(dst); err != nil {
		var verr *validation.Error
		if errors.As(err, &verr) {
			utilities.WriteError(w, http.StatusUnprocessableEntity, verr.Fields)
			return false
		}

		h.internalError(w, r, err, "failed to validate request")
		return false
	}

	return true
}

func (h *accountHTTPHandler) internalError(w http.ResponseWriter, r *http.Request, err error, msg string) {
	logger := hlog.FromRequest(r)
	if logger.GetLevel() == zerolog.Disabled {
		logger = h.logger
	}

	logger.Error().Err(err).Msg(msg)
	utilities.WriteError(w, http.StatusInternalServerError, "something went wrong")
}
