package handler

import (
	"errors"
	"net/http"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/payload"
	"github.com/vasapolrittideah/account-api/services/account-service/internal/usecase"
	"github.com/vasapolrittideah/account-api/shared/utilities"
)

func (h *accountHTTPHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req payload.SignupRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	id, err := h.accountUsecase.Signup(r.Context(), usecase.SignupParams{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrUserAlreadyExists):
			utilities.WriteError(w, http.StatusBadRequest, "User already exists")
		default:
			h.internalError(w, r, err, "failed to sign up")
		}
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.SignupResponse{
		Message: "User created successfully",
		ID:      id,
	})
}

func (h *accountHTTPHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req payload.LoginRequest
	if !h.decodeAndValidate(w, r, &req) {
		return
	}

	result, err := h.accountUsecase.Login(r.Context(), usecase.LoginParams{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrInvalidCredentials):
			utilities.WriteError(w, http.StatusBadRequest, "Invalid email or password")
		default:
			h.internalError(w, r, err, "failed to log in")
		}
		return
	}

	utilities.WriteJSON(w, http.StatusOK, payload.LoginResponse{
		AccessToken: result.AccessToken,
		TokenType:   result.TokenType,
		User: payload.UserInfo{
			Email:     result.User.Email,
			FirstName: result.User.FirstName,
			LastName:  result.User.LastName,
		},
	})
}
