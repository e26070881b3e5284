package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophstore/internal/common"
)

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusBadRequest, "Invalid request body.")
		return
	}

	_, err := s.users.Register(r.Context(), req.Email, req.Password)
	if err != nil {
		s.logger.Error(r.Context(), err.Error())
		if errors.Is(err, common.ErrorValidation) || errors.Is(err, common.ErrorEmailTaken) {
			writeFailure(w, http.StatusBadRequest, err.Error())
			return
		}
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.logger.Info(r.Context(), "Registered", "email", req.Email)
	writeSuccess(w, "User registered successfully.")
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, http.StatusUnauthorized, "Invalid request body.")
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			writeFailure(w, http.StatusUnauthorized, err.Error())
			return
		}
		s.logger.Error(r.Context(), err.Error())
		writeFailure(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		Envelope: Envelope{Success: true, Message: "Login successful."},
		Token:    token,
	})
}
