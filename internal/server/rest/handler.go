package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/codereviewer/internal/common"
)

const (
	msgFieldsRequired = "All fields required"
	msgEmailTaken     = "Email already registered"
	msgBadCredentials = "Invalid credentials"
	msgReviewFailed   = "Failed to review code."
	msgUserNotFound   = "User not found"
	msgBadBody        = "Invalid request body"
	msgServerError    = "Server error"
)

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type reviewRequest struct {
	Code  string `json:"code"`
	Model string `json:"model"`
}

type reviewResponse struct {
	Review string `json:"review"`
}

func (s *HTTPServer) register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}

	profile, err := s.users.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			writeError(w, http.StatusBadRequest, msgFieldsRequired)
		case errors.Is(err, common.ErrConflict):
			writeError(w, http.StatusBadRequest, msgEmailTaken)
		default:
			s.logger.Error(r.Context(), "register", "error", err)
			writeError(w, http.StatusInternalServerError, msgServerError)
		}
		return
	}

	s.logger.Info(r.Context(), "Registered", "id", profile.ID)
	writeJSON(w, http.StatusCreated, profile)
}

func (s *HTTPServer) login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}

	token, err := s.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrValidation):
			writeError(w, http.StatusBadRequest, msgFieldsRequired)
		case errors.Is(err, common.ErrUnauthorized):
			writeError(w, http.StatusBadRequest, msgBadCredentials)
		default:
			s.logger.Error(r.Context(), "login", "error", err)
			writeError(w, http.StatusInternalServerError, msgServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

func (s *HTTPServer) review(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, msgBadBody)
		return
	}

	text, err := s.reviews.Review(r.Context(), req.Code, req.Model)
	if err != nil {
		s.logger.Error(r.Context(), "review", "error", err)
		writeError(w, http.StatusInternalServerError, msgReviewFailed)
		return
	}

	writeJSON(w, http.StatusOK, reviewResponse{Review: text})
}

func (s *HTTPServer) listModels(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.reviews.Models())
}

func (s *HTTPServer) profile(w http.ResponseWriter, r *http.Request) {
	id, ok := IdentityFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "No token provided")
		return
	}

	profile, err := s.users.GetProfile(r.Context(), id.UserID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			writeError(w, http.StatusNotFound, msgUserNotFound)
			return
		}
		s.logger.Error(r.Context(), "profile", "error", err)
		writeError(w, http.StatusInternalServerError, msgServerError)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

func (s *HTTPServer) ping(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}
