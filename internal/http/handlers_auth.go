package http

import (
	"net/http"

	applog "focusflow/internal/log"
)

type credentialsRequest struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sessionView struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Admin  bool   `json:"admin"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	tokens, _, err := s.auth.Login(r.Context(), sanitizeInput(req.Email), req.Password)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	sess, err := s.sessions.Login(tokens.AccessToken, tokens.RefreshToken)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to establish session after login",
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not establish session")
		return
	}

	writeJSON(w, http.StatusOK, sessionViewOf(sess.ID, sess.Name, sess.Email, sess.Role, sess.IsAdmin()))
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "name, email and password are required")
		return
	}

	tokens, _, err := s.auth.Register(r.Context(), sanitizeInput(req.Name), sanitizeInput(req.Email), req.Password)
	if err != nil {
		writeAPIError(w, err)
		return
	}

	// The register response carries no refresh token, so this session
	// will not survive access token expiry. See the auth client.
	sess, err := s.sessions.Login(tokens.AccessToken, tokens.RefreshToken)
	if err != nil {
		s.logger.ErrorContext(r.Context(), "Failed to establish session after registration",
			applog.FieldError, err)
		writeError(w, http.StatusInternalServerError, "could not establish session")
		return
	}

	writeJSON(w, http.StatusCreated, sessionViewOf(sess.ID, sess.Name, sess.Email, sess.Role, sess.IsAdmin()))
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Logout(); err != nil {
		s.logger.WarnContext(r.Context(), "Token cleanup failed during logout",
			applog.FieldError, err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.Current()
	if sess == nil {
		writeError(w, http.StatusUnauthorized, "not authenticated")
		return
	}
	writeJSON(w, http.StatusOK, sessionViewOf(sess.ID, sess.Name, sess.Email, sess.Role, sess.IsAdmin()))
}

func sessionViewOf(id, name, email, role string, admin bool) sessionView {
	return sessionView{UserID: id, Name: name, Email: email, Role: role, Admin: admin}
}
