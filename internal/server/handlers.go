package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/mosfeq/sportslink/pkg/errors"
)

// credentialsRequest is the body of the auth endpoints.
type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// tokenResponse carries a freshly issued session token.
type tokenResponse struct {
	Token string `json:"token"`
}

// errorResponse is the uniform error body. The message is what clients
// surface verbatim.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, errorResponse{Error: message})
}

// handleRegister creates an account and signs the caller in.
func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := s.accounts.CreateAccount(r.Context(), req.Email, req.Password); err != nil {
		status := http.StatusBadRequest
		if errors.IsConflict(err) {
			status = http.StatusConflict
		}
		s.writeError(w, status, err.Error())
		return
	}

	token, err := s.issueToken(req.Email)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	s.logger.Info().Str("email", req.Email).Msg("Account registered")
	s.writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

// handleSignIn verifies credentials and issues a session token. A bad
// pair always answers with the fixed "Incorrect Credentials" message.
func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	var req credentialsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if !s.accounts.Verify(req.Email, req.Password) {
		s.writeError(w, http.StatusUnauthorized, errors.ErrIncorrectCredentials.Error())
		return
	}

	token, err := s.issueToken(req.Email)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, "could not issue token")
		return
	}
	s.writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

// requireToken authenticates a bearer token from the Authorization
// header or, for websocket dials, the token query parameter.
func (s *Server) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString := ""
		if header := r.Header.Get("Authorization"); strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		} else {
			tokenString = r.URL.Query().Get("token")
		}
		if tokenString == "" {
			s.writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		if _, err := s.verifyToken(tokenString); err != nil {
			s.writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// documentPath extracts the store path from a /db/ request URL. Path
// segments are URL-escaped on the wire; the store path uses "/".
func documentPath(r *http.Request) (string, error) {
	raw := strings.TrimPrefix(r.URL.EscapedPath(), "/db/")
	segments := strings.Split(raw, "/")
	decoded := make([]string, 0, len(segments))
	for _, segment := range segments {
		if segment == "" {
			continue
		}
		plain, err := url.PathUnescape(segment)
		if err != nil {
			return "", err
		}
		decoded = append(decoded, plain)
	}
	if len(decoded) == 0 {
		return "", errors.NewValidationError("path", raw, "empty document path")
	}
	return strings.Join(decoded, "/"), nil
}

// handleDocument serves GET/PUT/DELETE on a store document.
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	path, err := documentPath(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	switch r.Method {
	case http.MethodGet:
		data, err := s.store.Get(r.Context(), path)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.Header().Set("Content-Type", "application/json")
		if _, err := w.Write(data); err != nil {
			s.logger.Error().Err(err).Str("path", path).Msg("Failed to write document")
		}

	case http.MethodPut:
		var doc any
		if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
			s.writeError(w, http.StatusBadRequest, "malformed document body")
			return
		}
		if err := s.store.Set(r.Context(), path, doc); err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	case http.MethodDelete:
		if err := s.store.Delete(r.Context(), path); err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		s.writeError(w, http.StatusMethodNotAllowed, "unsupported method")
	}
}
