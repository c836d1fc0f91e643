package api

import (
	"context"
	"net/http"
)

// TokenPair is the credential pair returned by the auth endpoints.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// User is the profile payload returned alongside tokens.
type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthService talks to /auth. It satisfies session.Refresher.
type AuthService struct {
	c *Client
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

func (s *AuthService) Login(ctx context.Context, email, password string) (TokenPair, User, error) {
	var resp loginResponse
	err := s.c.do(ctx, http.MethodPost, "/auth/login", nil, loginRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return TokenPair{}, User{}, err
	}
	return TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, resp.User, nil
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerResponse struct {
	// The register endpoint returns a single token and no refresh token.
	// A session started from registration therefore cannot survive access
	// token expiry and must log in again.
	Token string `json:"token"`
	User  User   `json:"user"`
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (TokenPair, User, error) {
	var resp registerResponse
	err := s.c.do(ctx, http.MethodPost, "/auth/register", nil, registerRequest{Name: name, Email: email, Password: password}, &resp)
	if err != nil {
		return TokenPair{}, User{}, err
	}
	return TokenPair{AccessToken: resp.Token}, resp.User, nil
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// Refresh exchanges a refresh token for a new pair.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (string, string, error) {
	var resp TokenPair
	err := s.c.do(ctx, http.MethodPost, "/auth/refresh", nil, refreshRequest{RefreshToken: refreshToken}, &resp)
	if err != nil {
		return "", "", err
	}
	return resp.AccessToken, resp.RefreshToken, nil
}
