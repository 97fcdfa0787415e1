package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ytget/scrolly/internal/model"
)

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// RegisterResponse is returned by a successful registration
type RegisterResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user,omitempty"`
}

// Login authenticates with email and password
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (*LoginResponse, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", "", req)
	if err != nil {
		return nil, err
	}

	var response LoginResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, &ParseError{What: "login", Err: err}
	}
	if response.Token == "" || response.User == nil || response.User.ID == "" {
		return nil, &ParseError{What: "login", Err: fmt.Errorf("missing token or user id")}
	}

	c.logger.Info("logged in", "user_id", response.User.ID)
	return &response, nil
}

// Register creates a new account
func (c *Client) Register(ctx context.Context, req model.RegisterRequest) (*RegisterResponse, error) {
	body, err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", "", req)
	if err != nil {
		return nil, err
	}

	var response RegisterResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &response); err != nil {
			return nil, &ParseError{What: "register", Err: err}
		}
	}

	c.logger.Info("registered account", "email", req.Email, "with_picture", req.ProfilePic != "")
	return &response, nil
}
