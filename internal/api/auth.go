package api

import "context"

// AuthAPI covers /auth endpoints.
type AuthAPI struct {
	c *Client
}

func (c *Client) Auth() *AuthAPI { return &AuthAPI{c: c} }

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse is the backend's login payload. Role may arrive with a
// ROLE_ prefix; normalization happens in the session store, not here.
type LoginResponse struct {
	Token string `json:"token"`
	Role  string `json:"role"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

func (a *AuthAPI) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := a.c.validate.Struct(req); err != nil {
		return nil, err
	}
	var resp LoginResponse
	if err := a.c.postPublic(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (a *AuthAPI) ChangePassword(ctx context.Context, req ChangePasswordRequest) error {
	if err := a.c.validate.Struct(req); err != nil {
		return err
	}
	return a.c.put(ctx, "/auth/change-password", req, nil)
}
