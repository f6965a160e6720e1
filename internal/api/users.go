package api

import (
	"context"
	"fmt"
)

// UsersAPI covers the staff management endpoints.
type UsersAPI struct {
	c *Client
}

func (c *Client) Users() *UsersAPI { return &UsersAPI{c: c} }

type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
	Active   bool   `json:"active"`
}

type UserInput struct {
	Username string `json:"username" validate:"required"`
	FullName string `json:"fullName" validate:"required"`
	Password string `json:"password,omitempty" validate:"omitempty,min=8"`
	Role     string `json:"role" validate:"required,oneof=ADMIN CHEF INVENTORY_MANAGER WAITER"`
	Active   bool   `json:"active"`
}

func (a *UsersAPI) List(ctx context.Context) ([]User, error) {
	var out []User
	if err := a.c.get(ctx, "/users", &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *UsersAPI) Get(ctx context.Context, id int64) (*User, error) {
	var out User
	if err := a.c.get(ctx, fmt.Sprintf("/users/%d", id), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsersAPI) Create(ctx context.Context, in UserInput) (*User, error) {
	if err := a.c.validate.Struct(in); err != nil {
		return nil, err
	}
	var out User
	if err := a.c.post(ctx, "/users", in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsersAPI) Update(ctx context.Context, id int64, in UserInput) (*User, error) {
	if err := a.c.validate.Struct(in); err != nil {
		return nil, err
	}
	var out User
	if err := a.c.put(ctx, fmt.Sprintf("/users/%d", id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *UsersAPI) Delete(ctx context.Context, id int64) error {
	return a.c.delete(ctx, fmt.Sprintf("/users/%d", id))
}
