package models

import (
	"context"
	"fmt"
	"net/http"
)

type UserRepo interface {
	Login(ctx context.Context, input LoginInput) (*AuthPayload, error)
	Register(ctx context.Context, input RegisterInput) (*AuthPayload, error)
	Me(ctx context.Context, token string) (*User, error)
	UpdateProfile(ctx context.Context, token string, input ProfileInput) (*User, error)
}

func (r *APIRepo) Login(ctx context.Context, input LoginInput) (*AuthPayload, error) {
	res, err := r.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/auth/login",
		path:   "/api/auth/login",
		body:   input,
	})
	if err != nil {
		return nil, err
	}
	return authPayload(res)
}

func (r *APIRepo) Register(ctx context.Context, input RegisterInput) (*AuthPayload, error) {
	res, err := r.do(ctx, request{
		method: http.MethodPost,
		route:  "/api/auth/register",
		path:   "/api/auth/register",
		body:   input,
	})
	if err != nil {
		return nil, err
	}
	return authPayload(res)
}

func (r *APIRepo) Me(ctx context.Context, token string) (*User, error) {
	res, err := r.do(ctx, request{
		method: http.MethodGet,
		route:  "/api/auth/me",
		path:   "/api/auth/me",
		token:  token,
	})
	if err != nil {
		return nil, err
	}
	return userFrom(res)
}

func (r *APIRepo) UpdateProfile(ctx context.Context, token string, input ProfileInput) (*User, error) {
	res, err := r.do(ctx, request{
		method: http.MethodPut,
		route:  "/api/auth/profile",
		path:   "/api/auth/profile",
		token:  token,
		body:   input,
	})
	if err != nil {
		return nil, err
	}
	return userFrom(res)
}

// authPayload accepts both the flat {token, user} shape and one nested
// under data.
func authPayload(res *ApiResponse) (*AuthPayload, error) {
	payload := &AuthPayload{Token: res.Token, User: res.User}
	if payload.Token == "" || payload.User == nil {
		nested := &AuthPayload{}
		if err := res.DecodeData(nested); err != nil {
			return nil, fmt.Errorf("failed to decode auth payload: %w", err)
		}
		if payload.Token == "" {
			payload.Token = nested.Token
		}
		if payload.User == nil {
			payload.User = nested.User
		}
	}
	if payload.Token == "" {
		return nil, fmt.Errorf("auth response carried no token")
	}
	return payload, nil
}

// userFrom reads the user from either the user member or data.
func userFrom(res *ApiResponse) (*User, error) {
	if res.User != nil {
		return res.User, nil
	}
	user := &User{}
	if err := res.DecodeData(user); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	if user.ID == "" && user.Email == "" {
		return nil, fmt.Errorf("response carried no user")
	}
	return user, nil
}
