package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/joshua-takyi/eventhub/internal/models"
)

type UserService struct {
	userRepo models.UserRepo
}

func NewUserService(userRepo models.UserRepo) *UserService {
	return &UserService{
		userRepo: userRepo,
	}
}

func (us *UserService) Login(ctx context.Context, input models.LoginInput) (*models.AuthPayload, error) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if err := models.Validate.Struct(input); err != nil {
		return nil, &models.ValidationError{Message: "Email and password are required"}
	}
	payload, err := us.userRepo.Login(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}
	return payload, nil
}

func (us *UserService) Register(ctx context.Context, input models.RegisterInput) (*models.AuthPayload, error) {
	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	if err := models.Validate.Struct(input); err != nil {
		return nil, models.FirstFieldError(err, "name", "email", "password", "confirmPassword", "acceptTerms")
	}
	payload, err := us.userRepo.Register(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("registration failed: %w", err)
	}
	return payload, nil
}

// Me resolves the user behind token. An empty token is unauthorized without
// a request.
func (us *UserService) Me(ctx context.Context, token string) (*models.User, error) {
	if token == "" {
		return nil, models.ErrUnauthorized
	}
	user, err := us.userRepo.Me(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return user, nil
}

// UpdateProfile sends the editable fields and merges the response into
// current, which is returned.
func (us *UserService) UpdateProfile(ctx context.Context, token string, current *models.User, input models.ProfileInput) (*models.User, error) {
	if token == "" || current == nil {
		return nil, models.ErrUnauthorized
	}
	input.Name = strings.TrimSpace(input.Name)
	input.Bio = strings.TrimSpace(input.Bio)
	input.Avatar = strings.TrimSpace(input.Avatar)
	if err := models.Validate.Struct(input); err != nil {
		return nil, models.FirstFieldError(err, "name", "bio", "avatar")
	}

	updated, err := us.userRepo.UpdateProfile(ctx, token, input)
	if err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	merged := *current
	merged.Merge(updated)
	return &merged, nil
}
