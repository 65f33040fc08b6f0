package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/pec-events/portal/internal/model"
	"github.com/pec-events/portal/internal/store"
)

// Login authenticates a user by email and password and returns the user
// with a signed access token. Unknown emails and wrong passwords both
// map to ErrInvalidCredentials so the response does not leak which one
// it was.
func (p *Portal) Login(ctx context.Context, email, password string) (*model.LoginResponse, error) {
	user, err := p.store.Users().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("look up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := p.tokens.Generate(user)
	if err != nil {
		return nil, fmt.Errorf("generate token: %w", err)
	}

	p.logger.InfoContext(ctx, "user logged in", "user_id", user.ID, "role", user.Role)
	return &model.LoginResponse{User: user, Token: token}, nil
}
