package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pec-events/portal/internal/model"
	"github.com/pec-events/portal/internal/service"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		p, _ := newPortal(t, true)
		resp, err := p.Login(ctx, "alice@pec.ac.in", testPassword)
		require.NoError(t, err)
		assert.Equal(t, "student1", resp.User.ID)
		assert.Equal(t, model.RoleStudent, resp.User.Role)
		assert.NotEmpty(t, resp.Token)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		p, _ := newPortal(t, true)
		_, err := p.Login(ctx, "alice@pec.ac.in", "wrong")
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		p, _ := newPortal(t, true)
		_, err := p.Login(ctx, "ghost@pec.ac.in", testPassword)
		assert.ErrorIs(t, err, service.ErrInvalidCredentials)
	})
}
