package service_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"socialbid/internal/domain"
	"socialbid/internal/service"
	"socialbid/internal/store/sqlite"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		e := newEnv(t)
		resp, err := e.auth.Register(ctx, service.RegisterInput{
			Username: "newbie",
			Email:    "newbie@example.com",
			Password: "secret",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "bearer", resp.TokenType)
		assert.Equal(t, "newbie", resp.User.Username)
		assert.Equal(t, domain.RoleUser, resp.User.Role)
		// Display name falls back to the username when omitted.
		assert.Equal(t, "newbie", resp.User.DisplayName)
	})

	t.Run("RoleCannotBeChosen", func(t *testing.T) {
		e := newEnv(t)
		resp, err := e.auth.Register(ctx, service.RegisterInput{
			Username: "wannabe",
			Email:    "wannabe@example.com",
			Password: "secret",
		})
		require.NoError(t, err)

		stored, err := e.userRepo.GetByUsername(ctx, resp.User.Username)
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, domain.RoleUser, stored.Role)
	})

	t.Run("MissingFields", func(t *testing.T) {
		e := newEnv(t)
		_, err := e.auth.Register(ctx, service.RegisterInput{Username: "x", Email: "x@example.com"})
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("DuplicateUsername", func(t *testing.T) {
		e := newEnv(t)
		e.createUser(t, "taken", domain.RoleUser)

		before, err := e.userRepo.Count(ctx)
		require.NoError(t, err)

		_, err = e.auth.Register(ctx, service.RegisterInput{
			Username: "taken",
			Email:    "fresh@example.com",
			Password: "secret",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)

		after, err := e.userRepo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after, "failed registration must not insert")
	})

	t.Run("DuplicateEmail", func(t *testing.T) {
		e := newEnv(t)
		e.createUser(t, "taken", domain.RoleUser)

		before, err := e.userRepo.Count(ctx)
		require.NoError(t, err)

		_, err = e.auth.Register(ctx, service.RegisterInput{
			Username: "fresh",
			Email:    "taken@example.com",
			Password: "secret",
		})
		assert.ErrorIs(t, err, domain.ErrDuplicateIdentity)

		after, err := e.userRepo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	_, err := e.auth.Register(ctx, service.RegisterInput{
		Username: "mike",
		Email:    "mike@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		resp, err := e.auth.Login(ctx, service.LoginInput{Username: "mike", Password: "hunter2"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "mike", resp.User.Username)
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := e.auth.Login(ctx, service.LoginInput{Username: "mike", Password: "wrong"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("UnknownUser", func(t *testing.T) {
		// Indistinguishable from a wrong password.
		_, err := e.auth.Login(ctx, service.LoginInput{Username: "nobody", Password: "hunter2"})
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestLoginSeededAdmin(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	applied, err := sqlite.Seed(ctx, e.db)
	require.NoError(t, err)
	require.True(t, applied)

	resp, err := e.auth.Login(ctx, service.LoginInput{Username: "admin", Password: "admin123"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleAdmin, resp.User.Role)

	// The profile handed out must not leak the password in any form.
	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "admin123")
	assert.NotContains(t, string(raw), "password")
}
