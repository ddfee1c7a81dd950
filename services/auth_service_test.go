package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr(s string) *string { return &s }

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Username: "alice",
		Password: "correct horse",
		FullName: "Alice Smith",
		Email:    "alice@example.com",
	}
}

func TestRegister(t *testing.T) {
	t.Run("creates user and strips password hash", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo)

		input := validRegisterInput()
		input.Gender = ptr("Female")
		input.Location = ptr("  Berlin  ")

		user, err := svc.Register(context.Background(), input)
		require.NoError(t, err)
		assert.NotZero(t, user.ID)
		assert.Empty(t, user.PasswordHash)
		require.NotNil(t, user.Gender)
		assert.Equal(t, "Female", *user.Gender)
		require.NotNil(t, user.Location)
		assert.Equal(t, "Berlin", *user.Location)

		stored, err := repo.GetByID(context.Background(), user.ID)
		require.NoError(t, err)
		assert.NotEmpty(t, stored.PasswordHash)
		assert.NotEqual(t, input.Password, stored.PasswordHash)
	})

	t.Run("duplicate username is a conflict", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo())

		_, err := svc.Register(context.Background(), validRegisterInput())
		require.NoError(t, err)

		second := validRegisterInput()
		second.Email = "other@example.com"
		_, err = svc.Register(context.Background(), second)
		assert.ErrorIs(t, err, ErrUsernameTaken)
	})

	t.Run("duplicate email is a conflict", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo())

		_, err := svc.Register(context.Background(), validRegisterInput())
		require.NoError(t, err)

		second := validRegisterInput()
		second.Username = "bob"
		_, err = svc.Register(context.Background(), second)
		assert.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("validation", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo())
		ctx := context.Background()

		cases := []struct {
			name   string
			mutate func(*RegisterInput)
			want   error
		}{
			{"blank username", func(in *RegisterInput) { in.Username = "   " }, ErrUsernameRequired},
			{"blank full name", func(in *RegisterInput) { in.FullName = "" }, ErrFullNameRequired},
			{"short password", func(in *RegisterInput) { in.Password = "1234567" }, ErrPasswordTooShort},
			{"bad email", func(in *RegisterInput) { in.Email = "not-an-email" }, ErrInvalidEmail},
			{"unknown gender", func(in *RegisterInput) { in.Gender = ptr("Attack Helicopter") }, ErrInvalidGender},
			{"unknown age group", func(in *RegisterInput) { in.AgeGroup = ptr("12-17") }, ErrInvalidAgeGroup},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				input := validRegisterInput()
				tc.mutate(&input)
				_, err := svc.Register(ctx, input)
				assert.ErrorIs(t, err, tc.want)
			})
		}
	})

	t.Run("blank optional enums are stored as null", func(t *testing.T) {
		svc := NewAuthService(newFakeUserRepo())

		input := validRegisterInput()
		input.Gender = ptr("   ")
		input.AgeGroup = ptr("")

		user, err := svc.Register(context.Background(), input)
		require.NoError(t, err)
		assert.Nil(t, user.Gender)
		assert.Nil(t, user.AgeGroup)
	})
}

func TestLogin(t *testing.T) {
	repo := newFakeUserRepo()
	svc := NewAuthService(repo)

	input := validRegisterInput()
	_, err := svc.Register(context.Background(), input)
	require.NoError(t, err)

	t.Run("valid credentials", func(t *testing.T) {
		user, err := svc.Login(context.Background(), LoginInput{Username: input.Username, Password: input.Password})
		require.NoError(t, err)
		assert.Equal(t, input.Username, user.Username)
		assert.Empty(t, user.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{Username: input.Username, Password: "wrong password"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	// Unknown users fail with the same error as bad passwords so the
	// response does not leak which usernames exist.
	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Login(context.Background(), LoginInput{Username: "nobody", Password: input.Password})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}
