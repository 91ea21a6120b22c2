package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-booking/internal/apperror"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/policy"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

func TestSignupStoresHashAndIssuesToken(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	p, err := f.auth.Signup(ctx, nil, SignupInput{Email: " Guest@Example.com", Password: "secret1", Name: "Guest"})
	require.NoError(t, err)
	assert.Equal(t, "guest@example.com", p.User.Email)
	assert.Equal(t, model.RoleUser, p.User.Role)

	stored, err := f.stores.Users.GetByEmail(ctx, "guest@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.PasswordHash)
	assert.True(t, utils.VerifyPassword(stored.PasswordHash, "secret1"))

	userID, email, err := utils.ParseAccessToken(testSecret, p.Token)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, userID)
	assert.Equal(t, "guest@example.com", email)
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newFixture()
	f.signup(t, "dup@example.com", "")

	_, err := f.auth.Signup(context.Background(), nil, SignupInput{Email: "DUP@example.com", Password: "another", Name: "Dup"})
	requireCode(t, err, apperror.CodeConflict)
	assert.Equal(t, "User already exists", apperror.From(err).Message)
}

func TestSignupValidation(t *testing.T) {
	f := newFixture()
	_, err := f.auth.Signup(context.Background(), nil, SignupInput{Email: "not-an-email", Password: "123", Role: "root"})
	requireCode(t, err, apperror.CodeValidation)

	var fields []string
	for _, fe := range apperror.From(err).Fields {
		fields = append(fields, fe.Field)
	}
	assert.ElementsMatch(t, []string{"email", "password", "name", "role"}, fields)

	users, err := f.auth.Users(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestLoginErrorsAreIndistinguishable(t *testing.T) {
	f := newFixture()
	f.signup(t, "guest@example.com", "")
	ctx := context.Background()

	_, wrongPassword := f.auth.Login(ctx, nil, LoginInput{Email: "guest@example.com", Password: "wrong-one"})
	_, unknownEmail := f.auth.Login(ctx, nil, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	requireCode(t, wrongPassword, apperror.CodeInvalidCredentials)
	requireCode(t, unknownEmail, apperror.CodeInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownEmail.Error())

	p, err := f.auth.Login(ctx, nil, LoginInput{Email: "Guest@example.com", Password: "secret1"})
	require.NoError(t, err)
	ident := f.auth.Authenticate(ctx, p.Token)
	require.NotNil(t, ident)
	assert.Equal(t, p.User.ID, ident.ID)
}

func TestAuthenticate(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	admin := f.signup(t, "admin@example.com", model.RoleAdmin)
	assert.Equal(t, model.RoleAdmin, admin.Role)

	assert.Nil(t, f.auth.Authenticate(ctx, ""))
	assert.Nil(t, f.auth.Authenticate(ctx, "garbage"))

	forged, err := utils.NewAccessToken("other-secret", admin.ID, admin.Email, 60)
	require.NoError(t, err)
	assert.Nil(t, f.auth.Authenticate(ctx, forged.Token))

	ghost, err := utils.NewAccessToken(testSecret, "no-such-user", "ghost@example.com", 60)
	require.NoError(t, err)
	assert.Nil(t, f.auth.Authenticate(ctx, ghost.Token))
}

func TestMe(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	_, err := f.auth.Me(ctx, nil)
	requireCode(t, err, apperror.CodeUnauthenticated)

	ident := f.signup(t, "me@example.com", "")
	u, err := f.auth.Me(ctx, ident)
	require.NoError(t, err)
	assert.Equal(t, "me@example.com", u.Email)

	_, err = f.auth.Me(ctx, &policy.Identity{ID: "vanished", Role: model.RoleUser})
	requireCode(t, err, apperror.CodeUnauthenticated)
}

func TestUserLookup(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	ident := f.signup(t, "someone@example.com", "")

	u, err := f.auth.User(ctx, nil, ident.ID)
	require.NoError(t, err)
	assert.Equal(t, ident.ID, u.ID)

	missing, err := f.auth.User(ctx, nil, "missing")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
