package main

import (
	"bytes"
	"context"
	"testing"

	"sidifa/portal/config"
	"sidifa/portal/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T, mock *testutils.MockAPI) (*app, *bytes.Buffer) {
	t.Helper()

	conf := config.Default()
	conf.API.URL = mock.URL
	var out bytes.Buffer
	a, err := newApp(conf, &out)
	require.NoError(t, err)
	return a, &out
}

func TestSignupCommand(t *testing.T) {
	mock := testutils.NewMockAPI(t, testutils.WithAutoVerify())
	a, out := newTestApp(t, mock)
	ctx := context.Background()

	err := a.run(ctx, "signup", []string{
		"-name", "Dr. Sari",
		"-email", "sari@example.com",
		"-password", "rahasia123",
		"-confirm-password", "rahasia123",
		"-phone", "081234567890",
		"-spesialis", "Klinis",
		"-lokasi", "Bandung",
	})
	require.NoError(t, err)
	assert.Contains(t, out.String(), "redirect: /psikolog")
	assert.Contains(t, out.String(), "Pendaftaran berhasil!")

	profile, err := a.store.UserProfile(ctx)
	require.NoError(t, err)
	require.NotNil(t, profile)
	assert.Equal(t, "sari@example.com", profile.Email)
}

func TestSignupCommandPasswordMismatch(t *testing.T) {
	mock := testutils.NewMockAPI(t)
	a, _ := newTestApp(t, mock)

	err := a.run(context.Background(), "signup", []string{"-password", "a", "-confirm-password", "b"})
	assert.EqualError(t, err, "Password dan konfirmasi password tidak sama")
}

func TestMeAndLogoutCommands(t *testing.T) {
	mock := testutils.NewMockAPI(t, testutils.WithSeedUser("kader@example.com", "kader", "verified"))
	a, out := newTestApp(t, mock)
	ctx := context.Background()

	err := a.run(ctx, "me", []string{"-email", "kader@example.com", "-password", testutils.DefaultPassword})
	require.NoError(t, err)
	assert.Contains(t, out.String(), `"role": "kader"`)

	authed, err := a.store.AuthStatus(ctx)
	require.NoError(t, err)
	assert.True(t, authed)

	require.NoError(t, a.run(ctx, "logout", nil))
	authed, err = a.store.AuthStatus(ctx)
	require.NoError(t, err)
	assert.False(t, authed)

	err = a.run(ctx, "me", nil)
	assert.EqualError(t, err, "Token tidak ditemukan")
}

func TestLoginCommandError(t *testing.T) {
	mock := testutils.NewMockAPI(t)
	a, _ := newTestApp(t, mock)

	err := a.run(context.Background(), "login", []string{"-email", "nobody@example.com", "-password", "x"})
	assert.EqualError(t, err, "Email atau password salah")
}

func TestResetPasswordCommand(t *testing.T) {
	mock := testutils.NewMockAPI(t, testutils.WithSeedUser("p@example.com", "psikolog", "verified"))
	a, _ := newTestApp(t, mock)
	ctx := context.Background()

	token, err := mock.Server.IssueResetToken("p@example.com")
	require.NoError(t, err)

	require.NoError(t, a.run(ctx, "reset-password", []string{"-token", token, "-password", "baru12345"}))
	require.NoError(t, a.run(ctx, "login", []string{"-email", "p@example.com", "-password", "baru12345"}))
}

func TestCSRFCommand(t *testing.T) {
	mock := testutils.NewMockAPI(t)
	a, out := newTestApp(t, mock)

	require.NoError(t, a.run(context.Background(), "csrf", nil))
	assert.Contains(t, out.String(), "csrfToken: ")
	assert.Contains(t, out.String(), "cookie _csrf: ")
	assert.EqualValues(t, 1, mock.Server.CSRFTokenRequests())
}

func TestUnknownCommand(t *testing.T) {
	mock := testutils.NewMockAPI(t)
	a, _ := newTestApp(t, mock)

	err := a.run(context.Background(), "bogus", nil)
	assert.ErrorContains(t, err, `unknown command "bogus"`)
}
