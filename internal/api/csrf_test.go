package api

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSRFSession(t *testing.T) {
	calls := 0
	tokens := []string{"first", "second"}
	session := NewCSRFSession(func(ctx context.Context) (CSRFTokenResponse, error) {
		token := tokens[calls]
		calls++
		return CSRFTokenResponse{CSRFToken: token}, nil
	})

	assert.False(t, session.Fetched())
	assert.Empty(t, session.Token())

	token, err := session.EnsureToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", token)

	token, err = session.EnsureToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", token)
	assert.Equal(t, 1, calls)

	session.Reset()
	assert.False(t, session.Fetched())
	assert.Empty(t, session.Token())

	token, err = session.EnsureToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "second", token)
	assert.Equal(t, 2, calls)
}

func TestCSRFSessionFetchErrorLeavesStateUntouched(t *testing.T) {
	fail := errors.New("down")
	calls := 0
	session := NewCSRFSession(func(ctx context.Context) (CSRFTokenResponse, error) {
		calls++
		return CSRFTokenResponse{}, fail
	})

	_, err := session.EnsureToken(context.Background())
	assert.ErrorIs(t, err, fail)
	assert.False(t, session.Fetched())

	// 失败后下一次写请求会重试
	_, err = session.EnsureToken(context.Background())
	assert.ErrorIs(t, err, fail)
	assert.Equal(t, 2, calls)
}

func TestIsMutating(t *testing.T) {
	for _, m := range []string{"POST", "put", "PATCH", "DELETE"} {
		assert.True(t, isMutating(m), m)
	}
	for _, m := range []string{"GET", "HEAD", "OPTIONS"} {
		assert.False(t, isMutating(m), m)
	}
}
