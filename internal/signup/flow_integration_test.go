package signup_test

import (
	"context"
	"io"
	"log"
	"testing"

	"sidifa/portal/config"
	"sidifa/portal/internal/api"
	"sidifa/portal/internal/mockapi"
	"sidifa/portal/internal/session"
	"sidifa/portal/internal/signup"
	"sidifa/portal/internal/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlow(t *testing.T, mock *testutils.MockAPI, store session.Store, opts ...signup.Option) (*signup.Flow, *api.Client) {
	t.Helper()

	conf := config.Default().API
	conf.URL = mock.URL
	client, err := api.NewClient(conf, api.WithLogger(log.New(io.Discard, "", 0)))
	require.NoError(t, err)

	return signup.NewFlow(api.NewAuthService(client), api.NewProfileService(client), store, opts...), client
}

func payload(email string) signup.Payload {
	return signup.Payload{
		Name:            "Dr. Sari",
		Email:           email,
		Password:        "rahasia123",
		ConfirmPassword: "rahasia123",
		NoTelp:          "081234567890",
		Spesialis:       "Klinis",
		Lokasi:          "Bandung",
	}
}

func TestFlowAgainstMockAPI(t *testing.T) {
	tests := []struct {
		name         string
		opts         []testutils.MockOption
		wantState    signup.State
		wantVerif    signup.VerificationStatus
		wantRedirect string
		wantAuthed   bool
	}{
		{
			name:         "auto verified psikolog",
			opts:         []testutils.MockOption{testutils.WithAutoVerify()},
			wantState:    signup.StateSuccess,
			wantRedirect: "/psikolog",
			wantAuthed:   true,
		},
		{
			name:      "pending review detected from profile",
			wantState: signup.StateVerificationUnverified,
			wantVerif: signup.VerificationUnverified,
		},
		{
			name:      "pending review detected at login",
			opts:      []testutils.MockOption{testutils.WithRejectUnverifiedLogin()},
			wantState: signup.StateVerificationUnverified,
			wantVerif: signup.VerificationUnverified,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			mock := testutils.NewMockAPI(t, tt.opts...)
			store := session.NewMemoryStore()

			var navigated string
			flow, client := newFlow(t, mock, store, signup.WithNavigator(signup.NavigatorFunc(func(ctx context.Context, target string) error {
				navigated = target
				return nil
			})))

			result := flow.Submit(ctx, payload(testutils.UniqueEmail()))

			assert.Equal(t, tt.wantState, result.State, result.Error)
			assert.Equal(t, tt.wantVerif, result.Verification)
			assert.Equal(t, tt.wantRedirect, result.RedirectTo)
			assert.Equal(t, tt.wantRedirect, navigated)

			authed, err := store.AuthStatus(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.wantAuthed, authed)

			// 注册与登录共用一次 CSRF 引导
			assert.EqualValues(t, 1, mock.Server.CSRFTokenRequests())
			assert.True(t, client.CSRF().Fetched())
		})
	}
}

func TestFlowDuplicateEmail(t *testing.T) {
	mock := testutils.NewMockAPI(t, testutils.WithSeedUser("sari@example.com", "psikolog", mockapi.VerificationVerified))
	flow, _ := newFlow(t, mock, session.NewMemoryStore())

	result := flow.Submit(context.Background(), payload("sari@example.com"))

	assert.Equal(t, signup.StateError, result.State)
	assert.Equal(t, "Email sudah terdaftar", result.Error)
}

func TestFlowResubmitExistingAccount(t *testing.T) {
	mock := testutils.NewMockAPI(t, testutils.WithRejectUnverifiedLogin())
	flow, _ := newFlow(t, mock, session.NewMemoryStore())
	email := testutils.UniqueEmail()

	// 第一次提交：账号进入待审核
	first := flow.Submit(context.Background(), payload(email))
	require.Equal(t, signup.StateVerificationUnverified, first.State)

	require.NoError(t, mock.Server.SetVerification(email, mockapi.VerificationDeclined))

	// 再次提交时注册失败（邮箱已存在），直接返回错误
	second := flow.Submit(context.Background(), payload(email))
	assert.Equal(t, signup.StateError, second.State)
	assert.Equal(t, "Email sudah terdaftar", second.Error)
}

func TestFlowPasswordMismatchSendsNothing(t *testing.T) {
	mock := testutils.NewMockAPI(t)
	flow, _ := newFlow(t, mock, session.NewMemoryStore())

	p := payload(testutils.UniqueEmail())
	p.ConfirmPassword = "berbeda123"
	result := flow.Submit(context.Background(), p)

	assert.Equal(t, signup.PasswordMismatchMessage, result.Error)
	assert.Zero(t, mock.Server.CSRFTokenRequests())
}
