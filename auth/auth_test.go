// auth/auth_test.go

package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veekshithcb/Qkart-Frontend/api"
	"github.com/veekshithcb/Qkart-Frontend/notify"
	"github.com/veekshithcb/Qkart-Frontend/sessionstore"
)

type fakeAuthAPI struct {
	loginResp *api.LoginResponse
	err       error
	calls     int
}

func (f *fakeAuthAPI) Login(ctx context.Context, username, password string) (*api.LoginResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.loginResp, nil
}

func (f *fakeAuthAPI) Register(ctx context.Context, username, password string) error {
	f.calls++
	return f.err
}

func newService(fake *fakeAuthAPI, rec *notify.Recorder) (*Service, *sessionstore.Session) {
	session := sessionstore.NewSession(sessionstore.NewLocalSessionStore())
	return NewService(fake, session, rec), session
}

// TestLogin_PersistsSession verifies a successful login stores token, username
// and balance in the session store.
func TestLogin_PersistsSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fake := &fakeAuthAPI{loginResp: &api.LoginResponse{Success: true, Token: "testtoken", Username: "criodo", Balance: 5000}}
	rec := &notify.Recorder{}
	svc, session := newService(fake, rec)

	ok, err := svc.Login(ctx, "criodo", "criodo123")

	require.NoError(t, err)
	assert.True(t, ok)

	token, _ := session.Token(ctx)
	username, _ := session.Username(ctx)
	balance, _ := session.Balance(ctx)
	assert.Equal(t, "testtoken", token)
	assert.Equal(t, "criodo", username)
	assert.Equal(t, float64(5000), balance)

	require.Len(t, rec.Events, 1)
	assert.Equal(t, "Logged in successfully", rec.Events[0].Message)
	assert.Equal(t, notify.SeveritySuccess, rec.Events[0].Severity)
}

// TestLogin_InputValidation verifies empty fields warn and skip the API.
func TestLogin_InputValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		password string
		message  string
	}{
		{"missing username", "", "secret", "Username is a required field"},
		{"missing password", "criodo", "", "Password is a required field"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthAPI{}
			rec := &notify.Recorder{}
			svc, _ := newService(fake, rec)

			ok, err := svc.Login(context.Background(), tt.username, tt.password)

			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, 0, fake.calls)
			require.Len(t, rec.Events, 1)
			assert.Equal(t, tt.message, rec.Events[0].Message)
			assert.Equal(t, notify.SeverityWarning, rec.Events[0].Severity)
		})
	}
}

// TestLogin_ServerMessageSurfaced verifies an HTTP 400 message reaches the notifier.
func TestLogin_ServerMessageSurfaced(t *testing.T) {
	t.Parallel()

	fake := &fakeAuthAPI{err: &api.Error{StatusCode: 400, Message: "Password is incorrect"}}
	rec := &notify.Recorder{}
	svc, session := newService(fake, rec)

	ok, err := svc.Login(context.Background(), "criodo", "wrong")

	require.Error(t, err)
	assert.False(t, ok)
	require.Len(t, rec.Events, 1)
	assert.Equal(t, "Password is incorrect", rec.Events[0].Message)

	token, _ := session.Token(context.Background())
	assert.Equal(t, "", token)
}

// TestRegister_InputValidation covers the register-specific rules.
func TestRegister_InputValidation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		username string
		password string
		confirm  string
		message  string
	}{
		{"missing username", "", "secret123", "secret123", "Username is a required field"},
		{"short username", "crio", "secret123", "secret123", "Username must be at least 6 characters"},
		{"missing password", "criodo", "", "", "Password is a required field"},
		{"short password", "criodo", "abc", "abc", "Password must be at least 6 characters"},
		{"mismatched passwords", "criodo", "secret123", "secret124", "Passwords do not match"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeAuthAPI{}
			rec := &notify.Recorder{}
			svc, _ := newService(fake, rec)

			ok, err := svc.Register(context.Background(), tt.username, tt.password, tt.confirm)

			require.NoError(t, err)
			assert.False(t, ok)
			assert.Equal(t, 0, fake.calls)
			require.Len(t, rec.Events, 1)
			assert.Equal(t, tt.message, rec.Events[0].Message)
		})
	}
}

// TestRegister_Success verifies the success notification.
func TestRegister_Success(t *testing.T) {
	t.Parallel()

	fake := &fakeAuthAPI{}
	rec := &notify.Recorder{}
	svc, _ := newService(fake, rec)

	ok, err := svc.Register(context.Background(), "criodo", "criodo123", "criodo123")

	require.NoError(t, err)
	assert.True(t, ok)
	require.Len(t, rec.Events, 1)
	assert.Equal(t, "Registered Successfully.", rec.Events[0].Message)
}

// TestLogout_ClearsSession verifies all three session keys are removed.
func TestLogout_ClearsSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	fake := &fakeAuthAPI{loginResp: &api.LoginResponse{Success: true, Token: "t", Username: "u", Balance: 100}}
	svc, session := newService(fake, &notify.Recorder{})

	_, err := svc.Login(ctx, "criodo", "criodo123")
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx))

	token, _ := session.Token(ctx)
	username, _ := session.Username(ctx)
	balance, _ := session.Balance(ctx)
	assert.Equal(t, "", token)
	assert.Equal(t, "", username)
	assert.Equal(t, float64(0), balance)
}
