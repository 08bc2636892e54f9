package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"tally/internal/delivery/http/validator"
	"tally/internal/domain/entity"
	domainerrors "tally/internal/domain/errors"
	"tally/internal/usecase"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockUserUsecase struct {
	mock.Mock
}

func (m *mockUserUsecase) Register(ctx context.Context, input usecase.RegisterInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.AuthOutput), args.Error(1)
}

func (m *mockUserUsecase) Login(ctx context.Context, input usecase.LoginInput) (*usecase.AuthOutput, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*usecase.AuthOutput), args.Error(1)
}

func (m *mockUserUsecase) DeleteAccount(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)

	return args.Error(0)
}

func newHandlerTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = validator.New()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()

	return e.NewContext(req, rec), rec
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestUserHandler_Register_Success(t *testing.T) {
	uc := new(mockUserUsecase)
	h := NewUserHandler(uc, discardLogger())

	user := &entity.User{
		ID:        uuid.New(),
		Username:  "alice",
		Email:     "alice@example.com",
		CreatedAt: time.Now(),
	}

	uc.On("Register", mock.Anything, usecase.RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret123",
	}).Return(&usecase.AuthOutput{User: user, AccessToken: "token-abc"}, nil)

	c, rec := newHandlerTestContext(t, http.MethodPost, "/users/register",
		`{"username":"alice","email":"alice@example.com","password":"secret123"}`)

	require.NoError(t, h.Register(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "token-abc", body["access_token"])
	assert.Equal(t, "bearer", body["token_type"])

	userBody, ok := body["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "alice", userBody["username"])
	// The password hash must never appear in any response shape.
	assert.NotContains(t, rec.Body.String(), "password")
}

func TestUserHandler_Register_ValidationFailure(t *testing.T) {
	uc := new(mockUserUsecase)
	h := NewUserHandler(uc, discardLogger())

	tests := []struct {
		name string
		body string
	}{
		{"short username", `{"username":"ab","email":"a@example.com","password":"secret123"}`},
		{"bad email", `{"username":"alice","email":"not-an-email","password":"secret123"}`},
		{"short password", `{"username":"alice","email":"a@example.com","password":"123"}`},
		{"missing fields", `{}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, rec := newHandlerTestContext(t, http.MethodPost, "/users/register", tt.body)

			require.NoError(t, h.Register(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body["error"])
		})
	}

	uc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

func TestUserHandler_Login_InvalidCredentialsPassthrough(t *testing.T) {
	uc := new(mockUserUsecase)
	h := NewUserHandler(uc, discardLogger())

	uc.On("Login", mock.Anything, mock.Anything).
		Return(nil, domainerrors.ErrInvalidCredentials)

	c, _ := newHandlerTestContext(t, http.MethodPost, "/users/login",
		`{"username":"alice","password":"wrong"}`)

	err := h.Login(c)
	require.Error(t, err)

	var appErr domainerrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.ErrorCode())
}

func TestUserHandler_Login_Success(t *testing.T) {
	uc := new(mockUserUsecase)
	h := NewUserHandler(uc, discardLogger())

	user := &entity.User{ID: uuid.New(), Username: "alice", Email: "alice@example.com"}
	uc.On("Login", mock.Anything, usecase.LoginInput{Username: "alice", Password: "secret123"}).
		Return(&usecase.AuthOutput{User: user, AccessToken: "token-abc"}, nil)

	c, rec := newHandlerTestContext(t, http.MethodPost, "/users/login",
		`{"username":"alice","password":"secret123"}`)

	require.NoError(t, h.Login(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "token-abc")
}
