package handlers_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"trireme_flashcards/internal/handlers"
	"trireme_flashcards/internal/model"
	svc_mocks "trireme_flashcards/internal/service/mocks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *svc_mocks.AuthService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "正常系: ユーザー登録",
			body: model.RegisterRequest{Name: "alice", Password: "password123", SecurityAnswer: "Tokyo"},
			setupMock: func(m *svc_mocks.AuthService) {
				m.On("Register", mock.Anything, mock.AnythingOfType("*model.RegisterRequest")).
					Return(&model.User{UserID: uuid.New(), Name: "alice"}, nil).Once()
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"name":"alice"`,
		},
		{
			name:           "異常系: パスワードが短すぎる",
			body:           model.RegisterRequest{Name: "alice", Password: "short", SecurityAnswer: "Tokyo"},
			setupMock:      func(m *svc_mocks.AuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"field":"password"`,
		},
		{
			name:           "異常系: 秘密の質問の回答が空",
			body:           model.RegisterRequest{Name: "alice", Password: "password123"},
			setupMock:      func(m *svc_mocks.AuthService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"field":"security_answer"`,
		},
		{
			name: "異常系: ユーザ名重複",
			body: model.RegisterRequest{Name: "alice", Password: "password123", SecurityAnswer: "Tokyo"},
			setupMock: func(m *svc_mocks.AuthService) {
				m.On("Register", mock.Anything, mock.AnythingOfType("*model.RegisterRequest")).
					Return(nil, model.NewAppError("DUPLICATE_NAME", "そのユーザ名は既に使用されています。", "name", model.ErrConflict)).Once()
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `"DUPLICATE_NAME"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(svc_mocks.AuthService)
			tt.setupMock(mockService)
			handler := handlers.NewAuthHandler(mockService, discardLogger())

			req := newJSONRequest(t, http.MethodPost, "/api/v1/auth/register", tt.body)
			rr := httptest.NewRecorder()

			handler.Register(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	tests := []struct {
		name           string
		body           interface{}
		setupMock      func(m *svc_mocks.AuthService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "正常系: ログイン成功でトークンが返る",
			body: model.LoginRequest{Name: "alice", Password: "password123"},
			setupMock: func(m *svc_mocks.AuthService) {
				m.On("Login", mock.Anything, mock.AnythingOfType("*model.LoginRequest")).
					Return(&model.LoginResponse{AccessToken: "header.payload.signature"}, nil).Once()
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"access_token"`,
		},
		{
			name: "異常系: 認証失敗",
			body: model.LoginRequest{Name: "alice", Password: "wrong"},
			setupMock: func(m *svc_mocks.AuthService) {
				m.On("Login", mock.Anything, mock.AnythingOfType("*model.LoginRequest")).
					Return(nil, model.NewAppError("AUTHENTICATION_FAILED", "ユーザ名またはパスワードが正しくありません。", "", model.ErrInvalidInput)).Once()
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `"AUTHENTICATION_FAILED"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(svc_mocks.AuthService)
			tt.setupMock(mockService)
			handler := handlers.NewAuthHandler(mockService, discardLogger())

			req := newJSONRequest(t, http.MethodPost, "/api/v1/auth/login", tt.body)
			rr := httptest.NewRecorder()

			handler.Login(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			assert.Contains(t, rr.Body.String(), tt.expectedBody)
			mockService.AssertExpectations(t)
		})
	}
}

func TestAuthHandler_Recover(t *testing.T) {
	mockService := new(svc_mocks.AuthService)
	mockService.On("RecoverPassword", mock.Anything, mock.AnythingOfType("*model.RecoverPasswordRequest")).
		Return(nil).Once()
	handler := handlers.NewAuthHandler(mockService, discardLogger())

	req := newJSONRequest(t, http.MethodPost, "/api/v1/auth/recover",
		model.RecoverPasswordRequest{Name: "alice", SecurityAnswer: "Tokyo", NewPassword: "new-password"})
	rr := httptest.NewRecorder()

	handler.Recover(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	mockService.AssertExpectations(t)
}

func TestAuthHandler_ChangePassword(t *testing.T) {
	testUserID := uuid.New()

	t.Run("正常系: パスワード変更", func(t *testing.T) {
		mockService := new(svc_mocks.AuthService)
		mockService.On("ChangePassword", mock.Anything, testUserID, mock.AnythingOfType("*model.ChangePasswordRequest")).
			Return(nil).Once()
		handler := handlers.NewAuthHandler(mockService, discardLogger())

		req := newJSONRequest(t, http.MethodPut, "/api/v1/account/password",
			model.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"})
		req = req.WithContext(context.WithValue(req.Context(), model.UserIDKey, testUserID))
		rr := httptest.NewRecorder()

		handler.ChangePassword(rr, req)

		assert.Equal(t, http.StatusNoContent, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("異常系: 認証情報なし", func(t *testing.T) {
		mockService := new(svc_mocks.AuthService)
		handler := handlers.NewAuthHandler(mockService, discardLogger())

		req := newJSONRequest(t, http.MethodPut, "/api/v1/account/password",
			model.ChangePasswordRequest{CurrentPassword: "old-password", NewPassword: "new-password"})
		rr := httptest.NewRecorder()

		handler.ChangePassword(rr, req)

		assert.Equal(t, http.StatusForbidden, rr.Code)
		assert.Contains(t, rr.Body.String(), `"UNAUTHORIZED"`)
	})
}

func TestAuthHandler_DeleteAccount(t *testing.T) {
	testUserID := uuid.New()

	mockService := new(svc_mocks.AuthService)
	mockService.On("DeleteAccount", mock.Anything, testUserID).Return(nil).Once()
	handler := handlers.NewAuthHandler(mockService, discardLogger())

	req := httptest.NewRequest(http.MethodDelete, "/api/v1/account", nil)
	req = req.WithContext(context.WithValue(req.Context(), model.UserIDKey, testUserID))
	rr := httptest.NewRecorder()

	handler.DeleteAccount(rr, req)

	assert.Equal(t, http.StatusNoContent, rr.Code)
	mockService.AssertExpectations(t)
}
