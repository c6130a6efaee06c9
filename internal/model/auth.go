// internal/model/auth.go
package model

// LoginRequest はログインAPIのリクエストボディ
type LoginRequest struct {
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse はログイン成功時のレスポンス
type LoginResponse struct {
	AccessToken string `json:"access_token"`
}

// ChangePasswordRequest はログイン済みユーザーのパスワード変更リクエスト
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

// RecoverPasswordRequest は秘密の質問によるパスワード再設定リクエスト
// (メールアドレスを持たないため、トークン方式ではなく回答照合で再設定する)
type RecoverPasswordRequest struct {
	Name           string `json:"name" validate:"required"`
	SecurityAnswer string `json:"security_answer" validate:"required"`
	NewPassword    string `json:"new_password" validate:"required,min=8,max=72"`
}
