// auth/auth.go

// Package auth はログイン・新規登録・ログアウトのフローを実装します。
// 成功したログインはセッションストアに token / username / balance を保存し、
// 以後の API 呼び出しとチェックアウトがそれを参照します。
package auth

import (
	"context"

	"github.com/veekshithcb/Qkart-Frontend/api"
	"github.com/veekshithcb/Qkart-Frontend/notify"
	"github.com/veekshithcb/Qkart-Frontend/sessionstore"
)

// IAuthAPI はリモートの Auth サービスへの操作です。
type IAuthAPI interface {
	Login(ctx context.Context, username, password string) (*api.LoginResponse, error)
	Register(ctx context.Context, username, password string) error
}

const msgAuthFailed = "Something went wrong. Check that the backend is running, reachable, and returns valid JSON."

// Service は入力検証・API 呼び出し・セッション永続化をまとめます。
type Service struct {
	api      IAuthAPI
	session  *sessionstore.Session
	notifier notify.INotifier
}

// NewService コンストラクタ
func NewService(api IAuthAPI, session *sessionstore.Session, notifier notify.INotifier) *Service {
	return &Service{api: api, session: session, notifier: notifier}
}

// Login は入力を検証してからログイン API を呼び、成功時にセッションを保存します。
// 検証不成立は警告を通知して (false, nil) を返します。リモート障害は通知した上で
// エラーを返します。
func (s *Service) Login(ctx context.Context, username, password string) (bool, error) {
	if !s.validateLoginInput(username, password) {
		return false, nil
	}

	resp, err := s.api.Login(ctx, username, password)
	if err != nil {
		s.notifier.Notify(notify.ErrorMessage(err, msgAuthFailed), notify.SeverityError)
		return false, err
	}

	if err := s.session.Persist(ctx, resp.Token, resp.Username, resp.Balance); err != nil {
		return false, err
	}
	s.notifier.Notify("Logged in successfully", notify.SeveritySuccess)
	return true, nil
}

// Register は入力を検証してから登録 API を呼びます。登録後のログインは別操作です。
func (s *Service) Register(ctx context.Context, username, password, confirmPassword string) (bool, error) {
	if !s.validateRegisterInput(username, password, confirmPassword) {
		return false, nil
	}

	if err := s.api.Register(ctx, username, password); err != nil {
		s.notifier.Notify(notify.ErrorMessage(err, msgAuthFailed), notify.SeverityError)
		return false, err
	}
	s.notifier.Notify("Registered Successfully.", notify.SeveritySuccess)
	return true, nil
}

// Logout はセッションストアから token / username / balance を削除します。
func (s *Service) Logout(ctx context.Context) error {
	return s.session.Clear(ctx)
}

func (s *Service) validateLoginInput(username, password string) bool {
	if username == "" {
		s.notifier.Notify("Username is a required field", notify.SeverityWarning)
		return false
	}
	if password == "" {
		s.notifier.Notify("Password is a required field", notify.SeverityWarning)
		return false
	}
	return true
}

func (s *Service) validateRegisterInput(username, password, confirmPassword string) bool {
	if username == "" {
		s.notifier.Notify("Username is a required field", notify.SeverityWarning)
		return false
	}
	if len(username) < 6 {
		s.notifier.Notify("Username must be at least 6 characters", notify.SeverityWarning)
		return false
	}
	if password == "" {
		s.notifier.Notify("Password is a required field", notify.SeverityWarning)
		return false
	}
	if len(password) < 6 {
		s.notifier.Notify("Password must be at least 6 characters", notify.SeverityWarning)
		return false
	}
	if password != confirmPassword {
		s.notifier.Notify("Passwords do not match", notify.SeverityWarning)
		return false
	}
	return true
}
