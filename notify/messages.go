// notify/messages.go

package notify

import "errors"

// serverMessenger はサーバー提供のメッセージを持つエラーが実装します。
type serverMessenger interface {
	ServerMessage() string
}

// ErrorMessage はエラーからユーザーに提示するメッセージを決めます。
// サーバーがメッセージを返していればそれを、無ければ fallback（汎用の
// 接続エラーメッセージ等）を返します。
func ErrorMessage(err error, fallback string) string {
	var sm serverMessenger
	if errors.As(err, &sm) && sm.ServerMessage() != "" {
		return sm.ServerMessage()
	}
	return fallback
}
