// notify/notify.go

// Package notify はユーザー向けメッセージの通知シンクを定義します。
// UI 層（スナックバー等）の実装を差し替えられるよう、コアは INotifier だけに
// 依存します。
package notify

import "github.com/sirupsen/logrus"

// Severity は通知の重要度です。スナックバーの variant に対応します。
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityWarning Severity = "warning"
	SeverityError   Severity = "error"
)

// INotifier は (message, severity) を受け取る通知シンクです。
type INotifier interface {
	Notify(message string, severity Severity)
}

// NotifierFunc は関数を INotifier として使うためのアダプタです。
type NotifierFunc func(message string, severity Severity)

func (f NotifierFunc) Notify(message string, severity Severity) { f(message, severity) }

// LogNotifier は通知を logrus に流す実装です。UI のない環境（CLI やテスト運用）向け。
type LogNotifier struct {
	log *logrus.Logger
}

// NewLogNotifier コンストラクタ
func NewLogNotifier(log *logrus.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

// Notify は severity をログレベルに対応付けて出力します。
func (n *LogNotifier) Notify(message string, severity Severity) {
	entry := n.log.WithField("notification", string(severity))
	switch severity {
	case SeverityError:
		entry.Error(message)
	case SeverityWarning:
		entry.Warn(message)
	default:
		entry.Info(message)
	}
}

// Recorder は通知を記録するだけの実装です。テストでの検証に使います。
type Recorder struct {
	Events []Event
}

// Event は記録された 1 件の通知です。
type Event struct {
	Message  string
	Severity Severity
}

func (r *Recorder) Notify(message string, severity Severity) {
	r.Events = append(r.Events, Event{Message: message, Severity: severity})
}

// Messages は記録されたメッセージだけを順に返します。
func (r *Recorder) Messages() []string {
	out := make([]string, 0, len(r.Events))
	for _, e := range r.Events {
		out = append(out, e.Message)
	}
	return out
}
