package notification

import "github.com/assist-by/bandwalk/internal/domain"

// Notifier는 알림 전송 인터페이스를 정의합니다
type Notifier interface {
	// SendSignal은 매매 시그널 알림을 전송합니다
	SendSignal(signal domain.Signal) error

	// SendError는 에러 알림을 전송합니다
	SendError(err error) error

	// SendInfo는 일반 정보 알림을 전송합니다
	SendInfo(message string) error
}

// Noop은 아무 것도 전송하지 않는 Notifier입니다. 웹훅이 설정되지 않았을 때 사용합니다.
type Noop struct{}

func (Noop) SendSignal(domain.Signal) error { return nil }
func (Noop) SendError(error) error          { return nil }
func (Noop) SendInfo(string) error          { return nil }

var _ Notifier = Noop{}
