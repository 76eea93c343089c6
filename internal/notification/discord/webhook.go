package discord

import (
	"fmt"
	"time"

	"github.com/assist-by/bandwalk/internal/domain"
	"github.com/assist-by/bandwalk/internal/notification"
)

const footer = "Assist by BandWalk 📈"

var _ notification.Notifier = (*Client)(nil)

// SendSignal은 시그널 알림을 전송합니다
func (c *Client) SendSignal(signal domain.Signal) error {
	if !signal.IsValid() {
		return fmt.Errorf("유효하지 않은 시그널: %s", signal.Key())
	}

	msg := WebhookMessage{
		Embeds: []Embed{*signalEmbed(signal)},
	}

	return c.sendToWebhook(c.signalWebhook, msg)
}

// SendError는 에러 알림을 전송합니다
func (c *Client) SendError(err error) error {
	embed := NewEmbed().
		SetTitle("에러 발생").
		SetDescription(fmt.Sprintf("```%v```", err)).
		SetColor(domain.ColorError).
		SetFooter(footer).
		SetTimestamp(time.Now())

	msg := WebhookMessage{
		Embeds: []Embed{*embed},
	}

	return c.sendToWebhook(c.errorWebhook, msg)
}

// SendInfo는 일반 정보 알림을 전송합니다
func (c *Client) SendInfo(message string) error {
	embed := NewEmbed().
		SetDescription(message).
		SetColor(domain.ColorInfo).
		SetFooter(footer).
		SetTimestamp(time.Now())

	msg := WebhookMessage{
		Embeds: []Embed{*embed},
	}

	return c.sendToWebhook(c.infoWebhook, msg)
}

// signalEmbed는 시그널 알림 임베드를 생성합니다
func signalEmbed(s domain.Signal) *Embed {
	var emoji string
	switch s.Action {
	case domain.ActionBuy:
		emoji = "🟢"
	case domain.ActionSell:
		emoji = "🔴"
	default:
		emoji = "⚪"
	}

	return NewEmbed().
		SetTitle(fmt.Sprintf("%s %s %s", emoji, s.Action.String(), s.FundTitle)).
		SetDescription(fmt.Sprintf("**기준일**: %s\n**기준가**: %.2f",
			s.Date.Format("2006-01-02"), s.NAV)).
		SetColor(domain.ColorForAction(s.Action)).
		AddField("펀드", s.FundID, true).
		AddField("전략", s.Strategy, true).
		AddField("근거", s.Message.Text, false).
		SetFooter(footer).
		SetTimestamp(s.Date)
}
