package discord

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

// RetryConfig는 재시도 설정을 정의합니다
type RetryConfig struct {
	MaxRetries int           // 최대 재시도 횟수
	BaseDelay  time.Duration // 기본 대기 시간
	MaxDelay   time.Duration // 최대 대기 시간
	Factor     float64       // 대기 시간 증가 계수
}

// DefaultRetryConfig는 기본 재시도 설정을 반환합니다
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxRetries: 3,
		BaseDelay:  1 * time.Second,
		MaxDelay:   30 * time.Second,
		Factor:     2.0,
	}
}

// HTTPError는 웹훅 응답이 성공이 아닐 때 반환됩니다
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("웹훅 응답 오류 (status %d): %s", e.StatusCode, e.Body)
}

// IsRetryableError는 재시도할 가치가 있는 오류인지 확인합니다.
// 5xx, 429 응답과 네트워크 오류는 재시도하고, 그 외 4xx는 바로 실패합니다.
func IsRetryableError(err error) bool {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode >= 500 || httpErr.StatusCode == http.StatusTooManyRequests
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// Client는 Discord 웹훅 클라이언트입니다
type Client struct {
	signalWebhook string
	errorWebhook  string
	infoWebhook   string

	httpClient *http.Client
	retry      RetryConfig
	log        zerolog.Logger
	sleep      func(time.Duration)
}

// ClientOption은 클라이언트 옵션을 정의합니다
type ClientOption func(*Client)

// WithErrorWebhook은 에러 알림용 웹훅을 지정합니다
func WithErrorWebhook(url string) ClientOption {
	return func(c *Client) {
		c.errorWebhook = url
	}
}

// WithInfoWebhook은 정보 알림용 웹훅을 지정합니다
func WithInfoWebhook(url string) ClientOption {
	return func(c *Client) {
		c.infoWebhook = url
	}
}

// WithHTTPClient는 HTTP 클라이언트를 지정합니다
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithRetryConfig는 재시도 설정을 지정합니다
func WithRetryConfig(config RetryConfig) ClientOption {
	return func(c *Client) {
		c.retry = config
	}
}

// WithLogger는 로거를 지정합니다
func WithLogger(log zerolog.Logger) ClientOption {
	return func(c *Client) {
		c.log = log
	}
}

// NewClient는 새로운 Discord 클라이언트를 생성합니다.
// 에러/정보 웹훅을 지정하지 않으면 시그널 웹훅으로 전송합니다.
func NewClient(signalWebhook string, opts ...ClientOption) *Client {
	c := &Client{
		signalWebhook: signalWebhook,
		httpClient:    &http.Client{Timeout: 10 * time.Second},
		retry:         DefaultRetryConfig(),
		log:           zerolog.Nop(),
		sleep:         time.Sleep,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.errorWebhook == "" {
		c.errorWebhook = signalWebhook
	}
	if c.infoWebhook == "" {
		c.infoWebhook = signalWebhook
	}

	return c
}

// sendToWebhook은 메시지를 웹훅으로 전송합니다. 재시도 가능한 오류는 지수 백오프로 재시도합니다.
func (c *Client) sendToWebhook(url string, msg WebhookMessage) error {
	if url == "" {
		return nil
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("메시지 직렬화 실패: %w", err)
	}

	var lastErr error
	delay := c.retry.BaseDelay

	for attempt := 0; attempt <= c.retry.MaxRetries; attempt++ {
		lastErr = c.post(url, body)
		if lastErr == nil {
			return nil
		}

		if !IsRetryableError(lastErr) {
			c.log.Warn().Err(lastErr).Msg("웹훅 전송 실패 (재시도 불필요)")
			return lastErr
		}

		if attempt == c.retry.MaxRetries {
			break
		}

		c.log.Warn().Err(lastErr).
			Int("attempt", attempt+1).
			Int("maxRetries", c.retry.MaxRetries).
			Dur("delay", delay).
			Msg("웹훅 전송 실패, 재시도")

		c.sleep(delay)
		delay = time.Duration(float64(delay) * c.retry.Factor)
		if delay > c.retry.MaxDelay {
			delay = c.retry.MaxDelay
		}
	}

	return fmt.Errorf("최대 재시도 횟수 초과: %w", lastErr)
}

func (c *Client) post(url string, body []byte) error {
	resp, err := c.httpClient.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("웹훅 요청 실패: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
	return &HTTPError{StatusCode: resp.StatusCode, Body: string(respBody)}
}
