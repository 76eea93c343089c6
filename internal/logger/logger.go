package logger

import (
	"io"
	"strings"

	"github.com/rs/zerolog"
)

// NewWriter는 지정한 writer에 기록하는 로거를 생성합니다.
// format이 "console"이면 사람이 읽기 쉬운 형식, 그 외에는 JSON으로 출력합니다.
// 알 수 없는 레벨은 info로 처리합니다.
func NewWriter(w io.Writer, level, format string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	if strings.EqualFold(format, "console") {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: "2006-01-02 15:04:05"}
	}

	return zerolog.New(w).With().Timestamp().Logger().Level(lvl)
}
