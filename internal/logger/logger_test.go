package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWriter_Level(t *testing.T) {
	var buf bytes.Buffer
	assert.Equal(t, zerolog.DebugLevel, NewWriter(&buf, "debug", "json").GetLevel())
	assert.Equal(t, zerolog.WarnLevel, NewWriter(&buf, "WARN", "json").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewWriter(&buf, "invalid", "json").GetLevel())
	assert.Equal(t, zerolog.InfoLevel, NewWriter(&buf, "", "json").GetLevel())
}

func TestNewWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "info", "json")

	log.Debug().Msg("숨김")
	log.Info().Str("fund", "0331418A").Msg("분석 완료")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "info", entry["level"])
	assert.Equal(t, "0331418A", entry["fund"])
	assert.Equal(t, "분석 완료", entry["message"])
	assert.Contains(t, entry, "time")
}

func TestNewWriter_Console(t *testing.T) {
	var buf bytes.Buffer
	log := NewWriter(&buf, "debug", "console")

	log.Debug().Str("fund", "A").Msg("시작")
	out := buf.String()
	assert.Contains(t, out, "시작")
	assert.Contains(t, out, "fund=")
}
