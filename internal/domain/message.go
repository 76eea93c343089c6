package domain

import (
	"fmt"
	"strings"
)

// Lang은 판정 메시지의 언어 태그입니다
type Lang string

const (
	LangJapanese Lang = "ja"
	LangKorean   Lang = "ko"
	LangEnglish  Lang = "en"
)

// ParseLang은 문자열을 언어 태그로 변환합니다
func ParseLang(s string) (Lang, error) {
	switch Lang(strings.ToLower(strings.TrimSpace(s))) {
	case LangJapanese:
		return LangJapanese, nil
	case LangKorean:
		return LangKorean, nil
	case LangEnglish:
		return LangEnglish, nil
	default:
		return "", fmt.Errorf("지원하지 않는 언어: %q", s)
	}
}

// Message는 언어 태그가 붙은 판정 근거입니다
type Message struct {
	Lang Lang
	Text string
}

func (m Message) String() string {
	return m.Text
}

// IsZero는 메시지가 비어 있는지 확인합니다
func (m Message) IsZero() bool {
	return m.Text == ""
}

// MessageKey는 메시지 카탈로그의 키입니다
type MessageKey int

const (
	MsgInsufficientData MessageKey = iota
	MsgNormal
	MsgUpperWalkDetach   // 인자: 지속 일수
	MsgUpperWalkContinue // 인자: 지속 일수
	MsgLowerWalkDetach   // 인자: 지속 일수
	MsgLowerWalkContinue // 인자: 지속 일수
	MsgZeroCrossUp
	MsgZeroCrossDown
	MsgSellFired // 인자: 최대값, 교차 비율(%), 기준선
	MsgBuyFired  // 인자: 최소값, 교차 비율(%), 기준선
	MsgSellContinue
	MsgBuyContinue
	MsgPositiveTerritory // 인자: 현재값, 최대값
	MsgNegativeTerritory // 인자: 현재값, 최소값
)

var catalog = map[Lang]map[MessageKey]string{
	LangJapanese: {
		MsgInsufficientData:  "十分なデータがありません",
		MsgNormal:            "通常状態",
		MsgUpperWalkDetach:   "上昇バンドウォーク（%d日継続）からの剥離",
		MsgUpperWalkContinue: "上昇バンドウォーク継続中（%d日継続）",
		MsgLowerWalkDetach:   "下降バンドウォーク（%d日継続）からの剥離",
		MsgLowerWalkContinue: "下降バンドウォーク継続中（%d日継続）",
		MsgZeroCrossUp:       "シグナルなし（ヒストグラムがゼロを上抜け）",
		MsgZeroCrossDown:     "シグナルなし（ヒストグラムがゼロを下抜け）",
		MsgSellFired:         "売りシグナル: 最大値 %.4f の %.0f%% ライン %.4f を下抜け",
		MsgBuyFired:          "買いシグナル: 最小値 %.4f の %.0f%% ライン %.4f を上抜け",
		MsgSellContinue:      "売りシグナル継続中",
		MsgBuyContinue:       "買いシグナル継続中",
		MsgPositiveTerritory: "プラス圏 %.4f（最大値 %.4f）",
		MsgNegativeTerritory: "マイナス圏 %.4f（最小値 %.4f）",
	},
	LangKorean: {
		MsgInsufficientData:  "데이터가 충분하지 않습니다",
		MsgNormal:            "정상 상태",
		MsgUpperWalkDetach:   "상승 밴드워크(%d일 지속)에서 이탈",
		MsgUpperWalkContinue: "상승 밴드워크 지속 중(%d일 지속)",
		MsgLowerWalkDetach:   "하락 밴드워크(%d일 지속)에서 이탈",
		MsgLowerWalkContinue: "하락 밴드워크 지속 중(%d일 지속)",
		MsgZeroCrossUp:       "시그널 없음 (히스토그램 제로선 상향 돌파)",
		MsgZeroCrossDown:     "시그널 없음 (히스토그램 제로선 하향 돌파)",
		MsgSellFired:         "매도 시그널: 최대값 %.4f의 %.0f%% 라인 %.4f 하향 돌파",
		MsgBuyFired:          "매수 시그널: 최소값 %.4f의 %.0f%% 라인 %.4f 상향 돌파",
		MsgSellContinue:      "매도 시그널 지속 중",
		MsgBuyContinue:       "매수 시그널 지속 중",
		MsgPositiveTerritory: "양수 구간 %.4f (최대값 %.4f)",
		MsgNegativeTerritory: "음수 구간 %.4f (최소값 %.4f)",
	},
	LangEnglish: {
		MsgInsufficientData:  "insufficient data",
		MsgNormal:            "normal",
		MsgUpperWalkDetach:   "upside band walk detachment after %d days",
		MsgUpperWalkContinue: "upside band walk continuing (%d days)",
		MsgLowerWalkDetach:   "downside band walk detachment after %d days",
		MsgLowerWalkContinue: "downside band walk continuing (%d days)",
		MsgZeroCrossUp:       "no signal: histogram crossed zero upward",
		MsgZeroCrossDown:     "no signal: histogram crossed zero downward",
		MsgSellFired:         "sell signal: max %.4f, crossed below the %.0f%% line %.4f",
		MsgBuyFired:          "buy signal: min %.4f, crossed above the %.0f%% line %.4f",
		MsgSellContinue:      "sell signal continuing",
		MsgBuyContinue:       "buy signal continuing",
		MsgPositiveTerritory: "positive territory %.4f (max %.4f)",
		MsgNegativeTerritory: "negative territory %.4f (min %.4f)",
	},
}

// Format은 카탈로그에서 메시지를 찾아 포맷합니다.
// 알 수 없는 언어는 일본어로 대체합니다.
func Format(lang Lang, key MessageKey, args ...interface{}) Message {
	texts, ok := catalog[lang]
	if !ok {
		lang = LangJapanese
		texts = catalog[lang]
	}
	text := texts[key]
	if len(args) > 0 {
		text = fmt.Sprintf(text, args...)
	}
	return Message{Lang: lang, Text: text}
}
