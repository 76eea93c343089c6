package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/assist-by/bandwalk/internal/analysis/bandwalk"
	"github.com/assist-by/bandwalk/internal/analysis/signal"
	"github.com/assist-by/bandwalk/internal/domain"
	"github.com/assist-by/bandwalk/internal/indicator"
)

type labels struct {
	header        string // 인자: 제목, 일수
	price         string
	change        string
	width         string
	position      string
	positionScale string
	upperDiff     string
	lowerDiff     string
	signal        string
	histogram     string
	state         string
	macdState     string
	summary       string // 인자: 일수
	summaryLine   string // 인자: 밴드워크 일수, 매도 발생, 매수 발생
	latest        string
	zones         map[bandwalk.Zone]string
}

var catalog = map[domain.Lang]labels{
	domain.LangJapanese: {
		header:        "=== %s - 過去%d日の分析結果 ===",
		price:         "価格",
		change:        "前日比",
		width:         "バンド幅",
		position:      "バンド位置",
		positionScale: "(0=下限, 1=上限)",
		upperDiff:     "上限との差",
		lowerDiff:     "下限との差",
		signal:        "シグナル",
		histogram:     "ヒストグラム",
		state:         "状態",
		macdState:     "MACD判定",
		summary:       "--- 過去%d日のまとめ ---",
		summaryLine:   "バンドウォーク: %d日, 売りシグナル: %d回, 買いシグナル: %d回",
		latest:        "最新判定",
		zones: map[bandwalk.Zone]string{
			bandwalk.ZoneBreakoutUpper: "上限突破!",
			bandwalk.ZoneBreakoutLower: "下限突破!",
			bandwalk.ZoneNearUpper:     "上限付近",
			bandwalk.ZoneNearLower:     "下限付近",
		},
	},
	domain.LangKorean: {
		header:        "=== %s - 최근 %d일 분석 결과 ===",
		price:         "가격",
		change:        "전일 대비",
		width:         "밴드 폭",
		position:      "밴드 위치",
		positionScale: "(0=하단, 1=상단)",
		upperDiff:     "상단과의 차이",
		lowerDiff:     "하단과의 차이",
		signal:        "시그널",
		histogram:     "히스토그램",
		state:         "상태",
		macdState:     "MACD 판정",
		summary:       "--- 최근 %d일 요약 ---",
		summaryLine:   "밴드워크: %d일, 매도 시그널: %d회, 매수 시그널: %d회",
		latest:        "최신 판정",
		zones: map[bandwalk.Zone]string{
			bandwalk.ZoneBreakoutUpper: "상단 돌파!",
			bandwalk.ZoneBreakoutLower: "하단 돌파!",
			bandwalk.ZoneNearUpper:     "상단 부근",
			bandwalk.ZoneNearLower:     "하단 부근",
		},
	},
	domain.LangEnglish: {
		header:        "=== %s - analysis of the last %d days ===",
		price:         "NAV",
		change:        "change",
		width:         "band width",
		position:      "band position",
		positionScale: "(0=lower, 1=upper)",
		upperDiff:     "to upper",
		lowerDiff:     "above lower",
		signal:        "signal",
		histogram:     "histogram",
		state:         "state",
		macdState:     "MACD",
		summary:       "--- summary of the last %d days ---",
		summaryLine:   "band walk: %d days, sell signals: %d, buy signals: %d",
		latest:        "latest",
		zones: map[bandwalk.Zone]string{
			bandwalk.ZoneBreakoutUpper: "above upper band!",
			bandwalk.ZoneBreakoutLower: "below lower band!",
			bandwalk.ZoneNearUpper:     "near upper band",
			bandwalk.ZoneNearLower:     "near lower band",
		},
	},
}

func labelsFor(lang domain.Lang) labels {
	if l, ok := catalog[lang]; ok {
		return l
	}
	return catalog[domain.LangJapanese]
}

// window는 최근 days일의 시작 인덱스를 반환합니다
func window(n, days int) int {
	if days <= 0 || days > n {
		return 0
	}
	return n - days
}

// Render는 최근 days일의 분석 결과를 날짜별로 출력합니다.
// bands와 anns는 rows와 인덱스가 대응하며, 해당 전략을 사용하지 않으면 nil일 수 있습니다.
// zones는 위치 라벨과 밴드워크 구간 표시에 쓰는 판정 기준입니다.
// 밴드가 정의되지 않은 날은 출력하지 않습니다.
func Render(w io.Writer, title string, rows []indicator.Row, bands []bandwalk.Result, anns []signal.Annotation, zones bandwalk.Config, days int, lang domain.Lang) error {
	l := labelsFor(lang)
	spans := bandwalk.MarkSpans(bands, zones.Window)
	start := window(len(rows), days)

	var b strings.Builder
	fmt.Fprintf(&b, l.header+"\n", title, len(rows)-start)
	b.WriteString(strings.Repeat("-", 80) + "\n")

	for i := start; i < len(rows); i++ {
		row := rows[i]
		upper, okUpper := row.BBUpper.Get()
		lower, okLower := row.BBLower.Get()
		if !okUpper || !okLower {
			continue
		}

		action := domain.ActionInsufficientData
		var band *bandwalk.Result
		if i < len(bands) {
			band = &bands[i]
			action = band.Action
		}

		mark := ""
		if i < len(spans) && spans[i] {
			mark = " *BANDWALK*"
		}
		fmt.Fprintf(&b, "%s %s [%s]%s\n", title, row.Date.Format("2006/01/02"), strings.ToUpper(action.String()), mark)
		fmt.Fprintf(&b, "  %s: %.2f (%s: %+.2f)\n", l.price, row.NAV, l.change, row.DailyChange)
		fmt.Fprintf(&b, "  %s: %.2f\n", l.width, upper-lower)

		position := bandwalk.Position(row.NAV, upper, lower)
		fmt.Fprintf(&b, "  %s: %.3f %s", l.position, position, l.positionScale)
		if z, ok := l.zones[zones.ZoneOf(position)]; ok {
			b.WriteString(" " + z)
		}
		b.WriteString("\n")
		fmt.Fprintf(&b, "  %s: %+.2f, %s: %+.2f\n", l.upperDiff, upper-row.NAV, l.lowerDiff, row.NAV-lower)

		if row.MACD.Valid && row.MACDSignal.Valid {
			fmt.Fprintf(&b, "  MACD: %+.2f  %s: %+.2f  %s: %+.2f\n",
				row.MACD.Float, l.signal, row.MACDSignal.Float, l.histogram, row.MACDHistogram.Float)
		}

		if band != nil {
			fmt.Fprintf(&b, "  %s: %s\n", l.state, band.Message.Text)
		}
		if i < len(anns) && !anns[i].Skipped {
			flag := ""
			switch {
			case anns[i].Sell:
				flag = "[SELL] "
			case anns[i].Buy:
				flag = "[BUY] "
			}
			fmt.Fprintf(&b, "  %s: %s%s\n", l.macdState, flag, anns[i].Message.Text)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Summary는 최근 기간 판정 결과의 집계입니다
type Summary struct {
	Days         int
	Actions      map[domain.Action]int // 밴드워크 판정별 일수
	BandWalkDays int
	SellFired    int
	BuyFired     int
	Latest       domain.Action // 마지막 날 밴드워크 판정
}

// Summarize는 최근 days일의 판정 결과를 집계합니다
func Summarize(bands []bandwalk.Result, anns []signal.Annotation, days int) Summary {
	n := len(bands)
	if len(anns) > n {
		n = len(anns)
	}
	start := window(n, days)

	s := Summary{
		Days:    n - start,
		Actions: make(map[domain.Action]int),
		Latest:  domain.ActionInsufficientData,
	}
	for i := start; i < n; i++ {
		if i < len(bands) {
			s.Actions[bands[i].Action]++
			if bands[i].IsBandWalk {
				s.BandWalkDays++
			}
		}
		if i < len(anns) {
			if anns[i].SellFired {
				s.SellFired++
			}
			if anns[i].BuyFired {
				s.BuyFired++
			}
		}
	}
	if len(bands) > 0 {
		s.Latest = bands[len(bands)-1].Action
	}
	return s
}

// RenderSummary는 Summarize 결과를 리포트 끝에 붙이는 요약으로 출력합니다
func RenderSummary(w io.Writer, s Summary, lang domain.Lang) error {
	l := labelsFor(lang)

	var b strings.Builder
	fmt.Fprintf(&b, l.summary+"\n", s.Days)
	fmt.Fprintf(&b, l.summaryLine+"\n", s.BandWalkDays, s.SellFired, s.BuyFired)
	fmt.Fprintf(&b, "%s: %s\n\n", l.latest, strings.ToUpper(s.Latest.String()))

	_, err := io.WriteString(w, b.String())
	return err
}
