package indicator

import "strconv"

// Value는 정의되지 않을 수 있는 지표값입니다.
// 룩백 구간이 채워지지 않은 인덱스는 Valid가 false입니다.
type Value struct {
	Float float64
	Valid bool
}

// None은 정의되지 않은 값입니다
var None = Value{}

// Some은 정의된 값을 생성합니다
func Some(v float64) Value {
	return Value{Float: v, Valid: true}
}

// Get은 값과 정의 여부를 반환합니다
func (v Value) Get() (float64, bool) {
	return v.Float, v.Valid
}

// Sub는 두 값이 모두 정의된 경우에만 차이를 반환합니다
func (v Value) Sub(o Value) Value {
	if !v.Valid || !o.Valid {
		return None
	}
	return Some(v.Float - o.Float)
}

func (v Value) String() string {
	if !v.Valid {
		return "-"
	}
	return strconv.FormatFloat(v.Float, 'f', 4, 64)
}
