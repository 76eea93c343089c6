package domain

import "fmt"

// InvalidInputError는 정렬되지 않았거나 잘못된 입력 시계열을 나타냅니다
type InvalidInputError struct {
	Index  int
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("잘못된 입력 (인덱스 %d): %s", e.Index, e.Reason)
}
