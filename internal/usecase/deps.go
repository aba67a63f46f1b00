package usecase

import "time"

// ID生成はusecaseから直接uuidを触らず注入する。
type IDGenerator interface {
	NewID() string
}

type Clock interface {
	Now() time.Time
}
