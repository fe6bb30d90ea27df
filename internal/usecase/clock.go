package usecase

import (
	"time"

	"github.com/google/uuid"
)

// テストで差し替える
type Clock func() time.Time

type IDGenerator func() string

func systemClock() time.Time { return time.Now().UTC() }

func newUUID() string { return uuid.NewString() }
