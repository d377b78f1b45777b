package service

import (
	"context"
	"time"
)

// Delays - искусственная задержка ответа, как у удалённого API. В тестах нули.
type Delays struct {
	Read  time.Duration
	Write time.Duration
	Views time.Duration
}

var DefaultDelays = Delays{
	Read:  160 * time.Millisecond,
	Write: 120 * time.Millisecond,
	Views: 60 * time.Millisecond,
}

type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// TimerSleeper waits on a real timer and gives up when ctx is done.
type TimerSleeper struct{}

func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
