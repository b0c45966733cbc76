package system

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog/log"
)

type FunctionWaiter struct {
	Name        string
	MaxAttempts int
	Delay       time.Duration
	Handler     func() (bool, error)
}

func (waiter *FunctionWaiter) Wait(ctx context.Context) error {
	currentAttempts := 0

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		result, err := waiter.Handler()
		if err != nil {
			return err
		}
		if result {
			return nil
		}

		currentAttempts++
		if currentAttempts >= waiter.MaxAttempts {
			log.Ctx(ctx).Warn().Str("name", waiter.Name).Int("max", waiter.MaxAttempts).Msg("max attempts reached")
			return fmt.Errorf("%s max attempts reached: %d", waiter.Name, waiter.MaxAttempts)
		}

		select {
		case <-time.After(waiter.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

const fileWaitDelay = 100 * time.Millisecond

// WaitForFile polls until path exists or the total wait has elapsed. A zero
// wait checks exactly once.
func WaitForFile(ctx context.Context, path string, wait time.Duration) error {
	attempts := int(wait/fileWaitDelay) + 1
	waiter := &FunctionWaiter{
		Name:        fmt.Sprintf("wait for file to appear: %s", path),
		MaxAttempts: attempts,
		Delay:       fileWaitDelay,
		Handler: func() (bool, error) {
			_, err := os.Stat(path)
			if err == nil {
				return true, nil
			}
			if os.IsNotExist(err) {
				return false, nil
			}
			return false, err
		},
	}
	return waiter.Wait(ctx)
}
