package retry

import (
	"errors"
	"math"
	"math/rand"
	"time"

	"github.com/code-payments/wallet-toolkit/pkg/retry/backoff"
)

// Strategy decides whether an action that failed on the given attempt should
// run again. Strategies may sleep.
type Strategy func(attempts uint, err error) bool

// Limit caps the total number of attempts, including the first.
func Limit(maxAttempts uint) Strategy {
	return func(attempts uint, _ error) bool {
		return attempts < maxAttempts
	}
}

// RetriableErrors only retries errors matching one of the provided errors.
// Wrapped errors match.
func RetriableErrors(retriableErrors ...error) Strategy {
	return func(_ uint, err error) bool {
		return matchesAny(err, retriableErrors)
	}
}

// Backoff sleeps for the strategy's delay, capped at maxBackoff, before the
// next attempt.
func Backoff(strategy backoff.Strategy, maxBackoff time.Duration) Strategy {
	return func(attempts uint, _ error) bool {
		sleeperImpl.Sleep(capped(strategy(attempts), maxBackoff))
		return true
	}
}

// BackoffWithJitter is Backoff with a random jitter applied after capping.
//
// jitter is a fraction of the capped delay: a 100ms delay with a jitter of
// 0.1 sleeps anywhere in [90ms, 110ms].
func BackoffWithJitter(strategy backoff.Strategy, maxBackoff time.Duration, jitter float64) Strategy {
	return func(attempts uint, _ error) bool {
		delay := capped(strategy(attempts), maxBackoff)
		factor := 1 + (rand.Float64()*2-1)*jitter
		sleeperImpl.Sleep(time.Duration(float64(delay) * factor))
		return true
	}
}

func capped(delay, max time.Duration) time.Duration {
	return time.Duration(math.Min(float64(max), float64(delay)))
}

func matchesAny(err error, targets []error) bool {
	for _, target := range targets {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

type sleeper interface {
	Sleep(time.Duration)
}

type realSleeper struct{}

func (r *realSleeper) Sleep(d time.Duration) { time.Sleep(d) }

var sleeperImpl sleeper = &realSleeper{}
