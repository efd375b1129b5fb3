// Package retry runs actions repeatedly until they succeed or a strategy
// gives up.
package retry

// Action is a function to be performed in a retriable manner.
type Action func() error

// Retrier retries the provided action.
type Retrier interface {
	Retry(action Action) (uint, error)
}

type retrier struct {
	strategies []Strategy
}

// NewRetrier returns a Retrier that applies the strategies to every action.
// Without strategies, the action is retried until it succeeds.
func NewRetrier(strategies ...Strategy) Retrier {
	return &retrier{
		strategies: strategies,
	}
}

func (r *retrier) Retry(action Action) (uint, error) {
	return Retry(action, r.strategies...)
}

// Retry executes the action until it succeeds, or until one of the strategies
// declines another attempt. It returns the number of attempts made and the
// last error.
//
// Strategies run in order and stop at the first refusal, so strategies that
// sleep belong at the end.
func Retry(action Action, strategies ...Strategy) (uint, error) {
	for attempt := uint(1); ; attempt++ {
		err := action()
		if err == nil {
			return attempt, nil
		}

		if !shouldRetry(strategies, attempt, err) {
			return attempt, err
		}
	}
}

func shouldRetry(strategies []Strategy, attempt uint, err error) bool {
	for _, s := range strategies {
		if !s(attempt, err) {
			return false
		}
	}
	return true
}
