package llm

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// RetryingClient reintenta Generate con backoff exponencial.
type RetryingClient struct {
	next        LLMClient
	maxAttempts int
	baseDelay   time.Duration
	logger      *zap.Logger
	sleep       func(ctx context.Context, d time.Duration) error
}

func NewRetryingClient(next LLMClient, maxAttempts int, baseDelay time.Duration, logger *zap.Logger) *RetryingClient {
	if maxAttempts <= 0 {
		maxAttempts = 1
	}
	if baseDelay <= 0 {
		baseDelay = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetryingClient{
		next:        next,
		maxAttempts: maxAttempts,
		baseDelay:   baseDelay,
		logger:      logger,
		sleep:       sleepContext,
	}
}

func (c *RetryingClient) Generate(ctx context.Context, prompt string) (string, error) {
	var lastErr error
	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		out, err := c.next.Generate(ctx, prompt)
		if err == nil {
			return out, nil
		}
		lastErr = err
		if !isRetryable(err) || attempt == c.maxAttempts-1 {
			break
		}
		delay := c.baseDelay * time.Duration(1<<attempt)
		c.logger.Warn("llm call failed, retrying",
			zap.Error(err),
			zap.Int("attempt", attempt+1),
			zap.Int("max_attempts", c.maxAttempts),
			zap.Duration("delay", delay),
		)
		if err := c.sleep(ctx, delay); err != nil {
			return "", err
		}
	}
	return "", lastErr
}

// Model delega en el cliente envuelto cuando lo expone.
func (c *RetryingClient) Model() string {
	if m, ok := c.next.(interface{ Model() string }); ok {
		return m.Model()
	}
	return ""
}

func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Retryable()
	}
	return !errors.Is(err, ErrEmptyResponse) && !errors.Is(err, ErrMisconfigured)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
