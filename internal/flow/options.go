package flow

import "time"

type Option func(*Client)

// WithRetry bounds how often a read is attempted before its error is
// returned. backoff grows linearly with the attempt number.
func WithRetry(attempts int, backoff time.Duration) Option {
	return func(c *Client) {
		if attempts > 0 {
			c.attempts = attempts
		}
		c.backoff = backoff
	}
}
