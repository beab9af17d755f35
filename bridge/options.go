package bridge

import "go.uber.org/zap"

type config struct {
	logger *zap.Logger
}

// Option configures a Bridge during New().
type Option func(*config)

// WithLogger sets the logger used to report degraded decodes. A nil logger
// keeps the default no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
