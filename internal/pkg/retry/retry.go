package retry

import (
	"time"

	"github.com/avast/retry-go/v4"
)

// RetryConfig describes the transport-level retry policy of one outbound
// connector. The default of a single attempt means no retry: retrieval
// pipelines surface external failures instead of looping, and operators
// opt in per connector.
type RetryConfig struct {
	Attempts uint          `env:"ATTEMPTS" envDefault:"1"`
	Delay    time.Duration `env:"DELAY" envDefault:"100ms"`
	MaxDelay time.Duration `env:"MAX_DELAY" envDefault:"2s"`
}

func (rc *RetryConfig) ToRetryOptions() []retry.Option {
	return []retry.Option{
		retry.Attempts(rc.Attempts),
		retry.MaxDelay(rc.MaxDelay),
		retry.Delay(rc.Delay),
		retry.LastErrorOnly(true),
	}
}
