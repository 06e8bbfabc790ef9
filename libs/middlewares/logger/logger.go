package logger

import (
	"time"

	"github.com/dangvanduc1999/doffy-inject/libs/core"
)

// ResolutionLogger logs every resolution entering a container: the
// identifier, the lookup mode, the elapsed time and any error
type ResolutionLogger struct {
	logger core.Logger
}

// NewResolutionLogger creates a resolution logger over the given logger
func NewResolutionLogger(logger core.Logger) *ResolutionLogger {
	return &ResolutionLogger{logger: logger}
}

// Middleware returns the middleware to install with ApplyMiddleware
func (l *ResolutionLogger) Middleware() core.Middleware {
	return func(next core.Next) core.Next {
		return func(args core.NextArgs) (interface{}, error) {
			start := time.Now()
			result, err := next(args)
			l.log(args, time.Since(start), err)
			return result, err
		}
	}
}

func (l *ResolutionLogger) log(args core.NextArgs, duration time.Duration, err error) {
	event := "Resolve"
	if err != nil {
		event = "ResolveFailed"
	}

	l.logger.Infor(&core.LoggerItem{
		Event:    event,
		Messages: core.IdentifierString(args.ServiceIdentifier),
		Error:    err,
		Data: struct {
			ServiceIdentifier string        `json:"service_identifier"`
			MultiInject       bool          `json:"multi_inject"`
			TagKey            string        `json:"tag_key,omitempty"`
			Duration          time.Duration `json:"duration"`
		}{
			ServiceIdentifier: core.IdentifierString(args.ServiceIdentifier),
			MultiInject:       args.IsMultiInject,
			TagKey:            args.Key,
			Duration:          duration,
		},
	})
}

// New builds the middleware directly from a logger
func New(logger core.Logger) core.Middleware {
	return NewResolutionLogger(logger).Middleware()
}
