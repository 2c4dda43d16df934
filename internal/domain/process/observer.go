package process

import "log/slog"

// Severity classifies observer notifications.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityError   Severity = "error"
)

// Observer receives one notification per notable pipeline step. It is purely
// observational: implementations must not influence control flow.
type Observer func(sev Severity, msg string)

// NopObserver discards all notifications.
func NopObserver() Observer {
	return func(Severity, string) {}
}

// SlogObserver adapts a structured logger into an Observer.
func SlogObserver(logger *slog.Logger) Observer {
	return func(sev Severity, msg string) {
		switch sev {
		case SeverityError:
			logger.Error(msg)
		case SeveritySuccess:
			logger.Info(msg, slog.String("status", "success"))
		default:
			logger.Info(msg)
		}
	}
}
