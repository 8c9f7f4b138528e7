package logger

// Multi delegates every message to each of its loggers in order.
type Multi []Logger

// NewMulti drops nil entries.
func NewMulti(loggers ...Logger) Multi {
	m := make(Multi, 0, len(loggers))
	for _, l := range loggers {
		if l != nil {
			m = append(m, l)
		}
	}
	return m
}

// LogTrace forwards to all loggers
func (m Multi) LogTrace(message string) {
	for _, l := range m {
		l.LogTrace(message)
	}
}

// LogDebug forwards to all loggers
func (m Multi) LogDebug(message string) {
	for _, l := range m {
		l.LogDebug(message)
	}
}

// LogInfo forwards to all loggers
func (m Multi) LogInfo(message string) {
	for _, l := range m {
		l.LogInfo(message)
	}
}

// LogWarn forwards to all loggers
func (m Multi) LogWarn(message string) {
	for _, l := range m {
		l.LogWarn(message)
	}
}

// LogError forwards to all loggers
func (m Multi) LogError(message string) {
	for _, l := range m {
		l.LogError(message)
	}
}
