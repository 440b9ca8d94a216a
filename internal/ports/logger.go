package ports

// Logger is the leveled console sink the core logs through. Success sits
// between Info and Warning and marks operator-relevant good news.
type Logger interface {
	Debug(format string, args ...any)
	Info(format string, args ...any)
	Success(format string, args ...any)
	Warning(format string, args ...any)
	Error(format string, args ...any)
}
