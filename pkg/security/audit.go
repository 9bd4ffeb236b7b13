package security

import (
	"crypto/sha256"
	"encoding/hex"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of security event
type EventType string

const (
	EventLoginFailed        EventType = "login_failed"
	EventLoginBlocked       EventType = "login_blocked"
	EventLoginSuccess       EventType = "login_success"
	EventBlockCreated       EventType = "block_created"
	EventRateLimitTriggered EventType = "rate_limit_triggered"
)

// AuditLogger writes security events as structured JSON, separate from the
// request log so they can be shipped and retained on their own.
type AuditLogger struct {
	zapLogger   *zap.Logger
	environment string
}

// NewAuditLogger builds a production zap logger writing to stdout.
func NewAuditLogger() *AuditLogger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.OutputPaths = []string{"stdout"}
	config.ErrorOutputPaths = []string{"stderr"}

	logger, err := config.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		logger, _ = zap.NewProduction()
	}
	return NewAuditLoggerWithCore(logger.Core())
}

// NewAuditLoggerWithCore wraps an existing zap core.
func NewAuditLoggerWithCore(core zapcore.Core) *AuditLogger {
	return &AuditLogger{
		zapLogger:   zap.New(core).With(zap.String("service", "jobboard-api")),
		environment: getEnvironment(),
	}
}

func (a *AuditLogger) log(event EventType, fields ...zap.Field) {
	if a == nil {
		return
	}
	level := zapcore.WarnLevel
	switch event {
	case EventLoginSuccess:
		level = zapcore.InfoLevel
	case EventLoginBlocked, EventBlockCreated:
		level = zapcore.ErrorLevel
	}

	fields = append(fields,
		zap.String("env", a.environment),
		zap.String("event", string(event)),
	)
	a.zapLogger.Log(level, string(event), fields...)
}

// LoginFailed records a rejected credential check. The identity is hashed.
func (a *AuditLogger) LoginFailed(identity string, attempts int) {
	a.log(EventLoginFailed, zap.String("subject", HashValue(identity)), zap.Int("attempts", attempts))
}

// LoginBlocked records a login refused because the identity is locked out.
func (a *AuditLogger) LoginBlocked(identity string) {
	a.log(EventLoginBlocked, zap.String("subject", HashValue(identity)))
}

func (a *AuditLogger) LoginSucceeded(identity string) {
	a.log(EventLoginSuccess, zap.String("subject", HashValue(identity)))
}

func (a *AuditLogger) BlockCreated(identity string, durationMinutes int) {
	a.log(EventBlockCreated, zap.String("subject", HashValue(identity)), zap.Int("duration_minutes", durationMinutes))
}

// RateLimitTriggered records a request rejected by a rate limiter.
func (a *AuditLogger) RateLimitTriggered(ip, path, requestID string) {
	a.log(EventRateLimitTriggered, zap.String("ip", ip), zap.String("path", path), zap.String("request_id", requestID))
}

// Sync flushes any buffered log entries
func (a *AuditLogger) Sync() error {
	return a.zapLogger.Sync()
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8])
}

func getEnvironment() string {
	if os.Getenv("GIN_MODE") == "release" {
		return "production"
	}
	return "development"
}
