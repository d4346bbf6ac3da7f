package cmd

import "time"

// Config carries everything the composition root needs to wire the service.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	RedisAddr      string
	RabbitURL      string
	IdempotencyTTL time.Duration

	// MaxWriteAttempts bounds the retry loop around version conflicts.
	MaxWriteAttempts int

	// CashToleranceMinorUnits is the overpayment allowed on cash captures.
	CashToleranceMinorUnits int64

	// DraftMaxAge is how long an unconfirmed draft order may idle before
	// the expiry job cancels it.
	DraftMaxAge time.Duration
}
