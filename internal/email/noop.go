package email

import "tipjar_backend/internal/logger"

// NoopProvider is used when SMTP is not configured and in tests.
type NoopProvider struct{}

func (NoopProvider) SendSupportReceipt(to, creatorName string, amount int64, currency string) error {
	logger.Debug("support receipt skipped, no mail provider configured",
		"to", to, "creator", creatorName)
	return nil
}
