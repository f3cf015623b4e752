package email

// Provider sends transactional mail. Delivery is best-effort: the support
// flow never fails because a receipt could not be sent.
type Provider interface {
	SendSupportReceipt(to, creatorName string, amount int64, currency string) error
}
