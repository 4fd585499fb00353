package config

// NotifxConfig configures preview email delivery.
type NotifxConfig struct {
	Provider    string // ses | console
	FromAddress string
	FromName    string
	AWSRegion   string
}

func loadNotifxConfig() NotifxConfig {
	return NotifxConfig{
		Provider:    getEnv("NOTIFX_PROVIDER", "console"),
		FromAddress: getEnv("NOTIFX_FROM_ADDRESS", "noreply@mailcraft.dev"),
		FromName:    getEnv("NOTIFX_FROM_NAME", "Mailcraft"),
		AWSRegion:   getEnv("NOTIFX_AWS_REGION", getEnv("AWS_REGION", "us-east-1")),
	}
}
