package cmd

// Config carries every externally supplied setting. Loaded from .env in
// main and passed to constructors explicitly.
type Config struct {
	HTTPPort string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	// DocumentStorageDir is where generated delivery notes are written.
	DocumentStorageDir string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	TwilioAccountSID     string
	TwilioAuthToken      string
	TwilioWhatsAppNumber string
}
