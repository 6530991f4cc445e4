// Package config provides functionality for managing configuration options
// for the application using command-line flags, environment variables, and
// an optional JSON config file.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"
)

// Options holds the configuration values for the application.
type Options struct {
	// Port defines the server's listening address (ip:port).
	Port string

	// DatabaseDSN holds the database connection string for the application.
	DatabaseDSN string

	// AdminToken is the shared secret gating administrative operations
	// (admin creation, bulk player deletion, admin login).
	AdminToken string

	// AdminPseudonyme and AdminPassword seed the bootstrap administrator
	// account when the admin table is empty.
	AdminPseudonyme string
	AdminPassword   string

	// SessionTTL is how long an issued session token stays valid.
	SessionTTL time.Duration

	// SMTPHost, SMTPPort, SMTPUser, SMTPPassword and FromEmail configure the
	// outgoing mail transport. Leaving SMTPHost empty disables mail.
	SMTPHost     string
	SMTPPort     string
	SMTPUser     string
	SMTPPassword string
	FromEmail    string

	// WarningInterval is how often the inactivity sweep runs;
	// WarningThreshold is how long a player may go without validating a goal
	// before a warning email is sent.
	WarningInterval  time.Duration
	WarningThreshold time.Duration

	// Config is the path to the Config file.
	Config string
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.Port, "a", "localhost:8080", "run on ip:port server")
	flag.StringVar(&options.DatabaseDSN, "d", "", "db address")
	flag.StringVar(&options.AdminToken, "admin-token", "", "shared secret for administrative operations")
	flag.StringVar(&options.AdminPseudonyme, "admin-pseudonyme", "mumin", "bootstrap administrator login name")
	flag.StringVar(&options.AdminPassword, "admin-password", "", "bootstrap administrator password")
	flag.DurationVar(&options.SessionTTL, "session-ttl", 24*time.Hour, "session token lifetime")
	flag.StringVar(&options.SMTPHost, "smtp-host", "", "SMTP server host")
	flag.StringVar(&options.SMTPPort, "smtp-port", "587", "SMTP server port")
	flag.StringVar(&options.SMTPUser, "smtp-user", "", "SMTP user")
	flag.StringVar(&options.SMTPPassword, "smtp-password", "", "SMTP password")
	flag.StringVar(&options.FromEmail, "from-email", "", "sender address for notification emails")
	flag.DurationVar(&options.WarningInterval, "warning-interval", time.Hour, "how often to sweep for inactive players")
	flag.DurationVar(&options.WarningThreshold, "warning-threshold", 7*24*time.Hour, "inactivity span before a warning email")
	flag.StringVar(&options.Config, "config", "config.json", "path to config file")
	flag.StringVar(&options.Config, "c", "config.json", "path to config file (shorthand)")
}

// Parse parses the command-line flags and environment variables to set
// configuration values. It returns a pointer to the Options struct containing
// the parsed configuration values.
func Parse() *Options {
	flag.Parse()

	// Override flags with environment variables if set
	if configPath := os.Getenv("CONFIG"); configPath != "" {
		options.Config = configPath
	}

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	if serverAddress := os.Getenv("SERVER_ADDRESS"); serverAddress != "" {
		options.Port = serverAddress
	}
	if dsn := os.Getenv("DATABASE_DSN"); dsn != "" {
		options.DatabaseDSN = dsn
	}
	if token := os.Getenv("ADMIN_TOKEN"); token != "" {
		options.AdminToken = token
	}
	if password := os.Getenv("ADMIN_PASSWORD"); password != "" {
		options.AdminPassword = password
	}
	if password := os.Getenv("SMTP_PASSWORD"); password != "" {
		options.SMTPPassword = password
	}

	return options
}
