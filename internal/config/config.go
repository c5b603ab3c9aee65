package config

import (
	"os"
)

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicURL       string
}

type StripeConfig struct {
	SecretKey string
}

type Config struct {
	Port        string
	DatabaseURL string
	FrontendURL string
	Stripe      StripeConfig
	R2          R2Config
	AdminEmail  string
	AdminPass   string
}

func LoadConfig() *Config {
	cfg := &Config{}

	cfg.Port = os.Getenv("PORT")
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	cfg.FrontendURL = os.Getenv("FRONTEND_URL")
	if cfg.FrontendURL == "" {
		cfg.FrontendURL = "http://localhost:3000"
	}

	// Stripe config
	cfg.Stripe.SecretKey = os.Getenv("STRIPE_SECRET_KEY")

	// R2 config (ticket QR storage)
	cfg.R2.AccountID = os.Getenv("R2_ACCOUNT_ID")
	cfg.R2.AccessKeyID = os.Getenv("R2_ACCESS_KEY_ID")
	cfg.R2.SecretAccessKey = os.Getenv("R2_SECRET_ACCESS_KEY")
	cfg.R2.Bucket = os.Getenv("R2_BUCKET")
	cfg.R2.PublicURL = os.Getenv("R2_PUBLIC_URL")

	// Seed admin account
	cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")
	cfg.AdminPass = os.Getenv("ADMIN_PASSWORD")

	return cfg
}
