package config

import (
	"os"
	"strings"
	"time"
)

// Bot holds the reconciliation bot configuration, read from the environment.
type Bot struct {
	MongoURI      string
	MongoDatabase string

	ChatAPIURL   string
	ChatBotToken string
	GuildIDs     []string

	StatusEndpoint string
	StatusToken    string

	MappingFile string

	Interval    time.Duration
	MetricsAddr string
}

// LoadBot reads the bot configuration with local-development fallbacks.
func LoadBot() Bot {
	return Bot{
		MongoURI:       getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:  getenv("MONGODB_DATABASE", "statuspulse"),
		ChatAPIURL:     getenv("CHAT_API_URL", "https://discord.com/api/v10"),
		ChatBotToken:   os.Getenv("CHAT_BOT_TOKEN"),
		GuildIDs:       splitList(os.Getenv("CHAT_GUILD_IDS")),
		StatusEndpoint: os.Getenv("PRODUCT_STATUS_URL"),
		StatusToken:    os.Getenv("PRODUCT_STATUS_TOKEN"),
		MappingFile:    os.Getenv("MAPPING_IMPORT_FILE"),
		Interval:       getenvDuration("RECONCILE_INTERVAL", time.Minute),
		MetricsAddr:    ":" + getenv("METRICS_PORT", "9090"),
	}
}

// API holds the checkout/product service configuration.
type API struct {
	MongoURI      string
	MongoDatabase string

	RedisAddr     string
	RedisPassword string

	Port     string
	APIToken string

	PaymentsAPIURL        string
	PaymentsSecretKey     string
	PaymentsWebhookSecret string

	AutomationWebhookURL string

	ShopifyAPIKey      string
	ShopifyAPISecret   string
	ShopifyShopDomain  string
	ShopifyAccessToken string

	SuccessURL string
	CancelURL  string
}

// LoadAPI reads the API configuration with local-development fallbacks.
func LoadAPI() API {
	return API{
		MongoURI:              getenv("MONGODB_URI", "mongodb://localhost:27017"),
		MongoDatabase:         getenv("MONGODB_DATABASE", "statuspulse"),
		RedisAddr:             getenv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:         os.Getenv("REDIS_PASSWORD"),
		Port:                  getenv("PORT", "8080"),
		APIToken:              os.Getenv("API_TOKEN"),
		PaymentsAPIURL:        os.Getenv("PAYMENTS_API_URL"),
		PaymentsSecretKey:     os.Getenv("PAYMENTS_SECRET_KEY"),
		PaymentsWebhookSecret: os.Getenv("PAYMENTS_WEBHOOK_SECRET"),
		AutomationWebhookURL:  os.Getenv("AUTOMATION_WEBHOOK_URL"),
		ShopifyAPIKey:         os.Getenv("SHOPIFY_API_KEY"),
		ShopifyAPISecret:      os.Getenv("SHOPIFY_API_SECRET"),
		ShopifyShopDomain:     os.Getenv("SHOPIFY_SHOP_DOMAIN"),
		ShopifyAccessToken:    os.Getenv("SHOPIFY_ACCESS_TOKEN"),
		SuccessURL:            os.Getenv("CHECKOUT_SUCCESS_URL"),
		CancelURL:             os.Getenv("CHECKOUT_CANCEL_URL"),
	}
}

// ShopifyConfigured reports whether the commerce adapter can be constructed.
func (c API) ShopifyConfigured() bool {
	return c.ShopifyShopDomain != "" && c.ShopifyAccessToken != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
