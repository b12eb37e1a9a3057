package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/cloudburst-warning-service/internal/domain"
)

// Config holds all service settings, populated from environment variables.
type Config struct {
	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	HistoryCapacity int
	AlertQueueSize  int
	Thresholds      domain.Thresholds

	// Kafka alert publishing configuration.
	KafkaBrokers       []string
	KafkaAlertsTopic   string
	KafkaAlertsEnabled bool

	// SMS gateway configuration.
	SMSEnabled    bool
	SMSAccountSID string
	SMSAuthToken  string
	SMSFromNumber string
	SMSRecipients []string
	SMSTimeout    time.Duration
}

// Load reads configuration from environment variables, applying defaults
// where unset.
func Load() (*Config, error) {
	shutdownTimeout, err := parsePositiveDuration("SHUTDOWN_TIMEOUT", "10s")
	if err != nil {
		return nil, err
	}

	historyCapacity, err := parsePositiveInt("HISTORY_CAPACITY", 50, 10000)
	if err != nil {
		return nil, err
	}

	alertQueueSize, err := parsePositiveInt("ALERT_QUEUE_SIZE", 64, 100000)
	if err != nil {
		return nil, err
	}

	thresholds, err := parseThresholds()
	if err != nil {
		return nil, err
	}

	smsTimeout, err := parsePositiveDuration("SMS_GATEWAY_TIMEOUT", "5s")
	if err != nil {
		return nil, err
	}

	kafkaTopic := os.Getenv("KAFKA_ALERTS_TOPIC")
	kafkaEnabled := kafkaTopic != ""
	if v := os.Getenv("KAFKA_ALERTS_ENABLED"); v != "" {
		kafkaEnabled = v == "true"
	}

	smsToken := os.Getenv("SMS_GATEWAY_TOKEN")
	smsEnabled := smsToken != ""
	if v := os.Getenv("SMS_GATEWAY_ENABLED"); v != "" {
		smsEnabled = v == "true"
	}

	cfg := &Config{
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		HistoryCapacity: historyCapacity,
		AlertQueueSize:  alertQueueSize,
		Thresholds:      thresholds,

		KafkaBrokers:       splitList(envOrDefault("KAFKA_BROKERS", "localhost:9092")),
		KafkaAlertsTopic:   kafkaTopic,
		KafkaAlertsEnabled: kafkaEnabled,

		SMSEnabled:    smsEnabled,
		SMSAccountSID: os.Getenv("SMS_GATEWAY_ACCOUNT_SID"),
		SMSAuthToken:  smsToken,
		SMSFromNumber: os.Getenv("SMS_FROM_NUMBER"),
		SMSRecipients: splitList(os.Getenv("SMS_RECIPIENTS")),
		SMSTimeout:    smsTimeout,
	}

	if cfg.KafkaAlertsEnabled {
		if cfg.KafkaAlertsTopic == "" {
			return nil, errors.New("KAFKA_ALERTS_ENABLED is true but KAFKA_ALERTS_TOPIC is not set")
		}
		if len(cfg.KafkaBrokers) == 0 {
			return nil, errors.New("KAFKA_BROKERS is required when Kafka alerts are enabled")
		}
	}
	if cfg.SMSEnabled {
		if cfg.SMSAuthToken == "" {
			return nil, errors.New("SMS_GATEWAY_ENABLED is true but SMS_GATEWAY_TOKEN is not set")
		}
		if cfg.SMSAccountSID == "" {
			return nil, errors.New("SMS_GATEWAY_ACCOUNT_SID is required when the SMS gateway is enabled")
		}
		if cfg.SMSFromNumber == "" {
			return nil, errors.New("SMS_FROM_NUMBER is required when the SMS gateway is enabled")
		}
		if len(cfg.SMSRecipients) == 0 {
			return nil, errors.New("SMS_RECIPIENTS is required when the SMS gateway is enabled")
		}
	}

	return cfg, nil
}

func parseThresholds() (domain.Thresholds, error) {
	t := domain.DefaultThresholds()

	var err error
	if t.WarningRainfall, err = parseFloat("WARNING_RAINFALL_MM", t.WarningRainfall); err != nil {
		return domain.Thresholds{}, err
	}
	if t.CloudburstRainfall, err = parseFloat("CLOUDBURST_RAINFALL_MM", t.CloudburstRainfall); err != nil {
		return domain.Thresholds{}, err
	}
	if t.CloudburstHumidity, err = parseFloat("CLOUDBURST_HUMIDITY_PCT", t.CloudburstHumidity); err != nil {
		return domain.Thresholds{}, err
	}
	if t.CloudburstPressure, err = parseFloat("CLOUDBURST_PRESSURE_HPA", t.CloudburstPressure); err != nil {
		return domain.Thresholds{}, err
	}

	if t.WarningRainfall < 0 || t.CloudburstRainfall < t.WarningRainfall {
		return domain.Thresholds{}, errors.New("WARNING_RAINFALL_MM must be non-negative and not exceed CLOUDBURST_RAINFALL_MM")
	}
	if t.CloudburstHumidity <= 0 || t.CloudburstHumidity > 100 {
		return domain.Thresholds{}, errors.New("CLOUDBURST_HUMIDITY_PCT must be within (0, 100]")
	}
	if t.CloudburstPressure <= 0 {
		return domain.Thresholds{}, errors.New("CLOUDBURST_PRESSURE_HPA must be positive")
	}

	return t, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parsePositiveDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(envOrDefault(key, def))
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return d, nil
}

func parsePositiveInt(key string, def, max int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > max {
		return 0, fmt.Errorf("%s must be an integer within [1, %d]", key, max)
	}
	return n, nil
}

func parseFloat(key string, def float64) (float64, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s", key)
	}
	return v, nil
}
