// Package config loads service settings from an optional YAML file and the
// environment. Environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/AgentTarik/pizzeria-api/internal/hours"
	"gopkg.in/yaml.v3"
)

// Defaults used when neither the store settings nor the environment provide a value.
const (
	DefaultPixKey       = "12345678901"
	DefaultMerchantName = "PIZZARIA ITALIANA"
	DefaultMerchantCity = "SAO PAULO"
	DefaultTimezone     = "America/Sao_Paulo"
	DefaultHTTPAddr     = ":8080"
	DefaultPixTimeout   = 10 * time.Second
)

type Config struct {
	Env         string `yaml:"env"`
	HTTPAddr    string `yaml:"http_addr"`
	DatabaseURL string `yaml:"database_url"`
	Timezone    string `yaml:"timezone"`

	Pix    Pix    `yaml:"pix"`
	EfiPay EfiPay `yaml:"efipay"`
	Kafka  Kafka  `yaml:"kafka"`
	JWT    JWT    `yaml:"jwt"`
	Seed   Seed   `yaml:"seed"`

	// Location is resolved from Timezone by Load.
	Location *time.Location `yaml:"-"`
}

// Pix holds the static payload fallbacks.
type Pix struct {
	Key          string `yaml:"key"`
	MerchantName string `yaml:"merchant_name"`
	MerchantCity string `yaml:"merchant_city"`
}

type EfiPay struct {
	ClientID     string        `yaml:"client_id"`
	ClientSecret string        `yaml:"client_secret"`
	PixKey       string        `yaml:"pix_key"`
	Sandbox      bool          `yaml:"sandbox"`
	CertFile     string        `yaml:"cert_file"`
	KeyFile      string        `yaml:"key_file"`
	Timeout      time.Duration `yaml:"timeout"`
}

// Enabled reports whether dynamic charges can be requested.
func (e EfiPay) Enabled() bool {
	return e.ClientID != "" && e.ClientSecret != ""
}

type Kafka struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

func (k Kafka) Enabled() bool {
	return len(k.Brokers) > 0 && k.Topic != ""
}

type JWT struct {
	Secret   string        `yaml:"secret"`
	Issuer   string        `yaml:"issuer"`
	Audience string        `yaml:"audience"`
	TTL      time.Duration `yaml:"ttl"`
}

// Seed preloads the in-memory store.
type Seed struct {
	StoreName string          `yaml:"store_name"`
	PixKey    string          `yaml:"pix_key"`
	PixName   string          `yaml:"pix_name"`
	IsOpen    *bool           `yaml:"is_open"` // nil means open
	Schedule  hours.Schedule  `yaml:"schedule"`
	Closures  []hours.Closure `yaml:"closures"`
	Staff     []SeedStaff     `yaml:"staff"`
	Orders    []SeedOrder     `yaml:"orders"`
}

// SeedOrder is a demo order; Total is a decimal string such as "57.90".
type SeedOrder struct {
	ID           string `yaml:"id"`
	CustomerName string `yaml:"customer_name"`
	Total        string `yaml:"total"`
}

type SeedStaff struct {
	Email        string `yaml:"email"`
	Name         string `yaml:"name"`
	Role         string `yaml:"role"`
	PasswordHash string `yaml:"password_hash"`
}

func defaults() *Config {
	return &Config{
		Env:      "production",
		HTTPAddr: DefaultHTTPAddr,
		Timezone: DefaultTimezone,
		Pix: Pix{
			Key:          DefaultPixKey,
			MerchantName: DefaultMerchantName,
			MerchantCity: DefaultMerchantCity,
		},
		EfiPay: EfiPay{Timeout: DefaultPixTimeout},
		JWT: JWT{
			Issuer: "pizzeria-api",
			TTL:    15 * time.Minute,
		},
	}
}

// Load reads CONFIG_FILE (if set) and then applies environment overrides.
func Load() (*Config, error) {
	cfg := defaults()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", cfg.Timezone, err)
	}
	cfg.Location = loc
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	setString(&c.Env, "APP_ENV")
	setString(&c.HTTPAddr, "HTTP_ADDR")
	setString(&c.DatabaseURL, "DATABASE_URL")
	setString(&c.Timezone, "STORE_TIMEZONE")

	setString(&c.Pix.Key, "PIX_KEY")
	setString(&c.Pix.MerchantName, "PIX_MERCHANT_NAME")
	setString(&c.Pix.MerchantCity, "PIX_MERCHANT_CITY")

	setString(&c.EfiPay.ClientID, "EFIPAY_CLIENT_ID")
	setString(&c.EfiPay.ClientSecret, "EFIPAY_CLIENT_SECRET")
	setString(&c.EfiPay.PixKey, "EFIPAY_PIX_KEY")
	setString(&c.EfiPay.CertFile, "EFIPAY_CERT_FILE")
	setString(&c.EfiPay.KeyFile, "EFIPAY_KEY_FILE")
	if v := os.Getenv("EFIPAY_SANDBOX"); v != "" {
		c.EfiPay.Sandbox, _ = strconv.ParseBool(v)
	}
	setDuration(&c.EfiPay.Timeout, "EFIPAY_TIMEOUT")

	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Brokers = strings.Split(v, ",")
	}
	setString(&c.Kafka.Topic, "KAFKA_TOPIC_PAYMENTS")

	setString(&c.JWT.Secret, "JWT_SECRET")
	setString(&c.JWT.Issuer, "JWT_ISS")
	setString(&c.JWT.Audience, "JWT_AUD")
	setDuration(&c.JWT.TTL, "JWT_ACCESS_TTL")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
