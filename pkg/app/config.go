package app

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"wstore/pkg/pricing"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is resolved in three layers: DefaultConfig, then an optional YAML
// file, then command line flags.
type Config struct {
	Catalog    CatalogConfig    `yaml:"catalog"`
	Pricing    PricingConfig    `yaml:"pricing"`
	Promotions PromotionsConfig `yaml:"promotions"`
	Receipt    ReceiptConfig    `yaml:"receipt"`
	Log        LogConfig        `yaml:"log"`
}

// CatalogConfig locates the two source tables.
type CatalogConfig struct {
	Products   string `yaml:"products"`
	Promotions string `yaml:"promotions"`
}

// PricingConfig tunes the membership discount. A zero MembershipCap means uncapped.
type PricingConfig struct {
	MembershipRate float64 `yaml:"membership_rate"`
	MembershipCap  int     `yaml:"membership_cap"`
}

// PromotionsConfig turns named promotions into percentage-off rules.
type PromotionsConfig struct {
	Percentage map[string]int `yaml:"percentage"`
}

// ReceiptConfig holds the unit printed after every amount.
type ReceiptConfig struct {
	Unit string `yaml:"unit"`
}

// LogConfig selects the zap level and encoder ("console" or "json").
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig reproduces the store's stock rule set.
func DefaultConfig() Config {
	return Config{
		Catalog: CatalogConfig{
			Products:   "public/products.md",
			Promotions: "public/promotions.md",
		},
		Pricing: PricingConfig{MembershipRate: pricing.DefaultMembership().Rate.InexactFloat64()},
		Promotions: PromotionsConfig{Percentage: map[string]int{
			"MD추천상품": 10,
			"반짝할인":   20,
		}},
		Receipt: ReceiptConfig{Unit: "원"},
		Log:     LogConfig{Level: "warn", Format: "console"},
	}
}

// loadConfigFile overlays the YAML file at path on cfg. Keys missing from
// the file keep their current values; a percentage table in the file
// replaces the default table as a whole.
func loadConfigFile(path string, cfg Config) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}

	defaults := cfg.Promotions.Percentage
	cfg.Promotions.Percentage = nil
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Promotions.Percentage == nil {
		cfg.Promotions.Percentage = defaults
	}
	return cfg, nil
}

// Validate rejects rates outside their ranges.
func (c Config) Validate() error {
	if c.Pricing.MembershipRate < 0 || c.Pricing.MembershipRate > 1 {
		return fmt.Errorf("%w: membership_rate %v must be within [0, 1]", ErrInvalidConfig, c.Pricing.MembershipRate)
	}
	if c.Pricing.MembershipCap < 0 {
		return fmt.Errorf("%w: membership_cap %d must not be negative", ErrInvalidConfig, c.Pricing.MembershipCap)
	}
	for name, p := range c.Promotions.Percentage {
		if p <= 0 || p > 100 {
			return fmt.Errorf("%w: percentage for %q must be within (0, 100], got %d", ErrInvalidConfig, name, p)
		}
	}
	if c.Catalog.Products == "" || c.Catalog.Promotions == "" {
		return fmt.Errorf("%w: catalog paths are required", ErrInvalidConfig)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}
