package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"wstore/pkg/catalog"
	"wstore/pkg/console"
	"wstore/pkg/inventory"
	"wstore/pkg/pricing"
	"wstore/pkg/promotion"
	"wstore/pkg/receipt"
	"wstore/pkg/session"
	"wstore/pkg/version"
)

const (
	msgCatalogLoadFailed   = "[ERROR] 상품 목록을 로드하는 중 문제가 발생했습니다."
	msgPromotionLoadFailed = "[ERROR] 프로모션 목록을 로드하는 중 문제가 발생했습니다."
)

// options captures CLI flags so the store can run with a single Run call.
type options struct {
	showVersion bool
	configPath  string
	products    string
	promotions  string
	today       string
	logLevel    string
}

// Run loads the catalog and promotions, then serves the operator on in/out
// until they leave. A nil logger is built from the configuration. Every
// returned error has already been logged, so callers only need to exit.
func Run(ctx context.Context, args []string, in io.Reader, out io.Writer, logger *zap.Logger) error {
	opts, err := parseFlags(args)
	if errors.Is(err, flag.ErrHelp) {
		// Help output is already printed by the flag package, so we quietly exit.
		return nil
	}
	if err == nil && opts.showVersion {
		fmt.Fprintf(out, "wstore version %s\n", version.Version())
		return nil
	}

	// A bad invocation is still reported through a logger built from the defaults.
	cfg := DefaultConfig()
	if err == nil {
		var resolved Config
		if resolved, err = resolveConfig(opts); err == nil {
			cfg = resolved
		}
	}

	if logger == nil {
		built, buildErr := newLogger(cfg.Log)
		if buildErr != nil {
			return errors.Join(err, fmt.Errorf("unable to build logger: %w", buildErr))
		}
		logger = built
		defer func() { _ = logger.Sync() }()
	}

	if err == nil {
		err = serve(ctx, opts, cfg, in, out, logger)
	}
	if err != nil {
		logger.Error("store stopped", zap.Error(err))
	}
	return err
}

// serve loads the store data and runs the session loop. Load failures are
// announced to the operator before they are returned.
func serve(ctx context.Context, opts options, cfg Config, in io.Reader, out io.Writer, logger *zap.Logger) error {
	clock, err := newClock(opts.today)
	if err != nil {
		return err
	}

	products, err := catalog.Load(cfg.Catalog.Products)
	if err != nil {
		fmt.Fprintln(out, msgCatalogLoadFailed)
		return fmt.Errorf("unable to load catalog: %w", err)
	}
	promotions, err := promotion.Load(cfg.Catalog.Promotions, promotion.RatesFromPercent(cfg.Promotions.Percentage))
	if err != nil {
		fmt.Fprintln(out, msgPromotionLoadFailed)
		return fmt.Errorf("unable to load promotions: %w", err)
	}
	registry := promotion.NewRegistry(promotions)
	for _, name := range unknownPromotions(products, registry) {
		logger.Warn("catalog references an unknown promotion; it is sold at the regular price",
			zap.String("promotion", name))
	}
	logger.Info("store data loaded",
		zap.Int("products", len(products)),
		zap.Int("promotions", registry.Len()))

	stock := inventory.NewService(products)
	defer stock.Close()

	loop := session.NewLoop(session.Dependencies{
		Stock:     stock,
		Engine:    pricing.NewEngine(stock, registry, logger),
		Console:   console.New(in, out),
		Formatter: receipt.NewFormatter(cfg.Receipt.Unit),
		Membership: pricing.Membership{
			Rate:  decimal.NewFromFloat(cfg.Pricing.MembershipRate),
			Limit: cfg.Pricing.MembershipCap,
		},
		Clock:  clock,
		Logger: logger,
	})
	return loop.Run(ctx)
}

// unknownPromotions lists, once each, the promotion names products carry
// that the registry does not define.
func unknownPromotions(products []catalog.Product, registry *promotion.Registry) []string {
	var names []string
	seen := make(map[string]bool)
	for _, p := range products {
		if !p.HasPromotion() || seen[p.Promotion] {
			continue
		}
		seen[p.Promotion] = true
		if _, ok := registry.Lookup(p.Promotion); !ok {
			names = append(names, p.Promotion)
		}
	}
	return names
}

// parseFlags uses a dedicated FlagSet so Run can be called from multiple entry points.
func parseFlags(args []string) (options, error) {
	set := flag.NewFlagSet("wstore", flag.ContinueOnError)
	set.SetOutput(io.Discard)

	var opts options
	set.BoolVar(&opts.showVersion, "version", false, "Show the application version")
	set.StringVar(&opts.configPath, "config", "", "Optional YAML configuration file.")
	set.StringVar(&opts.products, "products", "", "Catalog table; overrides catalog.products.")
	set.StringVar(&opts.promotions, "promotions", "", "Promotion table; overrides catalog.promotions.")
	set.StringVar(&opts.today, "today", "", "Pin the store date (YYYY-MM-DD) instead of using the system clock.")
	set.StringVar(&opts.logLevel, "log-level", "", "Log level: debug, info, warn or error; overrides log.level.")

	if err := set.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

// resolveConfig layers the YAML file and the flag overrides on the defaults.
func resolveConfig(opts options) (Config, error) {
	cfg := DefaultConfig()
	if opts.configPath != "" {
		loaded, err := loadConfigFile(opts.configPath, cfg)
		if err != nil {
			return Config{}, err
		}
		cfg = loaded
	}
	if opts.products != "" {
		cfg.Catalog.Products = opts.products
	}
	if opts.promotions != "" {
		cfg.Catalog.Promotions = opts.promotions
	}
	if opts.logLevel != "" {
		cfg.Log.Level = opts.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// newLogger writes to stderr so logs never interleave with the operator dialogue.
func newLogger(cfg LogConfig) (*zap.Logger, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	var zc zap.Config
	if cfg.Format == "json" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = level
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}

// newClock returns the wall clock, or a fixed date at local midnight when
// today is set.
func newClock(today string) (session.Clock, error) {
	if today == "" {
		return time.Now, nil
	}
	pinned, err := time.ParseInLocation(time.DateOnly, today, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: -today %q is not a YYYY-MM-DD date", ErrInvalidConfig, today)
	}
	return func() time.Time { return pinned }, nil
}
