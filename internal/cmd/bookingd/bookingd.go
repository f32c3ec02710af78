// Package bookingd parses booking service flags and launches the service.
package bookingd

import (
	"context"
	"flag"

	"github.com/evmartins/bookhold/internal/booking/app"
	entrypoint "github.com/evmartins/bookhold/internal/platform/cmd"
	"github.com/evmartins/bookhold/internal/platform/logging"
)

// Config holds booking command configuration.
type Config struct {
	Port          int    `env:"BOOKHOLD_PORT" envDefault:"8095"`
	DBPath        string `env:"BOOKHOLD_DB_PATH" envDefault:"data/booking.db"`
	AMQPURL       string `env:"BOOKHOLD_AMQP_URL"`
	AuditExchange string `env:"BOOKHOLD_AUDIT_EXCHANGE" envDefault:"bookhold.audit"`
	Timezone      string `env:"BOOKHOLD_TIMEZONE" envDefault:"UTC"`
	Log           logging.Config
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.IntVar(&cfg.Port, "port", cfg.Port, "The booking gRPC server port")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "Path to the booking sqlite database")
	fs.StringVar(&cfg.AMQPURL, "amqp-url", cfg.AMQPURL, "AMQP broker URL for audit events (optional)")
	fs.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "Reference timezone for slot queries")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the booking service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceBooking, func(context.Context) error {
		return app.Run(ctx, app.Config{
			Port:          cfg.Port,
			DBPath:        cfg.DBPath,
			AMQPURL:       cfg.AMQPURL,
			AuditExchange: cfg.AuditExchange,
			Timezone:      cfg.Timezone,
			Log:           cfg.Log,
		})
	})
}
