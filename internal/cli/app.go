// AngelaMos | 2026
// app.go

package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/rgrams-coder/aicmmlr/internal/client"
	"github.com/rgrams-coder/aicmmlr/internal/config"
	"github.com/rgrams-coder/aicmmlr/internal/notify"
	"github.com/rgrams-coder/aicmmlr/internal/onboarding"
	"github.com/rgrams-coder/aicmmlr/internal/payment"
	"github.com/rgrams-coder/aicmmlr/internal/session"
	"github.com/rgrams-coder/aicmmlr/internal/views"
)

// App wires the client core for one terminal session.
type App struct {
	Config   *config.Config
	Logger   *slog.Logger
	Session  *session.Store
	API      *client.Client
	Notifier notify.Notifier
	Payments *payment.Adapter
	Machine  *onboarding.Machine

	Library     *views.Library
	Consultancy *views.Consultancy
	Admin       *views.Admin
	Notes       *views.Notes
	Calculator  *views.Calculator
	Support     *views.Support
	Visitors    *views.Visitors

	in      *bufio.Reader
	out     io.Writer
	closers []func() error
}

type Streams struct {
	In  io.Reader
	Out io.Writer
	Err io.Writer
}

func NewApp(ctx context.Context, cfg *config.Config, streams Streams, logger *slog.Logger) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}

	a := &App{
		Config: cfg,
		Logger: logger,
		in:     bufio.NewReader(streams.In),
		out:    streams.Out,
	}

	persister, err := a.persister(ctx)
	if err != nil {
		return nil, err
	}

	a.Session = session.NewStore(persister)
	a.Notifier = notify.NewWriter(streams.Out)
	a.API = client.New(cfg.Client.APIURL, a.Session,
		client.WithTimeout(cfg.Client.RequestTimeout),
		client.WithLogger(logger),
	)

	gateway := NewTerminalGateway(a.in, streams.Out)
	a.Payments = payment.NewAdapter(a.API, a.Session, gateway, a.Notifier, payment.Options{
		MerchantName: cfg.Payment.MerchantTag,
		ThemeColor:   cfg.Payment.ThemeColor,
		PendingTTL:   cfg.Payment.OrderTTL,
		Logger:       logger,
	})
	gateway.Bind(a.Payments.OnPaymentResult)

	var opts []onboarding.Option
	if cfg.Client.MinimalStart {
		opts = append(opts, onboarding.WithMinimalStart())
	}
	opts = append(opts, onboarding.WithLogger(logger))
	a.Machine = onboarding.New(a.API, a.Session, a.Payments, a.Notifier, opts...)

	a.Library = views.NewLibrary(a.API, a.Session, a.Payments, a.Notifier)
	a.Consultancy = views.NewConsultancy(a.API, a.Session, a.Payments, a.Notifier)
	a.Admin = views.NewAdmin(a.API, a.Session, a.Notifier)
	a.Notes = views.NewNotes(a.API, a.Notifier)
	a.Calculator = views.NewCalculator(a.API, a.Notifier)
	a.Support = views.NewSupport(a.API, a.Notifier)
	a.Visitors = views.NewVisitors(a.API, "")

	if err := a.Machine.Restore(ctx); err != nil {
		a.Logger.WarnContext(ctx, "session restore failed", "error", err)
	}
	return a, nil
}

func (a *App) persister(ctx context.Context) (session.Persister, error) {
	cc := a.Config.Client
	switch cc.SessionStore {
	case "memory":
		return session.NewMemoryPersister(), nil
	case "redis":
		opts, err := redis.ParseURL(a.Config.Redis.URL)
		if err != nil {
			return nil, fmt.Errorf("parse redis url: %w", err)
		}
		rdb := redis.NewClient(opts)
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close() //nolint:errcheck // cleanup on connection failure
			return nil, fmt.Errorf("redis session store: %w", err)
		}
		a.closers = append(a.closers, rdb.Close)
		return session.NewRedisPersister(rdb, cc.RedisPrefix), nil
	case "file", "":
		path := cc.SessionFile
		if path == "" {
			p, err := session.DefaultFilePath()
			if err != nil {
				return nil, err
			}
			path = p
		}
		return session.NewFilePersister(path), nil
	default:
		return nil, fmt.Errorf("unknown session store %q", cc.SessionStore)
	}
}

func (a *App) Close() error {
	var first error
	for _, c := range a.closers {
		if err := c(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}

// readLine reads one trimmed line of input after printing prompt.
func (a *App) readLine(prompt string) (string, error) {
	if prompt != "" {
		a.printf("%s", prompt)
	}
	line, err := a.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", err
	}
	return trimLine(line), nil
}
