package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/thermocore/leadapi/internal/config"
	"github.com/thermocore/leadapi/internal/consent"
	"github.com/thermocore/leadapi/internal/contact"
	"github.com/thermocore/leadapi/internal/locales"
	"github.com/thermocore/leadapi/internal/web"
	"github.com/thermocore/leadapi/middlewares"
	"github.com/thermocore/leadapi/pkg/cookie"
	"github.com/thermocore/leadapi/pkg/db"
	"github.com/thermocore/leadapi/pkg/job"
	"github.com/thermocore/leadapi/pkg/logger"
	"github.com/thermocore/leadapi/pkg/mailer"
	"github.com/thermocore/leadapi/pkg/mailer/resend"
	"github.com/thermocore/leadapi/pkg/ratelimit"
	"github.com/thermocore/leadapi/pkg/redis"
	"github.com/thermocore/leadapi/pkg/storage"
)

func newServeCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := root.config()
			if err != nil {
				return err
			}

			log, flush := logger.NewWithSentry(cfg.Logger, cfg.Sentry, os.Stdout, middlewares.RequestIDExtractor())
			return serve(cmd.Context(), cfg, log, flush)
		},
	}
}

// stack collects what serve builds so that a failure halfway through can
// release what was already opened.
type stack struct {
	log      *slog.Logger
	app      []web.Option
	health   []web.HealthOption
	startup  []func(context.Context) error
	shutdown []func(context.Context) error
	handler  []contact.Option
	dispatch []contact.DispatchOption
	limiter  ratelimit.Limiter
	cookies  *cookie.Manager
	mailer   *mailer.Mailer
	notifyTo string
}

func (s *stack) onShutdown(fn func(context.Context) error) {
	s.shutdown = append(s.shutdown, fn)
}

func (s *stack) release(ctx context.Context) error {
	var errs []error
	for _, fn := range s.shutdown {
		errs = append(errs, fn(ctx))
	}
	return errors.Join(errs...)
}

func serve(ctx context.Context, cfg config.Config, log *slog.Logger, flush func(context.Context) error) error {
	s := &stack{log: log}

	if err := s.build(ctx, cfg); err != nil {
		return errors.Join(err, s.release(context.WithoutCancel(ctx)), flush(context.WithoutCancel(ctx)))
	}
	s.onShutdown(flush)

	svc, err := locales.Load(cfg.DefaultLanguage)
	if err != nil {
		return errors.Join(err, s.release(context.WithoutCancel(ctx)))
	}

	dispatcher := contact.NewMailDispatcher(s.mailer, s.notifyTo, s.dispatch...)
	handlers := []web.Handler{contact.NewHandler(s.limiter, dispatcher, s.handler...)}
	if s.cookies != nil {
		handlers = append(handlers, consent.NewHandler(cfg.Consent.PolicyVersion))
		s.app = append(s.app, web.WithCookieManager(s.cookies))
	} else {
		log.WarnContext(ctx, "COOKIE_SECRET not set, consent endpoints disabled")
	}

	app := web.New(append(s.app,
		web.WithLogger(log),
		web.WithMiddleware(
			middlewares.RequestID(),
			middlewares.CORS(middlewares.WithAllowOrigins(cfg.HTTP.AllowedOrigins...)),
			middlewares.Recover(),
			middlewares.Timeout(cfg.HTTP.RequestTimeout),
			middlewares.I18n(svc, middlewares.WithI18nNamespace(locales.Namespace)),
		),
		web.WithErrorHandler(middlewares.JSONErrorHandler()),
		web.WithNotFoundHandler(middlewares.NotFound),
		web.WithMethodNotAllowedHandler(middlewares.MethodNotAllowed),
		web.WithHealth(s.health...),
		web.WithHandlers(handlers...),
	)...)

	opts := []web.RunOption{
		web.Address(cfg.HTTP.Addr),
		web.Logger(log),
		web.ShutdownTimeout(cfg.HTTP.ShutdownTimeout),
		web.WithContext(ctx),
	}
	for _, fn := range s.startup {
		opts = append(opts, web.StartupHook(fn))
	}
	for _, fn := range s.shutdown {
		opts = append(opts, web.ShutdownHook(fn))
	}

	return web.Run(app, opts...)
}

func (s *stack) build(ctx context.Context, cfg config.Config) error {
	rl := []ratelimit.Option{
		ratelimit.WithLimit(cfg.RateLimit.Max),
		ratelimit.WithWindow(cfg.RateLimit.Window),
		ratelimit.WithMaxEntries(cfg.RateLimit.MaxEntries),
		ratelimit.WithSweepInterval(cfg.RateLimit.SweepInterval),
	}
	if cfg.Redis.URL != "" {
		client, err := redis.Connect(ctx, cfg.Redis)
		if err != nil {
			return err
		}
		s.limiter = ratelimit.NewRedis(client, rl...)
		s.health = append(s.health, web.WithReadinessCheck("redis", redis.Healthcheck(client)))
		s.onShutdown(redis.Shutdown(client))
		s.log.InfoContext(ctx, "rate limiter backed by redis")
	} else {
		mem := ratelimit.NewMemory(rl...)
		s.limiter = mem
		s.onShutdown(mem.Shutdown())
		s.log.InfoContext(ctx, "rate limiter in memory")
	}

	var sender mailer.Sender
	if cfg.Resend.Enabled() {
		sender = resend.New(cfg.Resend)
	} else {
		s.log.WarnContext(ctx, "RESEND_API_KEY not set, emails are logged instead of sent")
		sender = mailer.NewLogSender(s.log)
	}
	s.mailer = mailer.New(sender, mailer.NewRenderer(contact.Templates()), cfg.Mailer)
	s.notifyTo = cfg.Contact.NotifyTo
	if s.notifyTo == "" {
		s.notifyTo = cfg.Resend.SenderEmail
	}
	s.dispatch = append(s.dispatch,
		contact.WithSendTimeout(cfg.Contact.SendTimeout),
		contact.WithDispatchLogger(s.log),
	)

	if cfg.Storage.Enabled() {
		store, err := storage.New(cfg.Storage)
		if err != nil {
			return err
		}
		s.handler = append(s.handler, contact.WithStorage(store))
		s.dispatch = append(s.dispatch, contact.WithLinker(store))
		s.health = append(s.health, web.WithOptionalCheck("storage", store.Healthcheck()))
	}

	if cfg.DB.Enabled() {
		if err := s.buildJobs(ctx, cfg); err != nil {
			return err
		}
	}

	if cfg.Consent.Enabled() {
		m, err := cookie.New(
			cookie.WithSecret(cfg.Consent.CookieSecret),
			cookie.WithSecure(cfg.Consent.SecureCookie && !cfg.IsDevelopment()),
		)
		if err != nil {
			return err
		}
		s.cookies = m
	}

	return nil
}

// buildJobs opens the database and the queue that retries failed
// confirmation emails.
func (s *stack) buildJobs(ctx context.Context, cfg config.Config) error {
	pool, err := db.Connect(ctx, cfg.DB)
	if err != nil {
		return err
	}

	mgr, err := job.NewManager(pool,
		job.WithTask[contact.ConfirmationPayload](contact.NewConfirmationTask(s.mailer)),
		job.WithLogger(s.log),
		job.WithMaxWorkers(cfg.Contact.JobWorkers),
	)
	if err != nil {
		pool.Close()
		return err
	}

	s.dispatch = append(s.dispatch, contact.WithRetryQueue(mgr))
	s.startup = append(s.startup, mgr.Start)
	s.onShutdown(mgr.Shutdown())
	s.onShutdown(db.Shutdown(pool))
	s.health = append(s.health,
		web.WithReadinessCheck("postgres", db.Healthcheck(pool)),
		web.WithOptionalCheck("jobs", job.Healthcheck(mgr)),
	)
	return nil
}
