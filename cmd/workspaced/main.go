// workspaced is the workspace API daemon. It serves workspace lifecycle,
// bucket access reconciliation and product registration endpoints over
// HTTP, persisting storage records in boltdb.
package main

import (
	"context"
	"fmt"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/EOEPCA/rm-workspace-api/access"
	"github.com/EOEPCA/rm-workspace-api/bolt"
	"github.com/EOEPCA/rm-workspace-api/kit/cli"
	kithttp "github.com/EOEPCA/rm-workspace-api/kit/transport/http"
	"github.com/EOEPCA/rm-workspace-api/logger"
	"github.com/EOEPCA/rm-workspace-api/registration"
	"github.com/EOEPCA/rm-workspace-api/secret"
	"github.com/EOEPCA/rm-workspace-api/tenant"
	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var flags struct {
	httpBindAddress string
	boltPath        string
	secretsPath     string
	workspacePrefix string
	jwtSecret       string
	redisAddress    string
	redisQueue      string
	logFormat       string
	logLevel        string
}

func main() {
	prog := &cli.Program{
		Name: "workspaced",
		Run:  run,
		Opts: []cli.Opt{
			cli.NewOpt(&flags.httpBindAddress, "http-bind-address", ":8080", "bind address for the HTTP server"),
			cli.NewOpt(&flags.boltPath, "bolt-path", "workspaced.bolt", "path to the boltdb file"),
			cli.NewOpt(&flags.secretsPath, "secrets-path", "", "path to a JSON file with workspace secrets"),
			cli.NewOpt(&flags.workspacePrefix, "workspace-prefix", "ws", "prefix of workspace names"),
			cli.NewOpt(&flags.jwtSecret, "jwt-secret", "", "HMAC secret for bearer tokens, empty disables auth"),
			cli.NewOpt(&flags.redisAddress, "redis-address", "", "redis address for the registration queue, empty disables registrations"),
			cli.NewOpt(&flags.redisQueue, "redis-queue", "register_queue", "redis list receiving registrations"),
			cli.NewOpt(&flags.logFormat, "log-format", "console", "log encoding, one of console, logfmt or json"),
			cli.NewOpt(&flags.logLevel, "log-level", "info", "minimum log level"),
		},
	}

	cmd := cli.NewCommand(prog)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	var level zapcore.Level
	if err := level.Set(flags.logLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %v", flags.logLevel, err)
	}

	logConf := logger.Config{Format: flags.logFormat, Level: level}
	log := logConf.New(os.Stdout)
	defer log.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	store := bolt.NewKVStore(flags.boltPath)
	store.WithLogger(log.With(zap.String("service", "bolt")))
	if err := store.Open(ctx); err != nil {
		return err
	}
	defer store.Close()

	secrets, err := loadSecrets()
	if err != nil {
		return err
	}

	resolver := access.NameResolver{Prefix: flags.workspacePrefix}
	reg := prometheus.NewRegistry()

	recordStore := tenant.NewStore(store)
	recordStore.WithLogger(log.With(zap.String("service", "tenant")))
	memberStore := tenant.NewMembershipStore(store)

	var accessSvc = access.NewAccessMetrics(reg,
		access.NewAccessLogger(log.With(zap.String("service", "access")),
			access.NewService(log, recordStore, resolver)))

	var workspaceSvc = tenant.NewWorkspaceMetrics(reg,
		tenant.NewWorkspaceLogger(log.With(zap.String("service", "tenant")),
			tenant.NewService(log, recordStore, accessSvc, secrets, memberStore, resolver)))

	accessHandler := access.NewHTTPAccessHandler(log, accessSvc)
	workspaceHandler := tenant.NewHTTPWorkspaceHandler(log, workspaceSvc, resolver, accessHandler)

	httpMetrics := kithttp.NewMetrics("workspaced")
	reg.MustRegister(httpMetrics.Requests, httpMetrics.RequestDur)

	api := kithttp.NewAPI(log)
	r := chi.NewRouter()
	r.Use(
		kithttp.Metrics("workspaced", httpMetrics.Requests, httpMetrics.RequestDur),
		kithttp.AccessLog(log, "/probe", "/metrics"),
		kithttp.SetCORS,
	)
	r.Get("/probe", func(w nethttp.ResponseWriter, _ *nethttp.Request) {
		w.WriteHeader(nethttp.StatusNoContent)
	})
	r.Method("GET", "/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	r.Group(func(r chi.Router) {
		r.Use(kithttp.PrincipalAuth(api, []byte(flags.jwtSecret)))
		r.Mount(workspaceHandler.Prefix(), workspaceHandler)

		if flags.redisAddress != "" {
			client := redis.NewClient(&redis.Options{Addr: flags.redisAddress})
			queue := registration.NewRedisQueue(log.With(zap.String("service", "registration")), client, flags.redisQueue)
			regHandler := registration.NewHTTPRegistrationHandler(log, queue)
			r.Mount(regHandler.Prefix(), regHandler)
		}
	})

	srv := &nethttp.Server{
		Addr:    flags.httpBindAddress,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Listening", zap.String("transport", "http"), zap.String("addr", flags.httpBindAddress))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	return srv.Shutdown(shutdownCtx)
}

func loadSecrets() (*secret.Static, error) {
	if flags.secretsPath == "" {
		return secret.NewStatic(nil), nil
	}
	return secret.NewStaticFromFile(flags.secretsPath)
}
