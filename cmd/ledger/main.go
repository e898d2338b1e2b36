package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/strangecreator1911/icp-banking-system/internal/command"
	"github.com/strangecreator1911/icp-banking-system/internal/config"
	"github.com/strangecreator1911/icp-banking-system/internal/handler"
	"github.com/strangecreator1911/icp-banking-system/internal/jobs"
	"github.com/strangecreator1911/icp-banking-system/internal/query"
	"github.com/strangecreator1911/icp-banking-system/internal/repository"
	"github.com/strangecreator1911/icp-banking-system/internal/storage"
	"github.com/strangecreator1911/icp-banking-system/shared/events"
	redisClient "github.com/strangecreator1911/icp-banking-system/shared/redis"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.WithError(err).Fatal("Invalid LOG_LEVEL")
	}
	log.SetLevel(level)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Record store (write model)
	backend, err := openBackend(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to open record store")
	}
	defer backend.Close()
	log.WithField("driver", cfg.StoreDriver).Info("Record store ready")

	// Redis (read model cache + event streaming) is optional.
	var (
		rdb       *goredis.Client
		publisher command.EventPublisher = events.NopPublisher{}
	)
	if cfg.RedisAddr != "" {
		client, err := redisClient.NewClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.WithError(err).Fatal("Failed to connect to Redis")
		}
		defer client.Close()
		rdb = client.Client
		publisher = events.NewPublisher(rdb)
		log.WithField("addr", cfg.RedisAddr).Info("Redis connected")
	} else {
		log.Info("REDIS_ADDR not set, running without cache and event streams")
	}

	// --- CQRS wiring ---
	customerRepo := repository.NewCustomerRepository(backend)
	accountWriteRepo := repository.NewAccountWriteRepository(backend)
	accountReadRepo := repository.NewAccountReadRepository(backend, rdb)
	txnWriteRepo := repository.NewTransactionWriteRepository(backend)
	txnReadRepo := repository.NewTransactionReadRepository(backend)
	loanRepo := repository.NewLoanRepository(backend)

	customerCmds := command.NewCustomerCommandService(customerRepo, publisher, log)
	accountCmds := command.NewAccountCommandService(customerRepo, accountWriteRepo, accountReadRepo, publisher, log)
	txnCmds := command.NewTransactionCommandService(accountWriteRepo, customerRepo, txnWriteRepo, accountReadRepo, publisher, log)
	loanCmds := command.NewLoanCommandService(loanRepo, customerRepo, publisher, command.LoanPolicy{
		AutoApproveLimit: cfg.LoanAutoApproveLimit,
		MaxAmount:        cfg.LoanMaxAmount,
	}, log)

	router := handler.NewRouter(handler.Handlers{
		Customers:    handler.NewCustomerHandler(customerCmds, query.NewCustomerQueryService(customerRepo)),
		Accounts:     handler.NewAccountHandler(accountCmds, query.NewAccountQueryService(accountReadRepo)),
		Transactions: handler.NewTransactionHandler(txnCmds, query.NewTransactionQueryService(txnReadRepo)),
		Loans:        handler.NewLoanHandler(loanCmds, query.NewLoanQueryService(loanRepo)),
	}, log, []byte(cfg.JWTSecret))

	var wg sync.WaitGroup

	if rdb != nil {
		hostname, _ := os.Hostname()
		subscriber := events.NewSubscriber(rdb, events.SubscriberConfig{
			Group:    "ledger-loan-review",
			Consumer: "ledger-" + hostname,
			Stream:   events.LoanEventsStream,
			Handler:  loanCmds.HandleLoanEvent,
			Logger:   log,
		})
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := subscriber.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				log.WithError(err).Error("Loan event subscriber stopped")
			}
		}()
	}

	if cfg.LoanReviewSchedule != "" {
		scheduler := jobs.NewScheduler(log)
		if err := scheduler.Add(cfg.LoanReviewSchedule, jobs.NewLoanReviewJob(loanCmds, time.Minute, log)); err != nil {
			log.WithError(err).Fatal("Failed to schedule loan review")
		}
		wg.Add(1)
		go func() {
			defer wg.Done()
			scheduler.Run(ctx)
		}()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Ledger service starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Server shutdown failed")
	}
	wg.Wait()
	log.Info("Ledger service stopped")
}

func openBackend(ctx context.Context, cfg *config.Config) (storage.Backend, error) {
	if cfg.StoreDriver == config.DriverMemory {
		return storage.NewMemoryBackend(), nil
	}
	backend, err := storage.OpenSQL(ctx, cfg.StoreDriver, cfg.DatabaseURL)
	if err != nil {
		return nil, err
	}
	return backend, nil
}
