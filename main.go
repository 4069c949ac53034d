package main

import (
	"context"
	"embed"
	"errors"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/appetiteclub/apt"
	"github.com/appetiteclub/apt/middleware"

	"github.com/tandoorclub/foh/internal/billing"
	"github.com/tandoorclub/foh/internal/menu"
	"github.com/tandoorclub/foh/internal/mongo"
	"github.com/tandoorclub/foh/internal/natskv"
	"github.com/tandoorclub/foh/internal/report"
	"github.com/tandoorclub/foh/internal/staff"
	"github.com/tandoorclub/foh/internal/tables"
	"github.com/tandoorclub/foh/pkg"
)

//go:embed seed.json
var seedFS embed.FS

const (
	appNamespace = "FOH"
	appName      = "foh"
	appVersion   = "0.1.0"
)

func main() {
	config, err := apt.LoadConfig(appNamespace, os.Args[1:])
	if err != nil {
		log.Fatalf("%s(%s) cannot setup with error: %v", appName, appVersion, err)
	}

	logLevel, _ := config.GetString("log.level")
	logger := apt.NewLogger(logLevel)

	ctx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGINT,
		syscall.SIGTERM,
		syscall.SIGQUIT,
	)
	defer stop()

	seedCtx, cancelSeeds := context.WithCancel(ctx)
	defer cancelSeeds()

	lifecycle := []interface{}{}

	billRepo := mongo.NewBillRepo(config, logger)
	err = billRepo.Start(ctx)
	if err != nil {
		log.Fatalf("%s(%s) cannot start bill repository: %v", appName, appVersion, err)
	}

	db := billRepo.GetDatabase()
	if db == nil {
		err := errors.New("cannot get bill repo database")
		log.Fatalf("%s(%s) cannot initialize database: %v", appName, appVersion, err)
	}

	menuItemRepo := mongo.NewMenuItemRepo(db)
	userRepo := mongo.NewUserRepo(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatalf("%s(%s) cannot create user indexes: %v", appName, appVersion, err)
	}

	layout := tableLayout(config)

	var store tables.TableStore
	storeKind := config.GetStringOrDef("tables.store", "nats")
	if storeKind == "memory" {
		logger.Info("Using in-memory table store")
		store = tables.NewMemStore(layout.Count)
	} else {
		kvStore := natskv.NewTableStore(config, layout, logger)
		if err := kvStore.Start(ctx); err != nil {
			log.Fatalf("%s(%s) cannot start table state store: %v", appName, appVersion, err)
		}
		lifecycle = append(lifecycle, apt.LifecycleHooks{
			OnStop: kvStore.Stop,
		})
		store = kvStore
	}

	natsURL := config.GetStringOrDef("nats.url", "nats://localhost:4222")

	publisher, err := pkg.NewNATSPublisher(natsURL)
	if err != nil {
		log.Fatalf("%s(%s) cannot connect to NATS publisher: %v", appName, appVersion, err)
	}

	publisherLifecycle := apt.LifecycleHooks{
		OnStop: func(context.Context) error {
			return publisher.Close()
		},
	}
	lifecycle = append(lifecycle, publisherLifecycle)

	tableService := tables.NewService(store, layout, logger)
	billWorkflow := billing.NewWorkflow(billRepo, tableService, publisher, logger)

	tablesHandler := tables.NewHandler(tableService, publisher, config, logger)
	billingHandler := billing.NewHandler(billWorkflow, config, logger)
	menuHandler := menu.NewHandler(menuItemRepo, config, logger)
	staffHandler := staff.NewHandler(userRepo, config, logger)
	reportHandler := report.NewHandler(billRepo, config, logger)

	seedHooks := apt.LifecycleHooks{
		OnStart: menu.SeedingFunc(seedCtx, menuItemRepo, seedFS, logger),
		OnStop:  menu.StopFunc(cancelSeeds),
	}
	lifecycle = append(lifecycle, seedHooks)

	stack := middleware.DefaultStack(middleware.StackOptions{
		Logger:      logger,
		DisableCORS: true, // Internal API service
	})
	stack = append(stack, middleware.InternalOnly())

	options := []apt.Option{
		apt.WithConfig(config),
		apt.WithLogger(logger),
		apt.WithHTTPMiddleware(stack...),
		apt.WithHTTPServerModules("web.port",
			tablesHandler,
			billingHandler,
			menuHandler,
			staffHandler,
			reportHandler,
		),
		apt.WithLifecycle(lifecycle...),
		apt.WithHealthChecks(appName),
	}

	ms := apt.NewMicro(options...)
	logger.Infof("Starting %s(%s)", appName, appVersion)

	if err := ms.Run(ctx); err != nil {
		_ = billRepo.Stop(context.Background())
		log.Fatalf("%s(%s) stopped with error: %v", appName, appVersion, err)
	}

	logger.Infof("%s(%s) stopped", appName, appVersion)
}

func tableLayout(config *apt.Config) tables.Layout {
	layout := tables.DefaultLayout()

	if raw := config.GetStringOrDef("tables.count", ""); raw != "" {
		if count, err := strconv.Atoi(raw); err == nil && count > 0 {
			layout.Count = count
		}
	}
	if raw := config.GetStringOrDef("tables.dine_in_max", ""); raw != "" {
		if max, err := strconv.Atoi(raw); err == nil && max > 0 {
			layout.DineInMax = max
		}
	}

	return layout
}
