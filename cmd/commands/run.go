package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"propmedia"
	"propmedia/config"
	"propmedia/internal/application/usecase"
	brokerRepo "propmedia/internal/domain/repository/broker"
	"propmedia/internal/infrastructure/blobstore"
	"propmedia/internal/infrastructure/broker"
	"propmedia/internal/infrastructure/database"
	"propmedia/internal/infrastructure/minio"
	"propmedia/internal/infrastructure/processing"
	"propmedia/internal/presentation/handler"
	"propmedia/pkg/logger"
)

func HandleRun(args []string) {
	if len(args) < 3 {
		ExitOnError(errors.New("at least 1 arguments expected\nuse help command for more information"))
	}

	cfg, err := config.Load(args[2])
	if err != nil {
		ExitOnError(err)
	}

	logger.InitGlobalLogger(&cfg.Logger)

	logger.Info("running propmedia", "version", propmedia.StringVersion())

	blobs, err := blobstore.NewSQLiteStore(cfg.BlobStore)
	if err != nil {
		ExitOnError(err)
	}

	minIOClient, err := minio.New(&cfg.MinIOClient)
	if err != nil {
		ExitOnError(err)
	}
	minIOUploader := minio.NewUploader(minIOClient, &cfg.MinIOUploader)
	minIORemover := minio.NewRemover(minIOClient, &cfg.MinIORemover)

	db, err := database.Connect(cfg.DBConfig)
	if err != nil {
		ExitOnError(err)
	}
	collections := database.NewCollectionStore(db)

	var publisher brokerRepo.Publisher
	if cfg.BrokerConfig.URI != "" {
		brokerClient, err := broker.NewClient(cfg.BrokerConfig)
		if err != nil {
			ExitOnError(err)
		}
		publisher = broker.NewPublisher(brokerClient, cfg.PublisherConfig)
	} else {
		logger.Warn("no broker configured, collection events will not be published")
	}

	validator := processing.NewValidator(cfg.Validator, processing.NewFFProbe())
	compressor := processing.NewCompressor(cfg.Compressor)
	thumbnailer := processing.NewThumbnailer(cfg.Thumbnails)

	locks := usecase.NewRecordLocks()
	router := usecase.NewStorageRouter(minIOUploader, minIORemover, blobs, cfg.UploadRetry)
	ingester := usecase.NewIngester(validator, compressor, thumbnailer, router,
		collections, publisher, locks)
	manager := usecase.NewCollection(collections, blobs, publisher, locks)

	e := echo.New()
	e.Use(echoMiddleware.CORSWithConfig(echoMiddleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowHeaders: []string{echo.HeaderAuthorization, echo.HeaderContentType, echo.HeaderContentLength},
		AllowMethods: []string{http.MethodGet, http.MethodPut, http.MethodPost,
			http.MethodDelete, http.MethodHead, http.MethodOptions},
		MaxAge: 86400,
	}))
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Secure())
	e.Use(echoMiddleware.BodyLimit(cfg.HTTPServer.BodyLimit))
	e.Use(echoMiddleware.RateLimiter(echoMiddleware.NewRateLimiterMemoryStore(20)))

	e.GET("/health", handler.NewHealthHandler().HandleHealth)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/storage/status", handler.NewStorageHandler(blobs).HandleStatus)

	ingestHandler := handler.NewIngestHandler(ingester)
	listHandler := handler.NewListHandler(manager)
	removeHandler := handler.NewRemoveHandler(manager)
	coverHandler := handler.NewCoverHandler(manager)
	orderHandler := handler.NewOrderHandler(manager)

	e.POST("/records/:parentId/media", ingestHandler.HandleIngest)
	e.GET("/records/:parentId/media", listHandler.HandleList)
	e.DELETE("/records/:parentId/media/:mediaId", removeHandler.HandleRemove)
	e.PUT("/records/:parentId/media/:mediaId/cover", coverHandler.HandleSetCover)
	e.PUT("/records/:parentId/media/order", orderHandler.HandleReorder)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := e.Start(cfg.HTTPServer.Address); err != nil && !errors.Is(err, http.ErrServerClosed) {
			ExitOnError(fmt.Errorf("shutting down server: %w", err))
		}
	}()

	<-ctx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		ExitOnError(err)
	}

	if err := db.Stop(); err != nil {
		logger.Error("couldn't stop db instance", "err", err)
	}

	if err := blobs.Close(); err != nil {
		logger.Error("couldn't close blob store", "err", err)
	}
}
