package main

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/aws/aws-xray-sdk-go/xray"

	adaptermiddleware "asset-console/internal/adapters/http/middleware"
	adapterlogger "asset-console/internal/adapters/logger"
	"asset-console/internal/application"
	infraauth "asset-console/internal/infrastructure/auth"
	"asset-console/internal/infrastructure/dynamodb"
	"asset-console/internal/infrastructure/filestore"
	httpiface "asset-console/internal/interfaces/http"
	"asset-console/internal/ports"
)

type config struct {
	Port          string
	StorageMode   string
	DataDir       string
	TableName     string
	Region        string
	AuthMode      adaptermiddleware.Mode
	SessionSecret string
	SessionTTL    time.Duration
}

func loadConfig() (config, error) {
	authMode, err := adaptermiddleware.ParseAuthMode()
	if err != nil {
		return config{}, err
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	storageMode := os.Getenv("STORAGE_MODE")
	if storageMode == "" {
		storageMode = "file"
	}
	dataDir := os.Getenv("DATA_DIR")
	if dataDir == "" {
		dataDir = "data"
	}
	ttl := 12 * time.Hour
	if raw := os.Getenv("SESSION_TTL"); raw != "" {
		ttl, err = time.ParseDuration(raw)
		if err != nil {
			return config{}, errors.New("invalid SESSION_TTL")
		}
	}
	cfg := config{
		Port:          port,
		StorageMode:   storageMode,
		DataDir:       dataDir,
		TableName:     os.Getenv("TABLE_NAME"),
		Region:        os.Getenv("AWS_REGION"),
		AuthMode:      authMode,
		SessionSecret: os.Getenv("SESSION_SECRET"),
		SessionTTL:    ttl,
	}
	switch cfg.StorageMode {
	case "file":
	case "dynamodb":
		if cfg.TableName == "" || cfg.Region == "" {
			return config{}, errors.New("TABLE_NAME and AWS_REGION are required for dynamodb storage")
		}
	default:
		return config{}, errors.New("invalid storage mode")
	}
	if cfg.AuthMode == adaptermiddleware.ModeToken && cfg.SessionSecret == "" {
		return config{}, errors.New("SESSION_SECRET is required for token auth mode")
	}
	return cfg, nil
}

func main() {
	logger := adapterlogger.New()
	ctx := context.Background()

	cfg, err := loadConfig()
	if err != nil {
		logger.Error(ctx, "configuration error", "error", err)
		os.Exit(1)
	}
	xray.Configure(xray.Config{LogLevel: "error"})

	var store ports.SnapshotStore
	switch cfg.StorageMode {
	case "dynamodb":
		store, err = dynamodb.NewSnapshotStore(ctx, cfg.Region, cfg.TableName)
	default:
		store, err = filestore.NewSnapshotStore(cfg.DataDir)
	}
	if err != nil {
		logger.Error(ctx, "failed to initialize snapshot store", "error", err)
		os.Exit(1)
	}

	credentials, err := infraauth.DemoTable()
	if err != nil {
		logger.Error(ctx, "failed to build credential table", "error", err)
		os.Exit(1)
	}
	tokens := infraauth.NewTokenIssuer([]byte(cfg.SessionSecret), cfg.SessionTTL)

	assetSvc := application.NewAssetService(store, logger.WithComponent("asset-store"))
	roleSvc := application.NewRoleService(store, logger.WithComponent("role-store"))
	authSvc := application.NewAuthService(store, credentials, roleSvc, logger.WithComponent("auth-store"))

	if err := assetSvc.Load(ctx); err != nil {
		logger.Error(ctx, "failed to restore asset snapshot", "error", err)
		os.Exit(1)
	}
	if err := roleSvc.Load(ctx); err != nil {
		logger.Error(ctx, "failed to restore role snapshot", "error", err)
		os.Exit(1)
	}
	if err := authSvc.Load(ctx); err != nil {
		logger.Error(ctx, "failed to restore session snapshot", "error", err)
		os.Exit(1)
	}
	if err := roleSvc.EnsureDefaultRoles(ctx); err != nil {
		logger.Error(ctx, "failed to seed system roles", "error", err)
		os.Exit(1)
	}

	mw := httpiface.Middleware{
		XRay:          adaptermiddleware.XRayMiddleware("asset-console-http"),
		RequestLogger: adaptermiddleware.RequestLogger(logger),
		SetupGate:     adaptermiddleware.SetupGate(authSvc),
		Session:       adaptermiddleware.SessionAuth(cfg.AuthMode, tokens, authSvc),
		State:         authSvc,
	}

	e := httpiface.NewMainRouter(
		httpiface.NewAssetsHandler(assetSvc),
		httpiface.NewRolesHandler(roleSvc),
		httpiface.NewAuthHandler(authSvc, tokens),
		mw,
	)
	logger.Info(ctx, "starting http server", "port", cfg.Port, "storage", cfg.StorageMode)
	e.Logger.Fatal(e.Start(":" + cfg.Port))
}
