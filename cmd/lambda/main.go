package main

import (
	"context"
	"errors"
	"os"
	"time"

	awslambda "github.com/aws/aws-lambda-go/lambda"
	"github.com/aws/aws-xray-sdk-go/xray"

	adaptermiddleware "asset-console/internal/adapters/http/middleware"
	adapterlogger "asset-console/internal/adapters/logger"
	"asset-console/internal/application"
	infraauth "asset-console/internal/infrastructure/auth"
	"asset-console/internal/infrastructure/dynamodb"
	httpiface "asset-console/internal/interfaces/http"
	platformlambda "asset-console/internal/platform/lambda"
)

// The lambda entrypoint always runs on DynamoDB storage; local files do not
// survive between invocations.
func main() {
	logger := adapterlogger.New()
	ctx := context.Background()

	tableName := os.Getenv("TABLE_NAME")
	region := os.Getenv("AWS_REGION")
	secret := os.Getenv("SESSION_SECRET")
	if tableName == "" || region == "" || secret == "" {
		logger.Error(ctx, "configuration error", "error", errors.New("TABLE_NAME, AWS_REGION and SESSION_SECRET are required"))
		os.Exit(1)
	}
	authMode, err := adaptermiddleware.ParseAuthMode()
	if err != nil {
		logger.Error(ctx, "configuration error", "error", err)
		os.Exit(1)
	}
	xray.Configure(xray.Config{LogLevel: "error"})

	store, err := dynamodb.NewSnapshotStore(ctx, region, tableName)
	if err != nil {
		logger.Error(ctx, "failed to initialize snapshot store", "error", err)
		os.Exit(1)
	}
	credentials, err := infraauth.DemoTable()
	if err != nil {
		logger.Error(ctx, "failed to build credential table", "error", err)
		os.Exit(1)
	}
	tokens := infraauth.NewTokenIssuer([]byte(secret), 12*time.Hour)

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
		RequestLogger: adaptermiddleware.RequestLogger(logger),
		SetupGate:     adaptermiddleware.SetupGate(authSvc),
		Session:       adaptermiddleware.SessionAuth(authMode, tokens, authSvc),
		State:         authSvc,
	}
	e := httpiface.NewMainRouter(
		httpiface.NewAssetsHandler(assetSvc),
		httpiface.NewRolesHandler(roleSvc),
		httpiface.NewAuthHandler(authSvc, tokens),
		mw,
	)
	awslambda.Start(platformlambda.NewLambdaHandler(e))
}
