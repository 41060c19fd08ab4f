package restapi

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/inx-app/pkg/httpserver"
	"github.com/iotaledger/stake-ledger/pkg/daemon"
	"github.com/iotaledger/stake-ledger/pkg/jwt"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
	"github.com/iotaledger/stake-ledger/pkg/restapi"
)

func init() {
	Component = &app.Component{
		Name:             "RestAPI",
		DepsFunc:         func(cDeps dependencies) { deps = cDeps },
		Params:           params,
		InitConfigParams: initConfigParams,
		Provide:          provide,
		Configure:        configure,
		Run:              run,
		IsEnabled: func(c *dig.Container) bool {
			return ParamsRestAPI.Enabled
		},
	}
}

var (
	Component *app.Component
	deps      dependencies
)

type dependencies struct {
	dig.In

	Echo               *echo.Echo
	JWTAuth            *jwt.Auth
	Ledger             *ledger.Ledger
	RestAPIBindAddress string `name:"restAPIBindAddress"`
	RestRouteManager   *restapi.RestRouteManager
}

func initConfigParams(c *dig.Container) error {
	type cfgResult struct {
		dig.Out
		RestAPIBindAddress      string `name:"restAPIBindAddress"`
		RestAPILimitsMaxResults int    `name:"restAPILimitsMaxResults"`
	}

	if err := c.Provide(func() cfgResult {
		return cfgResult{
			RestAPIBindAddress:      ParamsRestAPI.BindAddress,
			RestAPILimitsMaxResults: ParamsRestAPI.Limits.MaxResults,
		}
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	return nil
}

func provide(c *dig.Container) error {
	if err := c.Provide(func() *echo.Echo {
		e := httpserver.NewEcho(
			Component.Logger,
			nil,
			ParamsRestAPI.DebugRequestLoggerEnabled,
		)
		e.Use(middleware.CORS())
		e.Use(middleware.Gzip())
		e.Use(middleware.BodyLimit(ParamsRestAPI.Limits.MaxBodyLength))
		e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
			Generator: uuid.NewString,
		}))

		return e
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	if err := c.Provide(func() (*jwt.Auth, error) {
		// without a salt every protected route is rejected
		if len(ParamsRestAPI.JWTAuth.Salt) == 0 {
			Component.LogWarnf("'%s' is empty, protected routes are disabled", Component.App().Config().GetParameterPath(&(ParamsRestAPI.JWTAuth.Salt)))

			return nil, nil
		}

		auth, err := jwt.NewAuth(ParamsRestAPI.JWTAuth.Salt, 0, ParamsRestAPI.JWTAuth.Issuer)
		if err != nil {
			return nil, ierrors.Wrap(err, "JWT auth initialization failed")
		}

		return auth, nil
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	type routeManagerDeps struct {
		dig.In
		Echo *echo.Echo
	}

	if err := c.Provide(func(deps routeManagerDeps) *restapi.RestRouteManager {
		return restapi.NewRestRouteManager(deps.Echo)
	}); err != nil {
		Component.LogPanic(err.Error())
	}

	return nil
}

func configure() error {
	middlewareFunc, err := apiMiddleware(deps.JWTAuth, ParamsRestAPI.PublicRoutes, ParamsRestAPI.ProtectedRoutes)
	if err != nil {
		return err
	}

	deps.Echo.Use(middlewareFunc)
	setupRoutes(deps.Echo, deps.Ledger, deps.RestRouteManager)

	return nil
}

func run() error {
	Component.LogInfo("Starting REST-API server ...")

	if err := Component.Daemon().BackgroundWorker("REST-API server", func(ctx context.Context) {
		Component.LogInfo("Starting REST-API server ... done")

		bindAddr := deps.RestAPIBindAddress

		go func() {
			Component.LogInfof("You can now access the API using: http://%s", bindAddr)
			if err := deps.Echo.Start(bindAddr); err != nil && !ierrors.Is(err, http.ErrServerClosed) {
				Component.LogWarnf("Stopped REST-API server due to an error (%s)", err)
			}
		}()

		<-ctx.Done()
		Component.LogInfo("Stopping REST-API server ...")

		shutdownCtx, shutdownCtxCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCtxCancel()

		//nolint:contextcheck // false positive
		if err := deps.Echo.Shutdown(shutdownCtx); err != nil {
			Component.LogWarn(err.Error())
		}

		Component.LogInfo("Stopping REST-API server ... done")
	}, daemon.PriorityRestAPI); err != nil {
		Component.LogPanicf("failed to start worker: %s", err)
	}

	return nil
}
