package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/inx-app/pkg/httpserver"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
	"github.com/iotaledger/stake-ledger/pkg/restapi"
)

type RoutesResponse struct {
	Routes []string `json:"routes"`
}

func setupRoutes(e *echo.Echo, l *ledger.Ledger, routeManager *restapi.RestRouteManager) {
	e.GET(restapi.RouteHealth, func(c echo.Context) error {
		if initialized, err := l.IsInitialized(); err != nil || !initialized {
			return c.NoContent(http.StatusServiceUnavailable)
		}

		return c.NoContent(http.StatusOK)
	})

	e.GET(restapi.RouteRoutes, func(c echo.Context) error {
		resp := &RoutesResponse{
			Routes: routeManager.Routes(),
		}

		return httpserver.JSONResponse(c, http.StatusOK, resp)
	})
}
