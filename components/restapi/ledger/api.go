package ledger

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/inx-app/pkg/httpserver"
	"github.com/iotaledger/stake-ledger/pkg/jwt"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

type ledgerAPI struct {
	ledger     *ledger.Ledger
	auth       *jwt.Auth
	maxResults int
}

func newLedgerAPI(l *ledger.Ledger, auth *jwt.Auth, maxResults int) *ledgerAPI {
	return &ledgerAPI{
		ledger:     l,
		auth:       auth,
		maxResults: maxResults,
	}
}

func (a *ledgerAPI) register(routeGroup *echo.Group) {
	routeGroup.GET(RouteConfig, jsonHandler(a.config))
	routeGroup.GET(RouteHeight, jsonHandler(a.height))
	routeGroup.GET(RouteTotalLiquidStake, jsonHandler(a.totalLiquidStake))
	routeGroup.GET(RouteStakeRatios, jsonHandler(a.stakeRatios))
	routeGroup.GET(RouteRedemptionRatios, jsonHandler(a.redemptionRatios))
	routeGroup.GET(RouteRewardSummaries, jsonHandler(a.rewardSummaries))
	routeGroup.GET(RouteAccounts, jsonHandler(a.accounts))
	routeGroup.GET(RouteAccountMetadata, jsonHandler(a.metadata))
	routeGroup.GET(RouteAccountDepositRecords, jsonHandler(a.depositRecords))
	routeGroup.GET(RouteAccountStake, jsonHandler(a.stake))
	routeGroup.GET(RouteAccountStakeRatio, jsonHandler(a.stakeRatio))
	routeGroup.GET(RouteAccountRewardBalance, jsonHandler(a.rewardBalance))
	routeGroup.GET(RouteAccountRedemptionBalance, jsonHandler(a.redemptionBalance))

	routeGroup.POST(RouteOperations, jsonHandler(a.executeOperation))
	routeGroup.POST(RouteAuthToken, jsonHandler(a.issueToken))
}

func jsonHandler[T any](handler func(c echo.Context) (T, error)) echo.HandlerFunc {
	return func(c echo.Context) error {
		resp, err := handler(c)
		if err != nil {
			return err
		}

		return httpserver.JSONResponse(c, http.StatusOK, resp)
	}
}
