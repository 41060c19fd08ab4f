package ledger

import (
	"go.uber.org/dig"

	"github.com/iotaledger/hive.go/app"
	"github.com/iotaledger/stake-ledger/components/restapi"
	"github.com/iotaledger/stake-ledger/pkg/jwt"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
	restapipkg "github.com/iotaledger/stake-ledger/pkg/restapi"
)

const (
	// RouteConfig is the route for getting the config of the ledger.
	// GET returns the config.
	RouteConfig = "/config"

	// RouteHeight is the route for getting the number of committed operations.
	RouteHeight = "/height"

	// RouteTotalLiquidStake is the route for getting the total liquid stake.
	RouteTotalLiquidStake = "/total-liquid-stake"

	// RouteStakeRatios is the route for getting the stake ratios of all accounts.
	RouteStakeRatios = "/stake-ratios"

	// RouteRedemptionRatios is the route for getting the redemption ratios of all accounts.
	RouteRedemptionRatios = "/redemption-ratios"

	// RouteRewardSummaries is the route for getting the reward summaries of all accounts with metadata.
	RouteRewardSummaries = "/reward-summaries"

	// RouteAccounts is the route for listing all accounts with metadata.
	RouteAccounts = "/accounts"

	// RouteAccountMetadata is the route for getting the metadata of an account.
	RouteAccountMetadata = "/accounts/:" + restapipkg.ParameterAddress + "/metadata"

	// RouteAccountDepositRecords is the route for getting the deposit records of an account.
	// GET supports the query parameters pageSize and cursor.
	RouteAccountDepositRecords = "/accounts/:" + restapipkg.ParameterAddress + "/deposit-records"

	// RouteAccountStake is the route for getting the provisional and completed stake of an account.
	RouteAccountStake = "/accounts/:" + restapipkg.ParameterAddress + "/stake"

	// RouteAccountStakeRatio is the route for getting the stake ratio of an account.
	RouteAccountStakeRatio = "/accounts/:" + restapipkg.ParameterAddress + "/stake-ratio"

	// RouteAccountRewardBalance is the route for getting the pending rewards of an account.
	RouteAccountRewardBalance = "/accounts/:" + restapipkg.ParameterAddress + "/reward-balance"

	// RouteAccountRedemptionBalance is the route for getting the redeem tokens of an account.
	RouteAccountRedemptionBalance = "/accounts/:" + restapipkg.ParameterAddress + "/redemption-balance"

	// RouteOperations is the route for executing operations.
	// POST executes the operation on behalf of the JWT subject.
	RouteOperations = "/operations"

	// RouteAuthToken is the route for issuing API tokens.
	// POST issues a token for the given address, only the owner of the ledger may call it.
	RouteAuthToken = "/auth/token"
)

func init() {
	Component = &app.Component{
		Name:      "LedgerAPIV1",
		DepsFunc:  func(cDeps dependencies) { deps = cDeps },
		Configure: configure,
		IsEnabled: func(c *dig.Container) bool {
			return restapi.ParamsRestAPI.Enabled
		},
	}
}

var (
	Component *app.Component
	deps      dependencies
)

type dependencies struct {
	dig.In

	Ledger                  *ledger.Ledger
	JWTAuth                 *jwt.Auth
	RestRouteManager        *restapipkg.RestRouteManager
	RestAPILimitsMaxResults int `name:"restAPILimitsMaxResults"`
}

func configure() error {
	// check if RestAPI plugin is disabled
	if !Component.App().IsComponentEnabled(restapi.Component.Identifier()) {
		Component.LogPanicf("RestAPI plugin needs to be enabled to use the %s plugin", Component.Name)
	}

	newLedgerAPI(deps.Ledger, deps.JWTAuth, deps.RestAPILimitsMaxResults).register(deps.RestRouteManager.AddRoute("ledger/v1"))

	return nil
}
