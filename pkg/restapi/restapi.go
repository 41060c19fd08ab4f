package restapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/inx-app/pkg/httpserver"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
)

const (
	// ParameterAddress is used to identify an account by its address.
	ParameterAddress = "address"

	// RouteHealth is the route for querying the health of the node.
	RouteHealth = "/health"

	// RouteRoutes is the route for listing the registered API route groups.
	RouteRoutes = "/api/routes"
)

// ErrConflict is returned if the request conflicts with the state of the ledger.
var ErrConflict = echo.NewHTTPError(http.StatusConflict, "conflict")

// ParseAddressParam parses the address parameter of the request.
func ParseAddressParam(c echo.Context) (ledger.Address, error) {
	address, err := ledger.AddressFromString(c.Param(ParameterAddress))
	if err != nil {
		return "", ierrors.WithMessagef(httpserver.ErrInvalidParameter, "invalid address: %w", err)
	}

	return address, nil
}

// LedgerError maps an error returned by the ledger to the matching HTTP error.
func LedgerError(err error) error {
	switch {
	case err == nil:
		return nil
	case ierrors.Is(err, ledger.ErrUnauthorized):
		return ierrors.WithMessagef(echo.ErrForbidden, "%w", err)
	case ierrors.Is(err, ledger.ErrInvalidRewardRange), ierrors.Is(err, ledger.ErrMalformedInput):
		return ierrors.WithMessagef(httpserver.ErrInvalidParameter, "%w", err)
	case ierrors.Is(err, ledger.ErrAccountNotFound):
		return ierrors.WithMessagef(echo.ErrNotFound, "%w", err)
	case ierrors.Is(err, ledger.ErrNoRedemptionRecords), ierrors.Is(err, ledger.ErrArithmeticOverflow):
		return ierrors.WithMessagef(ErrConflict, "%w", err)
	case ierrors.Is(err, ledger.ErrNotInitialized), ierrors.Is(err, ledger.ErrAlreadyInitialized):
		return ierrors.WithMessagef(echo.ErrServiceUnavailable, "%w", err)
	default:
		return ierrors.WithMessagef(echo.ErrInternalServerError, "%w", err)
	}
}
