package ledger

import (
	"encoding/json"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/inx-app/pkg/httpserver"
	"github.com/iotaledger/stake-ledger/pkg/jwt"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
	"github.com/iotaledger/stake-ledger/pkg/restapi"
)

// OperationRequest carries an operation in the form {"type": "update_reward", "payload": {...}}.
type OperationRequest struct {
	Type    ledger.OperationType `json:"type"`
	Payload json.RawMessage      `json:"payload,omitempty"`
}

type TokenRequest struct {
	Address ledger.Address `json:"address"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

// sender returns the address of the verified JWT of the request.
func sender(c echo.Context) (ledger.Address, error) {
	claims, ok := jwt.ClaimsFromContext(c)
	if !ok {
		return "", echo.ErrUnauthorized
	}

	address, err := ledger.AddressFromString(claims.Address())
	if err != nil {
		return "", ierrors.WithMessagef(echo.ErrUnauthorized, "invalid jwt subject: %w", err)
	}

	return address, nil
}

func (a *ledgerAPI) executeOperation(c echo.Context) (*ledger.Receipt, error) {
	senderAddress, err := sender(c)
	if err != nil {
		return nil, err
	}

	request := &OperationRequest{}
	if err = c.Bind(request); err != nil {
		return nil, ierrors.WithMessagef(httpserver.ErrInvalidParameter, "invalid operation request: %w", err)
	}

	operation, err := ledger.NewOperation(request.Type)
	if err != nil {
		return nil, restapi.LedgerError(err)
	}

	if len(request.Payload) > 0 {
		if err = json.Unmarshal(request.Payload, operation); err != nil {
			return nil, ierrors.WithMessagef(httpserver.ErrInvalidParameter, "invalid %s payload: %w", request.Type, err)
		}
	}

	receipt, err := a.ledger.Execute(senderAddress, operation)

	return receipt, restapi.LedgerError(err)
}

func (a *ledgerAPI) issueToken(c echo.Context) (*TokenResponse, error) {
	if a.auth == nil {
		return nil, echo.ErrNotFound
	}

	senderAddress, err := sender(c)
	if err != nil {
		return nil, err
	}

	config, err := a.ledger.Config()
	if err != nil {
		return nil, restapi.LedgerError(err)
	}

	if senderAddress != config.Owner {
		return nil, restapi.LedgerError(ierrors.WithMessage(ledger.ErrUnauthorized, "only the owner may issue tokens"))
	}

	request := &TokenRequest{}
	if err = c.Bind(request); err != nil {
		return nil, ierrors.WithMessagef(httpserver.ErrInvalidParameter, "invalid token request: %w", err)
	}

	if err = request.Address.Validate(); err != nil {
		return nil, restapi.LedgerError(err)
	}

	token, err := a.auth.IssueJWT(request.Address.String())
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to issue token")
	}

	return &TokenResponse{Token: token}, nil
}
