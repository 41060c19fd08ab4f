package ledger

import (
	"slices"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/inx-app/pkg/httpserver"
	"github.com/iotaledger/stake-ledger/pkg/ledger"
	"github.com/iotaledger/stake-ledger/pkg/restapi"
)

const (
	// QueryParameterPageSize is used to specify the page size.
	QueryParameterPageSize = "pageSize"

	// QueryParameterCursor is the id of the last deposit record of the previous page.
	QueryParameterCursor = "cursor"
)

type HeightResponse struct {
	Height uint64 `json:"height"`
}

type AmountResponse struct {
	Amount ledger.Amount `json:"amount"`
}

type RatioResponse struct {
	Ratio ledger.Ratio `json:"ratio"`
}

type RatiosResponse struct {
	Ratios []*ledger.AccountRatio `json:"ratios"`
}

type AccountsResponse struct {
	Accounts []ledger.Address `json:"accounts"`
}

type DepositRecordsResponse struct {
	Records []*ledger.DepositRecord `json:"records"`
	// Cursor is set if more records are available.
	Cursor uint64 `json:"cursor,omitempty"`
}

func (a *ledgerAPI) config(_ echo.Context) (*ledger.Config, error) {
	config, err := a.ledger.Config()

	return config, restapi.LedgerError(err)
}

func (a *ledgerAPI) height(_ echo.Context) (*HeightResponse, error) {
	height, err := a.ledger.Height()
	if err != nil {
		return nil, restapi.LedgerError(err)
	}

	return &HeightResponse{Height: height}, nil
}

func (a *ledgerAPI) totalLiquidStake(_ echo.Context) (*AmountResponse, error) {
	return amountResponse(a.ledger.TotalLiquidStake())
}

func (a *ledgerAPI) stakeRatios(_ echo.Context) (*RatiosResponse, error) {
	return ratiosResponse(a.ledger.StakeRatios())
}

func (a *ledgerAPI) redemptionRatios(_ echo.Context) (*RatiosResponse, error) {
	return ratiosResponse(a.ledger.RedemptionRatios())
}

func (a *ledgerAPI) rewardSummaries(_ echo.Context) (*ledger.RewardSummaries, error) {
	summaries, err := a.ledger.RewardSummaries()

	return summaries, restapi.LedgerError(err)
}

func (a *ledgerAPI) accounts(_ echo.Context) (*AccountsResponse, error) {
	accounts, err := a.ledger.Accounts()
	if err != nil {
		return nil, restapi.LedgerError(err)
	}

	return &AccountsResponse{Accounts: accounts}, nil
}

func (a *ledgerAPI) metadata(c echo.Context) (*ledger.Metadata, error) {
	address, err := restapi.ParseAddressParam(c)
	if err != nil {
		return nil, err
	}

	metadata, err := a.ledger.Metadata(address)

	return metadata, restapi.LedgerError(err)
}

func (a *ledgerAPI) depositRecords(c echo.Context) (*DepositRecordsResponse, error) {
	address, err := restapi.ParseAddressParam(c)
	if err != nil {
		return nil, err
	}

	pageSize := a.maxResults
	if len(c.QueryParam(QueryParameterPageSize)) > 0 {
		size, err := httpserver.ParseUint32QueryParam(c, QueryParameterPageSize)
		if err != nil {
			return nil, ierrors.Wrapf(echo.ErrBadRequest, "failed to parse page size %s: %s", c.QueryParam(QueryParameterPageSize), err)
		}

		if int(size) < pageSize {
			pageSize = int(size)
		}
	}

	if pageSize <= 0 {
		return nil, ierrors.WithMessage(httpserver.ErrInvalidParameter, "pageSize must be greater than 0")
	}

	var cursor uint64
	if len(c.QueryParam(QueryParameterCursor)) > 0 {
		if cursor, err = strconv.ParseUint(c.QueryParam(QueryParameterCursor), 10, 64); err != nil {
			return nil, ierrors.Wrapf(echo.ErrBadRequest, "failed to parse cursor %s: %s", c.QueryParam(QueryParameterCursor), err)
		}
	}

	records, err := a.ledger.DepositRecords(address)
	if err != nil {
		return nil, restapi.LedgerError(err)
	}

	// records are sorted by id
	start, _ := slices.BinarySearchFunc(records, cursor+1, func(record *ledger.DepositRecord, id uint64) int {
		switch {
		case record.ID < id:
			return -1
		case record.ID > id:
			return 1
		default:
			return 0
		}
	})
	records = records[start:]

	resp := &DepositRecordsResponse{Records: records}
	if len(records) > pageSize {
		resp.Records = records[:pageSize]
		resp.Cursor = resp.Records[pageSize-1].ID
	}

	return resp, nil
}

func (a *ledgerAPI) stake(c echo.Context) (*ledger.Stake, error) {
	address, err := restapi.ParseAddressParam(c)
	if err != nil {
		return nil, err
	}

	stake, err := a.ledger.Stake(address)

	return stake, restapi.LedgerError(err)
}

func (a *ledgerAPI) stakeRatio(c echo.Context) (*RatioResponse, error) {
	address, err := restapi.ParseAddressParam(c)
	if err != nil {
		return nil, err
	}

	ratio, err := a.ledger.StakeRatio(address)
	if err != nil {
		return nil, restapi.LedgerError(err)
	}

	return &RatioResponse{Ratio: ratio}, nil
}

func (a *ledgerAPI) rewardBalance(c echo.Context) (*AmountResponse, error) {
	address, err := restapi.ParseAddressParam(c)
	if err != nil {
		return nil, err
	}

	return amountResponse(a.ledger.RewardBalance(address))
}

func (a *ledgerAPI) redemptionBalance(c echo.Context) (*AmountResponse, error) {
	address, err := restapi.ParseAddressParam(c)
	if err != nil {
		return nil, err
	}

	return amountResponse(a.ledger.RedemptionBalance(address))
}

func amountResponse(amount ledger.Amount, err error) (*AmountResponse, error) {
	if err != nil {
		return nil, restapi.LedgerError(err)
	}

	return &AmountResponse{Amount: amount}, nil
}

func ratiosResponse(ratios []*ledger.AccountRatio, err error) (*RatiosResponse, error) {
	if err != nil {
		return nil, restapi.LedgerError(err)
	}

	return &RatiosResponse{Ratios: ratios}, nil
}
