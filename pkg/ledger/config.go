package ledger

import (
	"io"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
	"github.com/iotaledger/hive.go/stringify"
)

// Config holds the owner of the ledger and the intervals of the periodic tasks in seconds.
type Config struct {
	Owner Address `json:"owner"`

	RewardAccrualInterval       uint64 `json:"rewardAccrualInterval"`
	MaturationInterval          uint64 `json:"maturationInterval"`
	RedemptionRateQueryInterval uint64 `json:"redemptionRateQueryInterval"`
	RewardsWithdrawalInterval   uint64 `json:"rewardsWithdrawalInterval"`

	// RedemptionIntervalThreshold is stored and reported but not consumed by any task.
	RedemptionIntervalThreshold uint64 `json:"redemptionIntervalThreshold"`
}

func (c *Config) Validate() error {
	if err := c.Owner.Validate(); err != nil {
		return ierrors.Wrap(err, "invalid owner")
	}

	return nil
}

// Interval returns the interval of the given task in seconds.
func (c *Config) Interval(task TaskName) (uint64, error) {
	switch task {
	case TaskRewardAccrual:
		return c.RewardAccrualInterval, nil
	case TaskMaturation:
		return c.MaturationInterval, nil
	case TaskRedemptionRateQuery:
		return c.RedemptionRateQueryInterval, nil
	case TaskRewardsWithdrawal:
		return c.RewardsWithdrawalInterval, nil
	default:
		return 0, ierrors.WithMessagef(ErrMalformedInput, "unknown task %q", task)
	}
}

func ConfigFromBytes(b []byte) (*Config, int, error) {
	byteReader := stream.NewByteReader(b)

	c, err := ConfigFromReader(byteReader)
	if err != nil {
		return nil, 0, ierrors.Wrap(err, "failed to parse Config")
	}

	return c, byteReader.BytesRead(), nil
}

func ConfigFromReader(reader io.ReadSeeker) (*Config, error) {
	c := new(Config)

	ownerBytes, err := stream.ReadBytesWithSize(reader, serializer.SeriLengthPrefixTypeAsByte)
	if err != nil {
		return nil, ierrors.Wrap(err, "failed to read Owner")
	}
	if c.Owner, _, err = AddressFromBytes(ownerBytes); err != nil {
		return nil, ierrors.Wrap(err, "failed to parse Owner")
	}

	for _, field := range []*uint64{
		&c.RewardAccrualInterval,
		&c.MaturationInterval,
		&c.RedemptionRateQueryInterval,
		&c.RewardsWithdrawalInterval,
		&c.RedemptionIntervalThreshold,
	} {
		if *field, err = stream.Read[uint64](reader); err != nil {
			return nil, ierrors.Wrap(err, "failed to read interval")
		}
	}

	return c, nil
}

func (c *Config) Bytes() ([]byte, error) {
	byteBuffer := stream.NewByteBuffer()

	if err := stream.WriteBytesWithSize(byteBuffer, []byte(c.Owner), serializer.SeriLengthPrefixTypeAsByte); err != nil {
		return nil, ierrors.Wrap(err, "failed to write Owner")
	}

	for _, field := range []uint64{
		c.RewardAccrualInterval,
		c.MaturationInterval,
		c.RedemptionRateQueryInterval,
		c.RewardsWithdrawalInterval,
		c.RedemptionIntervalThreshold,
	} {
		if err := stream.Write(byteBuffer, field); err != nil {
			return nil, ierrors.Wrap(err, "failed to write interval")
		}
	}

	return byteBuffer.Bytes()
}

func (c *Config) String() string {
	return stringify.Struct("Config",
		stringify.NewStructField("Owner", c.Owner),
		stringify.NewStructField("RewardAccrualInterval", c.RewardAccrualInterval),
		stringify.NewStructField("MaturationInterval", c.MaturationInterval),
		stringify.NewStructField("RedemptionRateQueryInterval", c.RedemptionRateQueryInterval),
		stringify.NewStructField("RewardsWithdrawalInterval", c.RewardsWithdrawalInterval),
		stringify.NewStructField("RedemptionIntervalThreshold", c.RedemptionIntervalThreshold),
	)
}
