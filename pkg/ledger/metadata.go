package ledger

import (
	"io"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
	"github.com/iotaledger/hive.go/stringify"
)

// Metadata is the per-account configuration consumed by the reward and distribution tasks.
type Metadata struct {
	RewardsAddress    Address `json:"rewardsAddress"`
	LiquidityAddress  Address `json:"liquidityAddress"`
	RedemptionAddress Address `json:"redemptionAddress"`
	MinReward         Amount  `json:"minReward"`
	MaxReward         Amount  `json:"maxReward"`
}

func (m *Metadata) Validate() error {
	for _, address := range []Address{m.RewardsAddress, m.LiquidityAddress, m.RedemptionAddress} {
		if err := address.Validate(); err != nil {
			return err
		}
	}

	if m.MaxReward.LessThan(m.MinReward) {
		return ierrors.WithMessagef(ErrInvalidRewardRange, "max reward %s < min reward %s", m.MaxReward, m.MinReward)
	}

	return nil
}

func MetadataFromBytes(b []byte) (*Metadata, int, error) {
	byteReader := stream.NewByteReader(b)

	m, err := MetadataFromReader(byteReader)
	if err != nil {
		return nil, 0, ierrors.Wrap(err, "failed to parse Metadata")
	}

	return m, byteReader.BytesRead(), nil
}

func MetadataFromReader(reader io.ReadSeeker) (*Metadata, error) {
	var err error
	m := new(Metadata)

	for _, address := range []*Address{&m.RewardsAddress, &m.LiquidityAddress, &m.RedemptionAddress} {
		if *address, err = readAddress(reader); err != nil {
			return nil, err
		}
	}

	if m.MinReward, err = stream.ReadObject(reader, AmountLength, AmountFromBytes); err != nil {
		return nil, ierrors.Wrap(err, "failed to read MinReward")
	}
	if m.MaxReward, err = stream.ReadObject(reader, AmountLength, AmountFromBytes); err != nil {
		return nil, ierrors.Wrap(err, "failed to read MaxReward")
	}

	return m, nil
}

func (m *Metadata) Bytes() ([]byte, error) {
	byteBuffer := stream.NewByteBuffer()

	for _, address := range []Address{m.RewardsAddress, m.LiquidityAddress, m.RedemptionAddress} {
		if err := writeAddress(byteBuffer, address); err != nil {
			return nil, err
		}
	}

	if err := stream.WriteObject(byteBuffer, m.MinReward, Amount.Bytes); err != nil {
		return nil, ierrors.Wrap(err, "failed to write MinReward")
	}
	if err := stream.WriteObject(byteBuffer, m.MaxReward, Amount.Bytes); err != nil {
		return nil, ierrors.Wrap(err, "failed to write MaxReward")
	}

	return byteBuffer.Bytes()
}

func (m *Metadata) String() string {
	return stringify.Struct("Metadata",
		stringify.NewStructField("RewardsAddress", m.RewardsAddress),
		stringify.NewStructField("LiquidityAddress", m.LiquidityAddress),
		stringify.NewStructField("RedemptionAddress", m.RedemptionAddress),
		stringify.NewStructField("MinReward", m.MinReward.String()),
		stringify.NewStructField("MaxReward", m.MaxReward.String()),
	)
}

func readAddress(reader io.ReadSeeker) (Address, error) {
	addressBytes, err := stream.ReadBytesWithSize(reader, serializer.SeriLengthPrefixTypeAsByte)
	if err != nil {
		return "", ierrors.Wrap(err, "failed to read address")
	}

	address, _, err := AddressFromBytes(addressBytes)

	return address, err
}

func writeAddress(writer io.WriteSeeker, address Address) error {
	if err := stream.WriteBytesWithSize(writer, []byte(address), serializer.SeriLengthPrefixTypeAsByte); err != nil {
		return ierrors.Wrapf(err, "failed to write address %s", address)
	}

	return nil
}
