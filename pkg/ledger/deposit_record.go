package ledger

import (
	"encoding/binary"
	"io"

	"github.com/iotaledger/hive.go/ierrors"
	"github.com/iotaledger/hive.go/serializer/v2/byteutils"
	"github.com/iotaledger/hive.go/serializer/v2/stream"
	"github.com/iotaledger/hive.go/stringify"
)

// DepositStatus is the lifecycle state of a DepositRecord.
type DepositStatus uint8

const (
	DepositStatusPending DepositStatus = iota
	DepositStatusCompleted
)

func (s DepositStatus) String() string {
	switch s {
	case DepositStatusPending:
		return "pending"
	case DepositStatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

func (s DepositStatus) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *DepositStatus) UnmarshalText(text []byte) error {
	switch string(text) {
	case "pending":
		*s = DepositStatusPending
	case "completed":
		*s = DepositStatusCompleted
	default:
		return ierrors.WithMessagef(ErrMalformedInput, "unknown deposit status %q", text)
	}

	return nil
}

// DepositRecord is a reward that was converted into stake.
type DepositRecord struct {
	ID        uint64        `json:"id"`
	Account   Address       `json:"account"`
	Amount    Amount        `json:"amount"`
	Status    DepositStatus `json:"status"`
	Timestamp uint64        `json:"timestamp"`
	Height    uint64        `json:"height"`
}

func (d *DepositRecord) IsPending() bool {
	return d.Status == DepositStatusPending
}

func (d *DepositRecord) Clone() *DepositRecord {
	return &DepositRecord{
		ID:        d.ID,
		Account:   d.Account,
		Amount:    d.Amount,
		Status:    d.Status,
		Timestamp: d.Timestamp,
		Height:    d.Height,
	}
}

func DepositRecordFromBytes(b []byte) (*DepositRecord, int, error) {
	byteReader := stream.NewByteReader(b)

	d, err := DepositRecordFromReader(byteReader)
	if err != nil {
		return nil, 0, ierrors.Wrap(err, "failed to parse DepositRecord")
	}

	return d, byteReader.BytesRead(), nil
}

func DepositRecordFromReader(reader io.ReadSeeker) (*DepositRecord, error) {
	var err error
	d := new(DepositRecord)

	if d.ID, err = stream.Read[uint64](reader); err != nil {
		return nil, ierrors.Wrap(err, "failed to read ID")
	}
	if d.Account, err = readAddress(reader); err != nil {
		return nil, ierrors.Wrap(err, "failed to read Account")
	}
	if d.Amount, err = stream.ReadObject(reader, AmountLength, AmountFromBytes); err != nil {
		return nil, ierrors.Wrap(err, "failed to read Amount")
	}
	if d.Status, err = stream.Read[DepositStatus](reader); err != nil {
		return nil, ierrors.Wrap(err, "failed to read Status")
	}
	if d.Status > DepositStatusCompleted {
		return nil, ierrors.WithMessagef(ErrMalformedInput, "invalid deposit status %d", d.Status)
	}
	if d.Timestamp, err = stream.Read[uint64](reader); err != nil {
		return nil, ierrors.Wrap(err, "failed to read Timestamp")
	}
	if d.Height, err = stream.Read[uint64](reader); err != nil {
		return nil, ierrors.Wrap(err, "failed to read Height")
	}

	return d, nil
}

func (d *DepositRecord) Bytes() ([]byte, error) {
	byteBuffer := stream.NewByteBuffer()

	if err := stream.Write(byteBuffer, d.ID); err != nil {
		return nil, ierrors.Wrap(err, "failed to write ID")
	}
	if err := writeAddress(byteBuffer, d.Account); err != nil {
		return nil, ierrors.Wrap(err, "failed to write Account")
	}
	if err := stream.WriteObject(byteBuffer, d.Amount, Amount.Bytes); err != nil {
		return nil, ierrors.Wrap(err, "failed to write Amount")
	}
	if err := stream.Write(byteBuffer, d.Status); err != nil {
		return nil, ierrors.Wrap(err, "failed to write Status")
	}
	if err := stream.Write(byteBuffer, d.Timestamp); err != nil {
		return nil, ierrors.Wrap(err, "failed to write Timestamp")
	}
	if err := stream.Write(byteBuffer, d.Height); err != nil {
		return nil, ierrors.Wrap(err, "failed to write Height")
	}

	return byteBuffer.Bytes()
}

func (d *DepositRecord) String() string {
	return stringify.Struct("DepositRecord",
		stringify.NewStructField("ID", d.ID),
		stringify.NewStructField("Account", d.Account),
		stringify.NewStructField("Amount", d.Amount.String()),
		stringify.NewStructField("Status", d.Status.String()),
		stringify.NewStructField("Timestamp", d.Timestamp),
		stringify.NewStructField("Height", d.Height),
	)
}

// depositRecordKeyPrefix groups the records of an account. The length prefix keeps one account from
// being a key prefix of another.
func depositRecordKeyPrefix(account Address) []byte {
	return byteutils.ConcatBytes([]byte{byte(len(account))}, []byte(account))
}

// depositRecordKey appends the big endian id so that records of an account iterate in id order.
func depositRecordKey(account Address, id uint64) []byte {
	return binary.BigEndian.AppendUint64(depositRecordKeyPrefix(account), id)
}
