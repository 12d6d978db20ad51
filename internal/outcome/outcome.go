// internal/outcome/outcome.go
//
// Binary record of a finished round.
//
// Layout, little-endian, no padding, no checksum, no version tag:
//
//	kind        1 byte   round.Kind
//	winnerId    4 bytes  uint32
//	prizeCount  8 bytes  uint64
//	prizes      4 bytes  uint32, prizeCount times
//
// The winner's name is not part of the record; it is attached by the caller.
package outcome

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/pkg/errors"

	"github.com/Silmaen/EvenementLoto-sub001/internal/round"
)

// MaxPrizes bounds prizeCount on read so a corrupt header cannot trigger a
// huge allocation.
const MaxPrizes = 1 << 16

const (
	kindSize   = 1
	winnerSize = 4
	countSize  = 8
	prizeSize  = 4
	headerSize = kindSize + winnerSize + countSize
)

var order = binary.LittleEndian

// ErrTooManyPrizes is returned when a record announces more than MaxPrizes prizes.
var ErrTooManyPrizes = errors.New("outcome: prize count exceeds limit")

// Outcome summarizes a finished round.
type Outcome struct {
	Kind     round.Kind
	WinnerID uint32
	Prizes   []uint32
}

// Size is the encoded length of o in bytes.
func (o Outcome) Size() int { return headerSize + prizeSize*len(o.Prizes) }

// Equal reports whether both outcomes carry the same fields. A nil and an
// empty prize list are equal.
func (o Outcome) Equal(other Outcome) bool {
	if o.Kind != other.Kind || o.WinnerID != other.WinnerID || len(o.Prizes) != len(other.Prizes) {
		return false
	}
	for i := range o.Prizes {
		if o.Prizes[i] != other.Prizes[i] {
			return false
		}
	}
	return true
}

// Write encodes o to w in one call.
func Write(w io.Writer, o Outcome) error {
	if len(o.Prizes) > MaxPrizes {
		return ErrTooManyPrizes
	}
	if _, err := w.Write(Marshal(o)); err != nil {
		return errors.Wrap(err, "outcome: write")
	}
	return nil
}

// Marshal returns the encoded record.
func Marshal(o Outcome) []byte {
	buf := make([]byte, o.Size())
	buf[0] = byte(o.Kind)
	order.PutUint32(buf[kindSize:], o.WinnerID)
	order.PutUint64(buf[kindSize+winnerSize:], uint64(len(o.Prizes)))
	p := buf[headerSize:]
	for i, v := range o.Prizes {
		order.PutUint32(p[i*prizeSize:], v)
	}
	return buf
}

// Read decodes one record from r. On error the returned Outcome is the zero
// value; nothing read before the failure is kept.
func Read(r io.Reader) (Outcome, error) {
	var head [headerSize]byte
	if _, err := io.ReadFull(r, head[:kindSize]); err != nil {
		return Outcome{}, errors.Wrap(err, "outcome: read kind")
	}
	if _, err := io.ReadFull(r, head[kindSize:kindSize+winnerSize]); err != nil {
		return Outcome{}, errors.Wrap(eof(err), "outcome: read winner id")
	}
	if _, err := io.ReadFull(r, head[kindSize+winnerSize:]); err != nil {
		return Outcome{}, errors.Wrap(eof(err), "outcome: read prize count")
	}
	n := order.Uint64(head[kindSize+winnerSize:])
	if n > MaxPrizes {
		return Outcome{}, errors.Wrapf(ErrTooManyPrizes, "count %d", n)
	}

	body := make([]byte, int(n)*prizeSize)
	if _, err := io.ReadFull(r, body); err != nil {
		return Outcome{}, errors.Wrap(eof(err), "outcome: read prizes")
	}
	o := Outcome{
		Kind:     round.Kind(head[0]),
		WinnerID: order.Uint32(head[kindSize:]),
		Prizes:   make([]uint32, n),
	}
	for i := range o.Prizes {
		o.Prizes[i] = order.Uint32(body[i*prizeSize:])
	}
	return o, nil
}

// Unmarshal decodes a record held in memory. Trailing bytes are an error.
func Unmarshal(b []byte) (Outcome, error) {
	r := bytes.NewReader(b)
	o, err := Read(r)
	if err != nil {
		return Outcome{}, err
	}
	if r.Len() != 0 {
		return Outcome{}, errors.Errorf("outcome: %d trailing bytes", r.Len())
	}
	return o, nil
}

// eof turns a clean EOF in the middle of a record into ErrUnexpectedEOF.
func eof(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}
