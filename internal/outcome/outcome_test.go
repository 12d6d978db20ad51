package outcome

import (
	"bytes"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/Silmaen/EvenementLoto-sub001/internal/round"
)

func TestRoundTrip(t *testing.T) {
	in := Outcome{Kind: round.Reverse, WinnerID: 42, Prizes: []uint32{10, 20, 30}}
	var buf bytes.Buffer
	if err := Write(&buf, in); err != nil {
		t.Fatalf("write: %v", err)
	}
	out, err := Read(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if out.Kind != round.Reverse || out.WinnerID != 42 {
		t.Fatalf("got %+v", out)
	}
	if !out.Equal(in) {
		t.Fatalf("round trip mismatch: %+v vs %+v", out, in)
	}
}

func TestLayout(t *testing.T) {
	got := Marshal(Outcome{Kind: round.FullCard, WinnerID: 0x01020304, Prizes: []uint32{0xAABBCCDD}})
	want := []byte{
		0x03,                      // kind
		0x04, 0x03, 0x02, 0x01,    // winner id
		0x01, 0, 0, 0, 0, 0, 0, 0, // prize count
		0xDD, 0xCC, 0xBB, 0xAA,    // prize
	}
	if !bytes.Equal(got, want) {
		t.Fatalf("layout\n got  % x\n want % x", got, want)
	}
}

func TestEmptyPrizes(t *testing.T) {
	in := Outcome{Kind: round.OneLine, WinnerID: 7}
	b := Marshal(in)
	if len(b) != headerSize {
		t.Fatalf("encoded %d bytes, want %d", len(b), headerSize)
	}
	out, err := Unmarshal(b)
	if err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !out.Equal(in) || len(out.Prizes) != 0 {
		t.Fatalf("got %+v", out)
	}
}

func TestSequentialRecords(t *testing.T) {
	records := []Outcome{
		{Kind: round.OneLine, WinnerID: 1, Prizes: []uint32{5}},
		{Kind: round.TwoLines, WinnerID: 2},
		{Kind: round.FullCard, WinnerID: 3, Prizes: []uint32{100, 50}},
	}
	var buf bytes.Buffer
	for _, o := range records {
		if err := Write(&buf, o); err != nil {
			t.Fatal(err)
		}
	}
	for i, want := range records {
		got, err := Read(&buf)
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
		if !got.Equal(want) {
			t.Fatalf("record %d: got %+v, want %+v", i, got, want)
		}
	}
	if _, err := Read(&buf); !errors.Is(err, io.EOF) {
		t.Fatalf("expected EOF after last record, got %v", err)
	}
}

func TestUnknownKindSurvives(t *testing.T) {
	in := Outcome{Kind: round.Kind(200), WinnerID: 9}
	out, err := Unmarshal(Marshal(in))
	if err != nil {
		t.Fatal(err)
	}
	if out.Kind != in.Kind || out.Kind.Label() != round.UnknownKindLabel {
		t.Fatalf("got kind %d label %q", out.Kind, out.Kind.Label())
	}
}

func TestTruncated(t *testing.T) {
	full := Marshal(Outcome{Kind: round.FullCard, WinnerID: 4, Prizes: []uint32{1, 2}})
	for _, n := range []int{1, 3, 5, 10, headerSize, len(full) - 1} {
		_, err := Unmarshal(full[:n])
		if !errors.Is(err, io.ErrUnexpectedEOF) {
			t.Errorf("truncated at %d: expected ErrUnexpectedEOF, got %v", n, err)
		}
	}
	if _, err := Unmarshal(nil); !errors.Is(err, io.EOF) {
		t.Errorf("empty input: expected EOF, got %v", err)
	}
}

func TestTrailingBytes(t *testing.T) {
	b := append(Marshal(Outcome{Kind: round.OneLine}), 0xFF)
	if _, err := Unmarshal(b); err == nil {
		t.Fatal("expected error for trailing bytes")
	}
}

func TestTooManyPrizes(t *testing.T) {
	b := Marshal(Outcome{Kind: round.OneLine})
	order.PutUint64(b[kindSize+winnerSize:], MaxPrizes+1)
	if _, err := Unmarshal(b); !errors.Is(err, ErrTooManyPrizes) {
		t.Fatalf("expected ErrTooManyPrizes, got %v", err)
	}
	if err := Write(io.Discard, Outcome{Prizes: make([]uint32, MaxPrizes+1)}); !errors.Is(err, ErrTooManyPrizes) {
		t.Fatalf("expected ErrTooManyPrizes on write, got %v", err)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	if err := Write(failingWriter{}, Outcome{Kind: round.OneLine}); err == nil {
		t.Fatal("expected write error")
	}
}

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rounds", "round-1.sdeg")
	in := Outcome{Kind: round.TwoLines, WinnerID: 1523, Prizes: []uint32{15212}}
	if err := SaveFile(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := LoadFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !out.Equal(in) {
		t.Fatalf("got %+v", out)
	}
	if _, err := LoadFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
