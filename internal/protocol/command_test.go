package protocol

import "testing"

func TestParseCommandBuy(t *testing.T) {
	cmd, err := ParseCommand("B 1 AAPL 100 10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Command{Type: CommandBuy, OrderID: 1, Instrument: "AAPL", Price: 100, Count: 10}
	if cmd != want {
		t.Fatalf("got %+v, want %+v", cmd, want)
	}
}

func TestParseCommandSell(t *testing.T) {
	cmd, err := ParseCommand("S 2 AAPL 101 5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.Type != CommandSell {
		t.Fatalf("expected CommandSell, got %v", cmd.Type)
	}
}

func TestParseCommandCancel(t *testing.T) {
	cmd, err := ParseCommand("C 7")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := Command{Type: CommandCancel, OrderID: 7}
	if cmd != want {
		t.Fatalf("got %+v, want %+v", cmd, want)
	}
}

func TestParseCommandIgnoresSurroundingWhitespaceFields(t *testing.T) {
	cmd, err := ParseCommand("  B   1   AAPL   100   10\t ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cmd.OrderID != 1 || cmd.Count != 10 {
		t.Fatalf("unexpected parse of repeated-whitespace line: %+v", cmd)
	}
}

func TestParseCommandRejectsZeroPrice(t *testing.T) {
	if _, err := ParseCommand("B 1 AAPL 0 10"); err == nil {
		t.Fatalf("expected error for zero price")
	}
}

func TestParseCommandRejectsZeroCount(t *testing.T) {
	if _, err := ParseCommand("B 1 AAPL 100 0"); err == nil {
		t.Fatalf("expected error for zero count")
	}
}

func TestParseCommandRejectsWrongFieldCount(t *testing.T) {
	cases := []string{
		"B 1 AAPL 100",
		"B 1 AAPL 100 10 extra",
		"C",
		"C 1 2",
	}
	for _, line := range cases {
		if _, err := ParseCommand(line); err == nil {
			t.Fatalf("expected error for malformed line %q", line)
		}
	}
}

func TestParseCommandRejectsUnknownVerb(t *testing.T) {
	if _, err := ParseCommand("X 1 AAPL 100 10"); err == nil {
		t.Fatalf("expected error for unknown command verb")
	}
}

func TestParseCommandRejectsNonNumericFields(t *testing.T) {
	cases := []string{
		"B abc AAPL 100 10",
		"B 1 AAPL abc 10",
		"B 1 AAPL 100 abc",
		"C abc",
	}
	for _, line := range cases {
		if _, err := ParseCommand(line); err == nil {
			t.Fatalf("expected error for non-numeric field in %q", line)
		}
	}
}

func TestParseCommandRejectsEmptyLine(t *testing.T) {
	if _, err := ParseCommand(""); err == nil {
		t.Fatalf("expected error for empty line")
	}
	if _, err := ParseCommand("   "); err == nil {
		t.Fatalf("expected error for whitespace-only line")
	}
}

func TestParseCommandRejectsOverflowingUint32(t *testing.T) {
	if _, err := ParseCommand("B 1 AAPL 4294967296 10"); err == nil {
		t.Fatalf("expected error for a price that overflows uint32")
	}
}
