package csvio

import (
	"errors"
	"strings"
	"testing"
)

func TestParse(t *testing.T) {
	data := []byte("Patron ID,Email\n1,a@x.com\n2,b@x.com\n")

	table, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(table.Headers) != 2 || table.Headers[0] != "Patron ID" {
		t.Errorf("headers = %v", table.Headers)
	}
	if len(table.Rows) != 2 {
		t.Fatalf("got %d rows, want 2", len(table.Rows))
	}
	if table.Rows[0]["Patron ID"] != "1" || table.Rows[1]["Email"] != "b@x.com" {
		t.Errorf("rows = %v", table.Rows)
	}
}

func TestParseShortRowPadded(t *testing.T) {
	table, err := Parse([]byte("A,B,C\n1,2\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if table.Rows[0]["C"] != "" {
		t.Errorf("missing cell = %q, want empty", table.Rows[0]["C"])
	}
}

func TestParseLongRowTruncated(t *testing.T) {
	table, err := Parse([]byte("A,B\n1,2,3,4\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	row := table.Rows[0]
	if row["A"] != "1" || row["B"] != "2" || len(row) != 2 {
		t.Errorf("row = %v, want extra cells dropped", row)
	}
}

func TestParseTrimsHeaderAndBOM(t *testing.T) {
	table, err := Parse([]byte("\ufeffPatron ID , Email\n1,a@x.com\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if table.Headers[0] != "Patron ID" || table.Headers[1] != "Email" {
		t.Errorf("headers = %v, want BOM and padding stripped", table.Headers)
	}
}

func TestParseHeaderOnly(t *testing.T) {
	table, err := Parse([]byte("A,B\n"))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if len(table.Rows) != 0 {
		t.Errorf("got %d rows, want 0", len(table.Rows))
	}
}

func TestParseEmptyBuffer(t *testing.T) {
	_, err := Parse(nil)
	if !errors.Is(err, ErrNotTabular) {
		t.Fatalf("err = %v, want ErrNotTabular", err)
	}
}

func TestSerialize(t *testing.T) {
	rows := []map[string]string{
		{"A": "1", "B": "two"},
		{"A": "3"},
	}

	out, err := Serialize([]string{"B", "A"}, rows)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	want := "B,A\ntwo,1\n,3\n"
	if string(out) != want {
		t.Errorf("Serialize = %q, want %q", out, want)
	}
}

func TestSerializeQuoting(t *testing.T) {
	rows := []map[string]string{{"Tags": "Scholar,Donor"}}

	out, err := Serialize([]string{"Tags"}, rows)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !strings.Contains(string(out), `"Scholar,Donor"`) {
		t.Errorf("Serialize = %q, want embedded comma quoted", out)
	}
}

func TestSerializeZeroRows(t *testing.T) {
	out, err := Serialize([]string{"A", "B"}, nil)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if len(out) != 0 {
		t.Errorf("Serialize = %q, want empty buffer for zero rows", out)
	}
}

func TestRoundTrip(t *testing.T) {
	in := "A,B\n1,2\n3,4\n"
	table, err := Parse([]byte(in))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	out, err := Serialize(table.Headers, table.Rows)
	if err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if string(out) != in {
		t.Errorf("round trip = %q, want %q", out, in)
	}
}
