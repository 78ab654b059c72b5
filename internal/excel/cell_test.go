package excel

import (
	"math"
	"testing"
)

func TestCellIsNumeric(t *testing.T) {
	cases := []struct {
		name string
		cell Cell
		want bool
	}{
		{name: "number", cell: Number(42), want: true},
		{name: "nan number", cell: Number(math.NaN()), want: false},
		{name: "infinite number", cell: Number(math.Inf(1)), want: false},
		{name: "padded code", cell: Text(" 001 "), want: true},
		{name: "exponent", cell: Text("1e3"), want: true},
		{name: "inf text", cell: Text("Inf"), want: false},
		{name: "infinity text", cell: Text("-infinity"), want: false},
		{name: "nan text", cell: Text("NaN"), want: false},
		{name: "hex float", cell: Text("0x1p4"), want: false},
		{name: "label", cell: Text("TOTAL"), want: false},
		{name: "blank", cell: Text("  "), want: false},
		{name: "absent", cell: Absent(), want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.cell.IsNumeric(); got != tc.want {
				t.Fatalf("IsNumeric(%+v) = %v, want %v", tc.cell, got, tc.want)
			}
		})
	}
}

func TestLocateRowsSkipsNonFiniteCodes(t *testing.T) {
	rows := []RawRow{
		{Text("Código"), Text("Cliente")},
		{Text("Inf"), Text("Ana")},
		{Text("0x10"), Text("Bob")},
		{Text("7"), Text("Caio")},
	}
	_, data := LocateRows(rows)
	if len(data) != 1 || data[0].At(1).Text != "Caio" {
		t.Fatalf("unexpected data rows: %+v", data)
	}
}
