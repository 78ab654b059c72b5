package excel

import "testing"

func TestLocateRows(t *testing.T) {
	rows := []RawRow{
		{Text("Relatório de vendas")},
		{},
		{Text("Código"), Text("Cliente"), Absent(), Absent(), Absent(), Absent(), Text("Valor")},
		{Number(1), Text("Ana")},
		{},
		{Text("2"), Text("Bob")},
		{Text("abc"), Text("Carla")},
		{Text("   "), Text("Dora")},
		{Number(0), Text("Zero")},
		{Text("Total"), Absent(), Absent(), Absent(), Absent(), Absent(), Number(300)},
		{Number(9), Text("Subtotal loja")},
	}

	header, data := LocateRows(rows)
	if header != 2 {
		t.Fatalf("header = %d, want 2", header)
	}
	if len(data) != 3 {
		t.Fatalf("len(data) = %d, want 3", len(data))
	}
	wantClients := []string{"Ana", "Bob", "Zero"}
	for i, row := range data {
		if got := row.At(colClient).Text; got != wantClients[i] {
			t.Fatalf("row %d client = %q, want %q", i, got, wantClients[i])
		}
	}
}

func TestFindHeaderRow(t *testing.T) {
	cases := []struct {
		name string
		rows []RawRow
		want int
	}{
		{name: "english header", rows: []RawRow{{Text("x")}, {Text("code"), Text("client"), Text("amount")}}, want: 1},
		{name: "no keyword text first", rows: []RawRow{{Text("Vendas")}, {Number(1)}}, want: 0},
		{name: "no keyword data first", rows: []RawRow{{Text("001"), Text("Ana")}, {Text("002")}}, want: NoHeader},
		{name: "empty", rows: nil, want: 0},
		{name: "header with total column", rows: []RawRow{{Text("Código"), Text("Cliente"), Text("Valor Total")}, {Number(1)}}, want: 0},
		{name: "footer after headerless data", rows: []RawRow{
			{Number(1), Text("Ana")},
			{Number(2), Text("Bob")},
			{Text("Total Valor"), Absent(), Absent(), Absent(), Absent(), Absent(), Number(30)},
		}, want: NoHeader},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := FindHeaderRow(tc.rows); got != tc.want {
				t.Fatalf("got %d want %d", got, tc.want)
			}
		})
	}
}

func TestLocateRowsHeaderOnly(t *testing.T) {
	header, data := LocateRows([]RawRow{{Text("Código"), Text("Cliente")}})
	if header != 0 || len(data) != 0 {
		t.Fatalf("got header=%d rows=%d", header, len(data))
	}
}

func TestLocateRowsHeaderlessWithFooter(t *testing.T) {
	rows := []RawRow{
		{Number(1), Text("Ana"), Absent(), Absent(), Absent(), Absent(), Number(10)},
		{Number(2), Text("Bob"), Absent(), Absent(), Absent(), Absent(), Number(20)},
		{Text("Total Valor"), Absent(), Absent(), Absent(), Absent(), Absent(), Number(30)},
	}
	header, data := LocateRows(rows)
	if header != NoHeader {
		t.Fatalf("header = %d, want NoHeader", header)
	}
	if len(data) != 2 || data[0].At(1).Text != "Ana" || data[1].At(1).Text != "Bob" {
		t.Fatalf("unexpected data rows: %+v", data)
	}
}
