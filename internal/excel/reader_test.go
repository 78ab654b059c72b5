package excel

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

func mkXLSX(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for r, row := range rows {
		for c, v := range row {
			if v == nil {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				t.Fatalf("cell name: %v", err)
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				t.Fatalf("set %s: %v", cell, err)
			}
		}
	}
	buf := bytes.NewBuffer(nil)
	if _, err := f.WriteTo(buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	return buf.Bytes()
}

func TestReadSheetTypedCells(t *testing.T) {
	blob := mkXLSX(t, [][]any{
		{"Código", "Cliente", nil, nil, nil, nil, "Valor", "Pagamento", "Canal", "Data"},
		{"001", "Ana", nil, nil, nil, nil, 150.5, "PIX", "Web", 45000},
		{2, "Bob", nil, nil, nil, nil, "1.234,56", "Cash", true, nil},
	})

	rows, err := ReadSheet("vendas.xlsx", "", bytes.NewReader(blob))
	if err != nil {
		t.Fatalf("ReadSheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("len(rows) = %d, want 3", len(rows))
	}

	ana := rows[1]
	if ana.At(0).Kind != CellText || ana.At(0).Text != "001" {
		t.Fatalf("code cell = %+v", ana.At(0))
	}
	if !ana.At(2).IsAbsent() {
		t.Fatalf("gap cell should be absent, got %+v", ana.At(2))
	}
	if ana.At(6).Kind != CellNumber || ana.At(6).Number != 150.5 {
		t.Fatalf("amount cell = %+v", ana.At(6))
	}
	if ana.At(9).Kind != CellNumber || ana.At(9).Number != 45000 {
		t.Fatalf("date cell = %+v", ana.At(9))
	}

	bob := rows[2]
	if bob.At(0).Kind != CellNumber || bob.At(0).Number != 2 {
		t.Fatalf("code cell = %+v", bob.At(0))
	}
	if bob.At(8).Text != "TRUE" {
		t.Fatalf("bool cell = %+v", bob.At(8))
	}
	if !bob.At(9).IsAbsent() {
		t.Fatalf("missing trailing cell should be absent, got %+v", bob.At(9))
	}
}

func TestParseSalesWorkbook(t *testing.T) {
	blob := mkXLSX(t, [][]any{
		{"001", "Ana", nil, nil, nil, nil, 150.0, "PIX", "Web", 45000},
		{"002", "Bob", nil, nil, nil, nil, -5, "Cash", "Store", 45001},
	})

	result, err := ParseSales("vendas.xlsx", "", bytes.NewReader(blob), testAssembler())
	if err != nil {
		t.Fatalf("ParseSales: %v", err)
	}
	if result.HeaderRow != NoHeader {
		t.Fatalf("header = %d, want %d", result.HeaderRow, NoHeader)
	}
	if len(result.Records) != 1 || result.Records[0].Amount != 150 || result.Records[0].Date != "15/03/2023" {
		t.Fatalf("unexpected records: %+v", result.Records)
	}
}

func TestParseSalesCSV(t *testing.T) {
	data := "\ufeffCódigo,Cliente,a,b,c,d,Valor,Pagamento,Canal,Data\n" +
		"1,Ana,,,,,\"1.234,56\",Pix,Loja,15/03/2023\n" +
		"TOTAL,,,,,,\"1.234,56\",,,\n"

	result, err := ParseSales("upload", "text/csv", strings.NewReader(data), testAssembler())
	if err != nil {
		t.Fatalf("ParseSales: %v", err)
	}
	if result.HeaderRow != 0 || len(result.Records) != 1 {
		t.Fatalf("unexpected result: %+v", result)
	}
	record := result.Records[0]
	if record.Amount != 1234.56 || record.PaymentMethod != LabelPix || record.Date != "15/03/2023" {
		t.Fatalf("unexpected record: %+v", record)
	}
}

func TestReadSheetErrors(t *testing.T) {
	empty := mkXLSX(t, nil)
	zeroes := mkXLSX(t, [][]any{
		{"Código", "Cliente", nil, nil, nil, nil, "Valor"},
		{1, "Ana", nil, nil, nil, nil, 0},
	})
	oleWorkbook := append([]byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, make([]byte, 504)...)

	cases := []struct {
		name        string
		fileName    string
		contentType string
		data        []byte
		want        error
	}{
		{name: "pdf rejected", fileName: "vendas.pdf", contentType: "application/pdf", data: []byte("%PDF"), want: ErrInputFormat},
		{name: "no extension or mime", fileName: "vendas", data: []byte("x"), want: ErrInputFormat},
		{name: "empty bytes", fileName: "vendas.xlsx", data: nil, want: ErrReadFailure},
		{name: "corrupt workbook", fileName: "vendas.xlsx", data: []byte("not a zip archive"), want: ErrReadFailure},
		{name: "empty workbook", fileName: "vendas.xlsx", data: empty, want: ErrEmptySheet},
		{name: "blank csv", fileName: "vendas.csv", data: []byte(",,\n,,\n"), want: ErrEmptySheet},
		{name: "no positive amounts", fileName: "vendas.xlsx", data: zeroes, want: ErrNoValidRecords},
		{name: "legacy xls extension", fileName: "vendas.xls", data: oleWorkbook, want: ErrInputFormat},
		{name: "legacy xls mime", fileName: "blob", contentType: "application/vnd.ms-excel", data: oleWorkbook, want: ErrInputFormat},
		{name: "legacy workbook renamed", fileName: "vendas.xlsx", data: oleWorkbook, want: ErrInputFormat},
		{name: "csv despite excel mime", fileName: "vendas.csv", contentType: "application/vnd.ms-excel", data: []byte(",,\n"), want: ErrEmptySheet},
		{name: "mime fallback", fileName: "blob", contentType: "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data: zeroes, want: ErrNoValidRecords},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSales(tc.fileName, tc.contentType, bytes.NewReader(tc.data), testAssembler())
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}
