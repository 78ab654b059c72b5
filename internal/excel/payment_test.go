package excel

import (
	"testing"

	"salesboard/internal/domain"
)

func TestClassifyPaymentMethod(t *testing.T) {
	cases := []struct {
		name string
		cell Cell
		want string
	}{
		{name: "compound before generic", cell: Text("MASTERCARD_MAESTRO - CREDIT"), want: LabelMastercardMaestro},
		{name: "visa electron", cell: Text("visa_electron debito"), want: LabelVisaElectron},
		{name: "visa", cell: Text("Visa Crédito"), want: LabelVisa},
		{name: "mastercard", cell: Text("MASTERCARD"), want: LabelMastercard},
		{name: "pix lowercase", cell: Text("  pix "), want: LabelPix},
		{name: "wallet", cell: Text("Carteira digital"), want: LabelDigitalWallet},
		{name: "accented credit", cell: Text("Cartão de crédito"), want: LabelCredit},
		{name: "english debit", cell: Text("Debit card"), want: LabelDebit},
		{name: "cash", cell: Text("Cash"), want: LabelCash},
		{name: "picpay", cell: Text("PicPay"), want: LabelPicPay},
		{name: "unknown kept", cell: Text("  Loyalty Points "), want: "Loyalty Points"},
		{name: "blank", cell: Text("   "), want: domain.Unspecified},
		{name: "number", cell: Number(3), want: domain.Unspecified},
		{name: "absent", cell: Absent(), want: domain.Unspecified},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ClassifyPaymentMethod(tc.cell); got != tc.want {
				t.Fatalf("ClassifyPaymentMethod(%q) = %q, want %q", tc.cell.Text, got, tc.want)
			}
		})
	}
}
