package excel

import (
	"strings"

	"salesboard/internal/domain"
)

const (
	LabelMastercardMaestro = "Mastercard Maestro"
	LabelVisaElectron      = "Visa Electron"
	LabelVisa              = "Visa"
	LabelElo               = "Elo"
	LabelMastercard        = "Mastercard"
	LabelPix               = "PIX"
	LabelDigitalWallet     = "Carteira Digital"
	LabelCredit            = "Crédito"
	LabelDebit             = "Débito"
	LabelCash              = "Dinheiro"
	LabelPicPay            = "PicPay"
)

type paymentToken struct {
	token string
	label string
}

// Order matters: compound brands must be tested before the generic brand
// they contain.
var paymentTokens = []paymentToken{
	{token: "MASTERCARD_MAESTRO", label: LabelMastercardMaestro},
	{token: "VISA_ELECTRON", label: LabelVisaElectron},
	{token: "VISA", label: LabelVisa},
	{token: "ELO", label: LabelElo},
	{token: "MASTERCARD", label: LabelMastercard},
	{token: "PIX", label: LabelPix},
	{token: "CARTEIRA", label: LabelDigitalWallet},
	{token: "WALLET", label: LabelDigitalWallet},
	{token: "CRÉDITO", label: LabelCredit},
	{token: "CREDITO", label: LabelCredit},
	{token: "CREDIT", label: LabelCredit},
	{token: "DÉBITO", label: LabelDebit},
	{token: "DEBITO", label: LabelDebit},
	{token: "DEBIT", label: LabelDebit},
	{token: "DINHEIRO", label: LabelCash},
	{token: "CASH", label: LabelCash},
	{token: "PICPAY", label: LabelPicPay},
}

// ClassifyPaymentMethod maps a raw payment string to its canonical label.
// Unknown methods keep their trimmed original text so new providers show up
// as their own bucket.
func ClassifyPaymentMethod(cell Cell) string {
	if cell.Kind != CellText {
		return domain.Unspecified
	}
	trimmed := strings.TrimSpace(cell.Text)
	if trimmed == "" {
		return domain.Unspecified
	}

	upper := strings.ToUpper(trimmed)
	for _, candidate := range paymentTokens {
		if strings.Contains(upper, candidate.token) {
			return candidate.label
		}
	}
	return trimmed
}
