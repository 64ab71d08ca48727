package client

import (
	"encoding/json"
	"os"

	"github.com/shopspring/decimal"

	"github.com/Madhav-Gupta-28/upi-paysim-backend-go/models"
)

// Receiver side of every simulated payment, fixed by the demo.
const (
	receiverUPIID = "merchant@upi"
	receiverName  = "Merchant Account"
	receiverPhone = "+919876543211"
)

// Preferences mirror the browser client's persisted key/value store. Keys
// match the localStorage keys used by the checkout pages.
type Preferences struct {
	SenderName    string          `json:"senderName"`
	SenderPhone   string          `json:"senderPhone"`
	SenderUPI     string          `json:"senderUpi"`
	PaymentAmount decimal.Decimal `json:"paymentAmount"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		SenderName:    "John Doe",
		SenderPhone:   "+919876543210",
		SenderUPI:     "user@upi",
		PaymentAmount: decimal.NewFromFloat(4560.00),
	}
}

// LoadPreferences reads a preferences file, filling any missing or empty key
// from the defaults. A missing or malformed file yields the defaults.
func LoadPreferences(path string) Preferences {
	prefs := DefaultPreferences()

	data, err := os.ReadFile(path)
	if err != nil {
		return prefs
	}

	var stored struct {
		SenderName    *string          `json:"senderName"`
		SenderPhone   *string          `json:"senderPhone"`
		SenderUPI     *string          `json:"senderUpi"`
		PaymentAmount *decimal.Decimal `json:"paymentAmount"`
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		return prefs
	}

	if stored.SenderName != nil && *stored.SenderName != "" {
		prefs.SenderName = *stored.SenderName
	}
	if stored.SenderPhone != nil && *stored.SenderPhone != "" {
		prefs.SenderPhone = *stored.SenderPhone
	}
	if stored.SenderUPI != nil && *stored.SenderUPI != "" {
		prefs.SenderUPI = *stored.SenderUPI
	}
	if stored.PaymentAmount != nil {
		prefs.PaymentAmount = *stored.PaymentAmount
	}
	return prefs
}

func (p Preferences) transactionRequest() models.CreateTransactionRequest {
	return models.CreateTransactionRequest{
		Amount:        p.PaymentAmount,
		SenderUPIID:   p.SenderUPI,
		ReceiverUPIID: receiverUPIID,
		SenderName:    p.SenderName,
		ReceiverName:  receiverName,
		SenderPhone:   p.SenderPhone,
		ReceiverPhone: receiverPhone,
	}
}
