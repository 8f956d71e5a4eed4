package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// PaymentMode represents how a payment was made
type PaymentMode int

const (
	PaymentModeCheque PaymentMode = 0
	PaymentModeNEFT   PaymentMode = 1
	PaymentModeRTGS   PaymentMode = 2
	PaymentModeUPI    PaymentMode = 3
)

func (m PaymentMode) String() string {
	return [...]string{"Cheque", "NEFT", "RTGS", "UPI"}[m]
}

// IsValid reports whether m is one of the supported modes.
func (m PaymentMode) IsValid() bool {
	return m >= PaymentModeCheque && m <= PaymentModeUPI
}

// RequiresChequeNumber reports whether a cheque number must accompany the payment.
func (m PaymentMode) RequiresChequeNumber() bool {
	return m == PaymentModeCheque
}

// RequiresUTRNumber reports whether a UTR number must accompany the payment.
func (m PaymentMode) RequiresUTRNumber() bool {
	return m == PaymentModeNEFT || m == PaymentModeRTGS || m == PaymentModeUPI
}

func (m PaymentMode) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

func (m *PaymentMode) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*m = PaymentMode(i)
		return nil
	}
	switch str {
	case "Cheque":
		*m = PaymentModeCheque
	case "NEFT":
		*m = PaymentModeNEFT
	case "RTGS":
		*m = PaymentModeRTGS
	case "UPI":
		*m = PaymentModeUPI
	}
	return nil
}

func (m PaymentMode) Value() (driver.Value, error) {
	return int64(m), nil
}

func (m *PaymentMode) Scan(value interface{}) error {
	if value == nil {
		*m = PaymentModeCheque
		return nil
	}
	switch v := value.(type) {
	case int64:
		*m = PaymentMode(v)
	case int:
		*m = PaymentMode(v)
	}
	return nil
}
