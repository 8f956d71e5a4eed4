package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// AgreementStatus represents the lifecycle status of an agreement
type AgreementStatus int

const (
	AgreementStatusDraft  AgreementStatus = 0
	AgreementStatusSent   AgreementStatus = 1
	AgreementStatusSigned AgreementStatus = 2
)

func (s AgreementStatus) String() string {
	return [...]string{"Draft", "Sent", "Signed"}[s]
}

// CanTransitionTo reports whether the status may advance to target.
// The lifecycle is linear and never regresses; signing is allowed from
// both Draft and Sent.
func (s AgreementStatus) CanTransitionTo(target AgreementStatus) bool {
	switch s {
	case AgreementStatusDraft:
		return target == AgreementStatusSent || target == AgreementStatusSigned
	case AgreementStatusSent:
		return target == AgreementStatusSigned
	default:
		return false
	}
}

func (s AgreementStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *AgreementStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = AgreementStatus(i)
		return nil
	}
	switch str {
	case "Draft":
		*s = AgreementStatusDraft
	case "Sent":
		*s = AgreementStatusSent
	case "Signed":
		*s = AgreementStatusSigned
	}
	return nil
}

func (s AgreementStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *AgreementStatus) Scan(value interface{}) error {
	if value == nil {
		*s = AgreementStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = AgreementStatus(v)
	case int:
		*s = AgreementStatus(v)
	}
	return nil
}
