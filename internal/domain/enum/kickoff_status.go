package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// KickoffStatus represents the status of a kickoff request in the
// sales-to-delivery handoff.
type KickoffStatus int

const (
	KickoffStatusPending   KickoffStatus = 0
	KickoffStatusAccepted  KickoffStatus = 1
	KickoffStatusReturned  KickoffStatus = 2
	KickoffStatusRejected  KickoffStatus = 3
	KickoffStatusConverted KickoffStatus = 4
)

func (s KickoffStatus) String() string {
	return [...]string{"Pending", "Accepted", "Returned", "Rejected", "Converted"}[s]
}

// IsTerminal reports whether no further transitions are possible.
func (s KickoffStatus) IsTerminal() bool {
	return s == KickoffStatusRejected || s == KickoffStatusConverted
}

// IsLive reports whether the request still blocks creation of another
// kickoff request for the same agreement.
func (s KickoffStatus) IsLive() bool {
	return s == KickoffStatusPending || s == KickoffStatusReturned
}

// CanTransitionTo reports whether the status may move to target.
// Accepted is transient: acceptance converts to a project in the same
// transaction, so Converted is the externally observable outcome.
func (s KickoffStatus) CanTransitionTo(target KickoffStatus) bool {
	switch s {
	case KickoffStatusPending:
		return target == KickoffStatusAccepted || target == KickoffStatusReturned ||
			target == KickoffStatusRejected || target == KickoffStatusConverted
	case KickoffStatusAccepted:
		return target == KickoffStatusConverted
	case KickoffStatusReturned:
		return target == KickoffStatusPending
	default:
		return false
	}
}

func (s KickoffStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *KickoffStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		// Try unmarshaling as int
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = KickoffStatus(i)
		return nil
	}
	switch str {
	case "Pending":
		*s = KickoffStatusPending
	case "Accepted":
		*s = KickoffStatusAccepted
	case "Returned":
		*s = KickoffStatusReturned
	case "Rejected":
		*s = KickoffStatusRejected
	case "Converted":
		*s = KickoffStatusConverted
	}
	return nil
}

func (s KickoffStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *KickoffStatus) Scan(value interface{}) error {
	if value == nil {
		*s = KickoffStatusPending
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = KickoffStatus(v)
	case int:
		*s = KickoffStatus(v)
	}
	return nil
}
