package models

import "time"

// Lock states for the service-time lock.
const (
	LockActive           = "ACTIVE"
	LockGracePeriod      = "GRACE_PERIOD"
	LockCompleted        = "LOCKED_COMPLETED"
	LockTimeManipulation = "LOCKED_TIME_MANIPULATION"
)

// Trust levels for the time estimate a lock decision was based on.
const (
	TrustNetwork = "network"
	TrustDevice  = "device"
)

// LockStatus is the cached outcome of the last full lock check. It is
// derived state: cheap reads (CanEdit, banner text) consume it between
// recomputations, it is never authoritative on its own.
type LockStatus struct {
	IsLocked       bool   `json:"isLocked"`
	State          string `json:"state"`
	Reason         string `json:"reason"`
	ServiceEndDate string `json:"serviceEndDate"`
	GracePeriodEnd string `json:"gracePeriodEnd"`
	TrustLevel     string `json:"trustLevel"`
	DaysRemaining  int    `json:"daysRemaining"`
	CheckedAt      string `json:"checkedAt"`
}

// TimeCheckpoint is one sample in the rolling clock-tamper log: the
// device clock at check time plus whatever network times were fetched.
type TimeCheckpoint struct {
	DeviceTime   time.Time   `json:"deviceTime"`
	NetworkTimes []time.Time `json:"networkTimes"`
}
