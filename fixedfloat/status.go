package fixedfloat

// OrderStatus is reported by the exchange and never set locally. Values the
// exchange adds later decode verbatim and report Known() == false.
type OrderStatus string

const (
	StatusNew       OrderStatus = "NEW"
	StatusPending   OrderStatus = "PENDING"
	StatusExchange  OrderStatus = "EXCHANGE"
	StatusWithdraw  OrderStatus = "WITHDRAW"
	StatusDone      OrderStatus = "DONE"
	StatusExpired   OrderStatus = "EXPIRED"
	StatusEmergency OrderStatus = "EMERGENCY"
)

func (s OrderStatus) Known() bool {
	switch s {
	case StatusNew, StatusPending, StatusExchange, StatusWithdraw,
		StatusDone, StatusExpired, StatusEmergency:
		return true
	}
	return false
}

// IsTerminal reports whether the exchange will not move the order further
// without user action.
func (s OrderStatus) IsTerminal() bool {
	return s == StatusDone || s == StatusExpired
}

func (s OrderStatus) String() string {
	if s == "" {
		return "UNKNOWN"
	}
	return string(s)
}

// Phase is the lifecycle position derived from a snapshot. It refines
// PENDING into PENDING and CONFIRMING.
type Phase string

const (
	PhaseNew        Phase = "NEW"
	PhasePending    Phase = "PENDING"
	PhaseConfirming Phase = "CONFIRMING"
	PhaseExchange   Phase = "EXCHANGE"
	PhaseWithdraw   Phase = "WITHDRAW"
	PhaseDone       Phase = "DONE"
	PhaseExpired    Phase = "EXPIRED"
	PhaseEmergency  Phase = "EMERGENCY"
	PhaseUnknown    Phase = "UNKNOWN"
)

// EmergencyChoice is a resolution offered for an order in EMERGENCY.
type EmergencyChoice string

const (
	ChoiceNone     EmergencyChoice = "NONE"
	ChoiceExchange EmergencyChoice = "EXCHANGE"
	ChoiceRefund   EmergencyChoice = "REFUND"
)
