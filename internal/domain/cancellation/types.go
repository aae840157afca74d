package cancellation

type Status string

const (
	StatusRequested       Status = "requested"
	StatusApproved        Status = "approved"
	StatusRejected        Status = "rejected"
	StatusRefundPending   Status = "refund_pending"
	StatusRefundProcessed Status = "refund_processed"
)

func (s Status) String() string {
	return string(s)
}

func ParseStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusRequested, StatusApproved, StatusRejected, StatusRefundPending, StatusRefundProcessed:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

// IsOpen reports whether the request still holds its rooms against another cancellation.
func (s Status) IsOpen() bool {
	switch s {
	case StatusRequested, StatusApproved, StatusRefundPending:
		return true
	default:
		return false
	}
}

var transitions = map[Status][]Status{
	StatusRequested:     {StatusApproved, StatusRejected},
	StatusApproved:      {StatusRefundPending},
	StatusRefundPending: {StatusRefundProcessed},
}

func CanTransition(from, to Status) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Decision is what an administrator may do with a pending request.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

func ParseDecision(s string) (Decision, error) {
	switch d := Decision(s); d {
	case DecisionApproved, DecisionRejected:
		return d, nil
	default:
		return "", ErrInvalidDecision
	}
}

func (d Decision) Status() Status {
	if d == DecisionApproved {
		return StatusApproved
	}
	return StatusRejected
}

// Type is Full when the request covers every active room of the reservation.
type Type string

const (
	TypeFull    Type = "full"
	TypePartial Type = "partial"
)

type RefundStatus string

const (
	RefundStatusPending   RefundStatus = "pending"
	RefundStatusProcessed RefundStatus = "processed"
	RefundStatusFailed    RefundStatus = "failed"
)

func (s RefundStatus) String() string {
	return string(s)
}

func ParseRefundStatus(s string) (RefundStatus, error) {
	switch st := RefundStatus(s); st {
	case RefundStatusPending, RefundStatusProcessed, RefundStatusFailed:
		return st, nil
	default:
		return "", ErrInvalidRefundStatus
	}
}
