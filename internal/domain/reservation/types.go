package reservation

type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusActive, StatusCancelled, StatusCompleted:
		return true
	default:
		return false
	}
}

// RoomStatus tracks each booked room separately so a partial cancellation frees only its rooms.
type RoomStatus string

const (
	RoomStatusActive   RoomStatus = "active"
	RoomStatusReleased RoomStatus = "released"
)

func (s RoomStatus) String() string {
	return string(s)
}

type AgeGroup string

const (
	AgeGroupAdult  AgeGroup = "adult"
	AgeGroupChild  AgeGroup = "child"
	AgeGroupInfant AgeGroup = "infant"
)

func (a AgeGroup) String() string {
	return string(a)
}
