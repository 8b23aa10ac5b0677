package model

// Status is the lifecycle state of a booking. Values outside the known set
// are carried verbatim; callers decide how to render them.
type Status string

const (
	StatusPending  Status = "pending"
	StatusAccepted Status = "accepted"
	StatusTryNext  Status = "try_next"
	StatusLimited  Status = "limited"
	StatusFull     Status = "full"
)

var knownStatuses = map[Status]struct{}{
	StatusPending:  {},
	StatusAccepted: {},
	StatusTryNext:  {},
	StatusLimited:  {},
	StatusFull:     {},
}

func (s Status) IsKnown() bool {
	_, ok := knownStatuses[s]
	return ok
}

// IsResponse reports whether s is one of the admin response states.
func (s Status) IsResponse() bool {
	return s.IsKnown() && s != StatusPending
}

func (s Status) String() string {
	return string(s)
}
