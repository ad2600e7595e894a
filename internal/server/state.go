package server

type State uint32

const (
	// Accepted means the connection is registered but nothing was read yet.
	Accepted State = iota
	// Buffering means the connection is waiting for the rest of the request.
	Buffering
	// Dispatched means a complete frame is being processed and answered.
	Dispatched
	// Closing means the connection is done and about to be released.
	Closing
	// Closed means the connection is released and removed from the registry.
	Closed
)

func (s State) String() string {
	switch s {
	case Accepted:
		return "accepted"
	case Buffering:
		return "buffering"
	case Dispatched:
		return "dispatched"
	case Closing:
		return "closing"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}
