package sim

// Client is one admitted unit of work. It lives in the resident set of a
// Server from the quantum it is admitted until the quantum it departs.
type Client struct {
	ArrivalQuantum int64 // quantum index at admission
	LiveTime       int64 // quantums spent resident, admission and departure included
}

func newClient(quantum int64) *Client {
	return &Client{ArrivalQuantum: quantum}
}
