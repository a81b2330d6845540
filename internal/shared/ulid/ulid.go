package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewRequestID returns a new lexically sortable request id.
var NewRequestID = func() string {
	return ulid.Make().String()
}
