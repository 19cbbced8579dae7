package framer

import "errors"

// ErrOverflow is reported through a Ring's ErrFunc when a document would
// need to grow the ring past its configured maximum capacity.
var ErrOverflow = errors.New("framer: document exceeds ring max capacity")
