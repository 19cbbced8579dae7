package pool

import "errors"

// ErrExhausted is returned by Allocate, Construct, ConstructFunc, Reserve
// and Share when the pool's global free list is empty and it has already
// reached its configured max chunk count.
var ErrExhausted = errors.New("pool: exhausted")

// ErrUnknownPointer is the panic value when Deallocate is called, in debug
// mode, with a pointer this pool never issued. It indicates a defect in
// the caller, not a recoverable runtime condition.
var ErrUnknownPointer = errors.New("pool: deallocate of unknown pointer")

// ErrLeakOnTeardown is returned by Close (and wrapped in the panic raised
// by MustClose) when, in debug mode, live slots remain outstanding.
var ErrLeakOnTeardown = errors.New("pool: leak on teardown")
