// Package fileid mints process-wide FileIDs.
//
// A single atomic counter is the only global mutable state in gqlcore
//. Reset exists solely so tests can
// produce deterministic FileID sequences; production callers never call it.
package fileid

import "sync/atomic"

var counter uint32

// Next returns a new, process-unique id. The zero value is never returned,
// so a zero FileID can be used by callers as an "unset" sentinel.
func Next() uint32 {
	return atomic.AddUint32(&counter, 1)
}

// Reset rewinds the counter. Test-mode only: concurrent callers of Next
// racing a Reset will observe duplicate ids, which is why this is not
// exported for production use.
func Reset() {
	atomic.StoreUint32(&counter, 0)
}
