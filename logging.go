package cajal

import "github.com/golang/glog"

// glogFatalInvalidField aborts the process when a packed bit field decodes
// to a value outside its declared enum range. Per spec this is impossible
// absent a bit-layout bug, so it is not a recoverable error.
func glogFatalInvalidField(field string, raw uint32) {
	glog.Fatalf("cajal: cell field %q decoded to out-of-domain value %d — bit-layout bug", field, raw)
}

func glogFatalInvalidGate(g Gate) {
	glog.Fatalf("cajal: gate value %d has no opposite/chromosome mapping — bit-layout bug", uint32(g))
}
