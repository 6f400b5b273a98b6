package archive

import (
	"fmt"
	"os"
)

// debugScratch gates compile-time-free scratch-allocator tracing. Follows
// the teacher's hive/alloc.FastAllocator convention of a const bool flag
// plus an env-var-gated verbose flag, rather than a structured logging
// library the teacher itself never reaches for.
const debugScratch = false

// logScratch enables verbose scratch push/pop tracing via the
// RELARCHIVE_LOG_SCRATCH env var, mirroring hive/alloc's HIVE_LOG_ALLOC.
var logScratch = os.Getenv("RELARCHIVE_LOG_SCRATCH") != ""

// debugLogf prints a scratch-allocator debug message if debugScratch is
// enabled.
func debugLogf(format string, args ...any) {
	if debugScratch {
		fmt.Fprintf(os.Stderr, "[SCRATCH] "+format+"\n", args...)
	}
}

// traceLogf prints a scratch-allocator trace message if logScratch is
// enabled, regardless of the debugScratch compile-time flag.
func traceLogf(format string, args ...any) {
	if logScratch {
		fmt.Fprintf(os.Stderr, "[SCRATCH] "+format+"\n", args...)
	}
}
