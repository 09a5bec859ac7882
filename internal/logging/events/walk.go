package events

import (
	"time"

	"github.com/atomicstack/fpick/internal/logging"
)

type WalkTracer struct{}

var Walk = WalkTracer{}

func (WalkTracer) Done(root string, files, skipped int, elapsed time.Duration) {
	logging.Trace("walk.done", map[string]interface{}{
		"root":      root,
		"files":     files,
		"skipped":   skipped,
		"elapsedMs": elapsed.Milliseconds(),
	})
}
