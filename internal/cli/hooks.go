package cli

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/linkdiag/pkg/observability"
)

// logHooks reports pipeline events as debug log records, so --verbose shows
// what the builders did.
type logHooks struct {
	observability.NoopDiagnosticHooks
	logger *log.Logger
}

func (h logHooks) OnBuildComplete(builder string, nodes, edges int, duration time.Duration, err error) {
	if err != nil {
		h.logger.Debug("build failed", "builder", builder, "err", err)
		return
	}
	h.logger.Debug("build complete", "builder", builder, "nodes", nodes, "edges", edges, "took", duration.Round(time.Microsecond))
}

func (h logHooks) OnMerge(external, resolved, merged, folded int) {
	h.logger.Debug("merged manifest", "external", external, "resolved", resolved, "merged", merged, "folded", folded)
}

func (h logHooks) OnCompress(libraries int, version string, compressed bool) {
	switch {
	case compressed:
		h.logger.Debug("compressed platform libraries", "libraries", libraries, "version", version)
	case libraries > 0:
		h.logger.Debug("platform libraries left uncompressed", "libraries", libraries)
	}
}
