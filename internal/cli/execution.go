package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/mathsolve/internal/config"
	"github.com/agbru/mathsolve/internal/provider"
	"github.com/agbru/mathsolve/internal/ui"
)

// PrintExecutionConfig displays the query and the limits it runs under.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	fmt.Fprintf(out, "Solving %s%q%s with a per-provider timeout of %s%s%s (overall %s%s%s).\n",
		ui.ColorMagenta(), cfg.Query, ui.ColorReset(),
		ui.ColorYellow(), cfg.ProviderTimeout, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	graph := "enabled"
	if !cfg.Graph {
		graph = "disabled"
	}
	fmt.Fprintf(out, "Arbiter: %s%s%s, graph: %s%s%s.\n",
		ui.ColorCyan(), cfg.Arbiter, ui.ColorReset(), ui.ColorCyan(), graph, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
}

// PrintExecutionMode displays which providers will be queried.
func PrintExecutionMode(providers []provider.Provider, out io.Writer) {
	names := make([]string, len(providers))
	for i, p := range providers {
		names[i] = p.Name()
	}
	var modeDesc string
	if len(providers) > 1 {
		modeDesc = fmt.Sprintf("Parallel fan-out to %d providers (%s%s%s)",
			len(providers), ui.ColorGreen(), strings.Join(names, ", "), ui.ColorReset())
	} else {
		modeDesc = fmt.Sprintf("Single query to the %s%s%s provider",
			ui.ColorGreen(), strings.Join(names, ""), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
