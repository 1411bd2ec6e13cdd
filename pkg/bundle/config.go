// File: pkg/bundle/config.go
package bundle

// Arguments holds the configuration options for one bundling run.
type Arguments struct {
	Root       string       // Project root to walk; its base name names the document.
	Filter     FilterConfig // Exclusion switches.
	MaxWorkers int          // Number of concurrent readers; <= 0 means one per CPU.
	Tree       bool         // Prepend a project structure section to the document.
	Progress   bool         // Draw a progress bar on stderr while reading files.
}
