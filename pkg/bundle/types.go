package bundle

// Output locations relative to the project root.
const (
	OutputDirName        = "src"
	InstructionsFileName = "custom_instructions.txt"
	ReadmeFileName       = "README.md"
)

// ProcessedFile is a candidate together with its transformed content.
type ProcessedFile struct {
	File    CandidateFile
	Content string
}

// Result describes a finished run.
type Result struct {
	DocumentPath     string     // Absolute path of the written document.
	InstructionsPath string     // Absolute path of the written instructions.
	Candidates       int        // Files found by the walker.
	Included         int        // Files that passed the filter.
	Summary          RunSummary // Per-extension counts of emitted blocks.
}
