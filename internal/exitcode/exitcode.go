package exitcode

// Process exit codes shared by the laplan commands.
const (
	Success         = 0
	UsageError      = 1
	ValidationError = 2
	DBConnError     = 3
	CopyError       = 4
	TransformError  = 5
	// PartialSuccess means the run completed but some rows matched no
	// grammar and --fail-on-unparsed was set.
	PartialSuccess = 6
	ClassifyError  = 7
	OutputError    = 8
)
