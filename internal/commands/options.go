package commands

// GridOptions holds common command-line flags and options
type GridOptions struct {
	OutputFormat string
	Verbosity    int
	// Sort is a column name, "-" prefixed for descending
	Sort       string
	Page       int
	PageSize   int
	PagerCount int
}
