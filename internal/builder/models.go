// internal/builder/models.go
package builder

import "io"

type BuildOptions struct {
	// CleanDestination empties the output directory before writing.
	CleanDestination bool
	// Workers bounds concurrent page renders. Zero means one per CPU.
	Workers int
}

// page is one file of the export. render receives the relative path back to
// the site root computed from relPath.
type page struct {
	relPath string
	render  func(w io.Writer, baseHref string) error
}
