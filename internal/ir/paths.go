package ir

import "github.com/hpcv/vrpninput/internal/platform"

// ResolvedPaths is the header and link input for one target platform.
type ResolvedPaths struct {
	Platform         platform.Platform `json:"platform"`
	IncludeDirs      []string          `json:"includeDirs"`
	LibraryPaths     []string          `json:"libraryPaths"`
	LibraryArtifacts []string          `json:"libraryArtifacts"`
	Unsupported      bool              `json:"unsupported,omitempty"`
}
