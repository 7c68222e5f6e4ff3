package index

import "errors"

var (
	// ErrQueryRequired is returned when a search query is empty.
	ErrQueryRequired = errors.New("query is required")
	// ErrIndexNotBuilt is returned when a search runs before any index build
	// has completed.
	ErrIndexNotBuilt = errors.New("file index has not been built yet")
)
