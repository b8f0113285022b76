package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores and caches return these
// (optionally wrapped) so services can translate them into domain errors.
//
// ErrNotFound is a factual state, not a failure: the entry does not exist in
// the store or cache. For validation errors (bad input), use
// pkg/domain-errors directly.
var ErrNotFound = errors.New("not found")
