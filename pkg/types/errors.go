package types

import "errors"

// Config validation errors.
var (
	ErrRootDirEmpty      = errors.New("root_dir must not be empty")
	ErrTemplatePathEmpty = errors.New("template_path must not be empty")
)

// Template document errors.
var (
	ErrKeyNotFound  = errors.New("key not found in template")
	ErrInvalidValue = errors.New("template values must be string, boolean, or integer")
	ErrEmptyKey     = errors.New("key name must not be empty")
)

// Corpus and naming errors.
var (
	ErrBadFilename = errors.New("filename does not follow <system>_<kind>_<schema>_<table>.json")
)

// Store lifecycle and query errors.
var (
	ErrStoreDetached   = errors.New("store is detached")
	ErrAlreadyAttached = errors.New("store is already attached")
	ErrBadPredicate    = errors.New("predicate column is not a control table attribute")
	ErrBadIdentifier   = errors.New("invalid SQL identifier")
)

// Schema commit errors.
var (
	ErrSchemaMismatch = errors.New("corpus columns do not match template keys")
)
