package errors

import "errors"

// Input errors
var (
	ErrBucketRequired   = errors.New("artifact bucket is required")
	ErrManifestNotFound = errors.New("asset manifest not found")
	ErrInvalidManifest  = errors.New("invalid asset manifest")
	ErrInvalidEntry     = errors.New("invalid asset manifest entry")
)

// Resource, upload and output errors
var (
	ErrArtifactNotFound = errors.New("artifact not found in build directory")
	ErrUpload           = errors.New("failed to upload artifact")
	ErrWriteOutput      = errors.New("failed to write template configuration")
)
