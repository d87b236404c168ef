// Package publisher uploads build artifacts to S3 under content-addressed keys
// and records the CloudFormation parameters that point at them.
package publisher

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/go-git/go-billy/v5"
	"github.com/rs/zerolog"
	"github.com/savaki/asset-publisher/internal/errors"
	"github.com/savaki/asset-publisher/internal/manifest"
)

// ObjectUploader stores a local file in a bucket under the given key
type ObjectUploader interface {
	UploadObject(ctx context.Context, bucket, key, localPath string) error
}

// Input describes a single publish run
type Input struct {
	// ManifestFile is the asset manifest, defaults to assets.json
	ManifestFile string
	// Bucket receives every artifact; required
	Bucket string
	// BuildRoot is the directory each manifest path is resolved against
	BuildRoot string
	// OutputFile receives the template configuration, defaults to mainConfiguration.json
	OutputFile string
	// ParametersFile optionally receives the same parameters as a CloudFormation parameter list
	ParametersFile string
}

// Publisher processes an asset manifest one entry at a time
type Publisher struct {
	fs       billy.Filesystem
	uploader ObjectUploader
}

// New returns a Publisher that reads artifacts and writes output through fs
func New(fs billy.Filesystem, uploader ObjectUploader) *Publisher {
	return &Publisher{
		fs:       fs,
		uploader: uploader,
	}
}

// Publish uploads every artifact listed in the manifest and writes the
// resulting template configuration. Entries are handled strictly in manifest
// order; the first failure aborts the run before any output is written and
// uploads already made are left in place.
func (p *Publisher) Publish(ctx context.Context, input Input) (cfg *TemplateConfiguration, err error) {
	logger := zerolog.Ctx(ctx)

	defer func(begin time.Time) {
		logger.Info().
			Err(err).
			Str("bucket", input.Bucket).
			Dur("elapsed", time.Since(begin)).
			Msg("Publish completed")
	}(time.Now())

	if input.Bucket == "" {
		return nil, errors.ErrBucketRequired
	}

	manifestFile := input.ManifestFile
	if manifestFile == "" {
		manifestFile = manifest.DefaultFilename
	}
	outputFile := input.OutputFile
	if outputFile == "" {
		outputFile = DefaultOutputFile
	}

	m, err := manifest.Load(p.fs, manifestFile)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("manifest", manifestFile).
		Int("entries", m.Len()).
		Msg("Loaded asset manifest")

	params := Parameters{}
	for i := 0; i < m.Len(); i++ {
		entry, err := m.Entry(i)
		if err != nil {
			return nil, err
		}

		if err := p.publishEntry(ctx, input.Bucket, input.BuildRoot, entry, params); err != nil {
			return nil, err
		}
	}

	cfg = &TemplateConfiguration{Parameters: params}
	if err := WriteConfiguration(p.fs, outputFile, cfg); err != nil {
		return nil, err
	}

	if input.ParametersFile != "" {
		if err := WriteParameters(p.fs, input.ParametersFile, params); err != nil {
			return nil, err
		}
	}

	logger.Info().
		Str("output", outputFile).
		Int("parameters", len(params)).
		Msg("Wrote template configuration")

	return cfg, nil
}

func (p *Publisher) publishEntry(ctx context.Context, bucket, buildRoot string, entry manifest.Entry, params Parameters) error {
	logger := zerolog.Ctx(ctx)

	localPath := filepath.Join(buildRoot, entry.Path)

	digestHex, err := Digest(p.fs, localPath)
	if err != nil {
		return fmt.Errorf("asset %s: %w", entry.ID, err)
	}

	key := ObjectKey(entry.ID, digestHex)
	if err := p.uploader.UploadObject(ctx, bucket, key, localPath); err != nil {
		return fmt.Errorf("asset %s: %w", entry.ID, err)
	}

	params[entry.S3BucketParameter] = bucket
	params[entry.S3KeyParameter] = KeyParameterValue(entry.ID, digestHex)
	params[entry.ArtifactHashParameter] = digestHex

	logger.Info().
		Str("id", entry.ID).
		Str("path", localPath).
		Str("key", key).
		Str("digest", digestHex).
		Msg("Published asset")

	return nil
}
