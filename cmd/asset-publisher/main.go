package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/savaki/asset-publisher/internal/di"
	"github.com/savaki/asset-publisher/internal/errors"
	"github.com/savaki/asset-publisher/internal/manifest"
	"github.com/savaki/asset-publisher/internal/publisher"
	"github.com/urfave/cli/v2"
)

func main() {
	logger := di.ProvideLogger(zerolog.InfoLevel)
	ctx := logger.WithContext(context.Background())

	if err := newApp(&logger).RunContext(ctx, os.Args); err != nil {
		logger.Error().Err(err).Msg("Application error")
		os.Exit(1)
	}
}

func newApp(logger *zerolog.Logger) *cli.App {
	return &cli.App{
		Name:  "asset-publisher",
		Usage: "Upload build artifacts to S3 and write the CloudFormation template configuration",
		Description: `Reads the asset manifest, uploads every artifact it lists to
s3://{bucket}/assets/{id}/{sha256}.json and writes a template configuration
mapping each asset's parameters to the bucket, key and digest.

Entries are processed in manifest order. The first failure stops the run
before the template configuration is written; objects already uploaded are
left in place and re-running is safe because keys are content addressed.

Examples:
  # CodeBuild style, configured from the environment
  ARTIFACT_BUCKET=my-bucket BUILD_DIR=build asset-publisher

  # Against localstack, also writing a CloudFormation parameter list
  asset-publisher --bucket my-bucket --build-dir build \
    --endpoint-url http://localhost:4566 --parameters-file parameters.json`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "bucket",
				Aliases: []string{"b"},
				Usage:   "Destination S3 bucket",
				EnvVars: []string{"ARTIFACT_BUCKET"},
			},
			&cli.StringFlag{
				Name:    "build-dir",
				Aliases: []string{"d"},
				Usage:   "Directory manifest paths are resolved against",
				EnvVars: []string{"BUILD_DIR"},
			},
			&cli.StringFlag{
				Name:    "manifest",
				Aliases: []string{"m"},
				Usage:   "Asset manifest (JSON or YAML)",
				Value:   manifest.DefaultFilename,
				EnvVars: []string{"ASSET_MANIFEST"},
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Usage:   "Template configuration file to write",
				Value:   publisher.DefaultOutputFile,
			},
			&cli.StringFlag{
				Name:  "parameters-file",
				Usage: "Optionally also write the parameters as a CloudFormation parameter list",
			},
			&cli.StringFlag{
				Name:    "region",
				Usage:   "AWS region",
				EnvVars: []string{"AWS_REGION"},
			},
			&cli.StringFlag{
				Name:    "endpoint-url",
				Usage:   "Alternate S3 endpoint, e.g. localstack or minio",
				EnvVars: []string{"AWS_ENDPOINT_URL_S3"},
			},
			&cli.StringFlag{
				Name:    "access-key-id",
				Usage:   "Static access key for --endpoint-url",
				EnvVars: []string{"S3_ACCESS_KEY_ID"},
			},
			&cli.StringFlag{
				Name:    "secret-access-key",
				Usage:   "Static secret key for --endpoint-url",
				EnvVars: []string{"S3_SECRET_ACCESS_KEY"},
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "Enable debug logging",
			},
		},
		Action: func(c *cli.Context) error {
			return publishAction(c, logger)
		},
	}
}

func publishAction(c *cli.Context, logger *zerolog.Logger) error {
	if c.Bool("verbose") {
		l := logger.Level(zerolog.DebugLevel)
		logger = &l
	}
	ctx := logger.WithContext(c.Context)

	input := publisher.Input{
		ManifestFile:   c.String("manifest"),
		Bucket:         c.String("bucket"),
		BuildRoot:      c.String("build-dir"),
		OutputFile:     c.String("output"),
		ParametersFile: c.String("parameters-file"),
	}

	if input.Bucket == "" {
		return errors.ErrBucketRequired
	}

	container, err := di.New(
		di.WithContext(ctx),
		di.WithRegion(c.String("region")),
		di.WithEndpointURL(c.String("endpoint-url")),
		di.WithStaticCredentials(c.String("access-key-id"), c.String("secret-access-key")),
	)
	if err != nil {
		return err
	}

	var p *publisher.Publisher
	if err := container.Invoke(func(got *publisher.Publisher) { p = got }); err != nil {
		return err
	}

	_, err = p.Publish(ctx, input)
	return err
}
