package di

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/savaki/asset-publisher/internal/publisher"
	"github.com/savaki/asset-publisher/internal/services"
)

// ProvideAWSConfig loads the default AWS configuration with any overrides from opts
func ProvideAWSConfig(ctx context.Context, opts AWSOptions) (aws.Config, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	if opts.AccessKeyID != "" && opts.SecretAccessKey != "" {
		creds := credentials.NewStaticCredentialsProvider(opts.AccessKeyID, opts.SecretAccessKey, "")
		loadOpts = append(loadOpts, config.WithCredentialsProvider(creds))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return cfg, nil
}

// ProvideS3Client returns an S3 client, pointed at opts.EndpointURL with
// path-style addressing when one is set
func ProvideS3Client(cfg aws.Config, opts AWSOptions) *s3.Client {
	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.EndpointURL != "" {
			o.BaseEndpoint = aws.String(opts.EndpointURL)
			o.UsePathStyle = true
		}
	})
}

// ProvidePutObjectAPI narrows the S3 client to the calls the uploader makes
func ProvidePutObjectAPI(client *s3.Client) services.PutObjectAPI {
	return client
}

// ProvideObjectUploader exposes the S3 uploader as the publisher's storage capability
func ProvideObjectUploader(uploader *services.S3Uploader) publisher.ObjectUploader {
	return uploader
}
