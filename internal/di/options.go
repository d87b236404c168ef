package di

import "context"

// AWSOptions overrides parts of the default AWS configuration chain
type AWSOptions struct {
	// Region overrides the region from the environment or shared config
	Region string
	// EndpointURL points the S3 client at an alternate endpoint such as localstack or minio
	EndpointURL string
	// AccessKeyID and SecretAccessKey, when both set, replace the default credential chain
	AccessKeyID     string
	SecretAccessKey string
}

// Option is a function that configures the dependency injection container.
type Option func(*options)

// WithContext sets the context handed to providers that need one
func WithContext(ctx context.Context) Option {
	return func(opts *options) {
		opts.ctx = ctx
	}
}

// WithRegion overrides the AWS region
func WithRegion(region string) Option {
	return func(opts *options) {
		opts.aws.Region = region
	}
}

// WithEndpointURL points the S3 client at an alternate endpoint
func WithEndpointURL(url string) Option {
	return func(opts *options) {
		opts.aws.EndpointURL = url
	}
}

// WithStaticCredentials replaces the default credential chain when both keys are set
func WithStaticCredentials(accessKeyID, secretAccessKey string) Option {
	return func(opts *options) {
		opts.aws.AccessKeyID = accessKeyID
		opts.aws.SecretAccessKey = secretAccessKey
	}
}

// WithProviders adds constructor functions to the dependency injection container.
// Each provider should be a constructor function that returns one or more values.
// Providers can declare dependencies as function parameters, which will be
// automatically resolved by the container.
//
// Example:
//
//	WithProviders(
//	    func() *Database { return &Database{} },
//	    func(db *Database) *Service { return &Service{DB: db} },
//	)
func WithProviders(providers ...any) Option {
	return func(opts *options) {
		opts.providers = append(opts.providers, providers...)
	}
}

type options struct {
	ctx       context.Context
	aws       AWSOptions
	providers []any
}
