// Package di provides a lightweight wrapper around uber's dig dependency injection framework.
// It simplifies container setup and provides type-safe dependency retrieval with generics.
package di

import (
	"context"

	"github.com/savaki/asset-publisher/internal/publisher"
	"github.com/savaki/asset-publisher/internal/services"
	"go.uber.org/dig"
)

// Container defines a dependency injection container based on uber's dig.
// This interface allows for easy testing and mocking of the DI container.
type Container interface {
	// Invoke executes a function, injecting its dependencies from the container.
	Invoke(function any, opts ...dig.InvokeOption) error

	// Provide registers a constructor function in the container.
	Provide(constructor any, opts ...dig.ProvideOption) error

	// Scope creates a scoped sub-container with its own set of values.
	Scope(name string, opts ...dig.ScopeOption) *dig.Scope
}

// MustGet returns an instance constructed via dependency injection or panics.
//
// Example:
//
//	p := MustGet[*publisher.Publisher](container)
func MustGet[T any](container Container) (want T) {
	callback := func(got T) {
		want = got
	}
	if err := container.Invoke(callback); err != nil {
		panic(err)
	}
	return want
}

// New creates a new dependency injection container. The context, the AWS
// settings from opts and the core providers are registered first; providers
// passed via WithProviders are registered last and may not replace a core type.
//
// Example:
//
//	container, err := New(
//	    WithContext(ctx),
//	    WithRegion("us-west-2"),
//	)
func New(opts ...Option) (Container, error) {
	o := options{
		ctx: context.Background(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	container := dig.New()
	if err := container.Provide(func() context.Context { return o.ctx }); err != nil {
		return nil, err
	}
	if err := container.Provide(func() AWSOptions { return o.aws }); err != nil {
		return nil, err
	}

	for _, provider := range core {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	for _, provider := range o.providers {
		if err := container.Provide(provider); err != nil {
			return nil, err
		}
	}

	return container, nil
}

var core = []any{
	ProvideAWSConfig,
	ProvideS3Client,
	ProvideFilesystem,
	ProvidePutObjectAPI,
	ProvideObjectUploader,
	services.NewS3Uploader,
	publisher.New,
}
