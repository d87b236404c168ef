package main

import (
	"context"
	"io"
	"testing"

	"github.com/rs/zerolog"
	"github.com/savaki/asset-publisher/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApp_BucketRequired(t *testing.T) {
	t.Setenv("ARTIFACT_BUCKET", "")
	t.Setenv("BUILD_DIR", "build")

	logger := zerolog.New(io.Discard)
	app := newApp(&logger)

	err := app.RunContext(context.Background(), []string{"asset-publisher"})
	assert.ErrorIs(t, err, errors.ErrBucketRequired)
}

func TestApp_Flags(t *testing.T) {
	logger := zerolog.New(io.Discard)
	app := newApp(&logger)

	env := map[string][]string{}
	for _, flag := range app.Flags {
		names := flag.Names()
		require.NotEmpty(t, names)
		if f, ok := flag.(interface{ GetEnvVars() []string }); ok {
			env[names[0]] = f.GetEnvVars()
		}
	}

	assert.Equal(t, []string{"ARTIFACT_BUCKET"}, env["bucket"])
	assert.Equal(t, []string{"BUILD_DIR"}, env["build-dir"])
}
