package services

import (
	"context"
	stderrors "errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/rs/zerolog"
	"github.com/savaki/asset-publisher/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockS3Client struct {
	putObjectFunc func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

func (m *mockS3Client) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if m.putObjectFunc != nil {
		return m.putObjectFunc(ctx, params, optFns...)
	}
	return nil, stderrors.New("putObjectFunc not set")
}

func testContext() context.Context {
	logger := zerolog.New(io.Discard)
	return logger.WithContext(context.Background())
}

func TestS3Uploader_UploadObject(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "build/template.json", []byte(`{"Resources":{}}`), 0o644))

	var got *s3.PutObjectInput
	var body []byte
	client := &mockS3Client{
		putObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			got = params
			data, err := io.ReadAll(params.Body)
			if err != nil {
				return nil, err
			}
			body = data
			return &s3.PutObjectOutput{ETag: aws.String(`"etag"`)}, nil
		},
	}

	uploader := NewS3Uploader(client, fs)
	err := uploader.UploadObject(testContext(), "my-bucket", "assets/template/abc.json", "build/template.json")
	require.NoError(t, err)

	require.NotNil(t, got)
	assert.Equal(t, "my-bucket", aws.ToString(got.Bucket))
	assert.Equal(t, "assets/template/abc.json", aws.ToString(got.Key))
	assert.Equal(t, int64(16), aws.ToInt64(got.ContentLength))
	assert.Equal(t, "application/json", aws.ToString(got.ContentType))
	assert.Equal(t, `{"Resources":{}}`, string(body))
}

func TestS3Uploader_ContentType(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
		want    string
	}{
		{
			name:    "png",
			content: []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"),
			want:    "image/png",
		},
		{
			name:    "zip",
			content: []byte("PK\x03\x04"),
			want:    "application/zip",
		},
		{
			name:    "plain text",
			content: []byte("hello world"),
			want:    "text/plain; charset=utf-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := memfs.New()
			require.NoError(t, util.WriteFile(fs, "artifact", tt.content, 0o644))

			var contentType string
			client := &mockS3Client{
				putObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
					contentType = aws.ToString(params.ContentType)
					return &s3.PutObjectOutput{}, nil
				},
			}

			err := NewS3Uploader(client, fs).UploadObject(testContext(), "bucket", "key", "artifact")
			require.NoError(t, err)
			assert.Equal(t, tt.want, contentType)
		})
	}
}

func TestS3Uploader_PutObjectError(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, util.WriteFile(fs, "artifact", []byte("data"), 0o644))

	apiErr := &smithy.GenericAPIError{Code: "AccessDenied", Message: "Access Denied"}
	client := &mockS3Client{
		putObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			return nil, apiErr
		},
	}

	err := NewS3Uploader(client, fs).UploadObject(testContext(), "bucket", "key", "artifact")
	assert.ErrorIs(t, err, errors.ErrUpload)

	var got smithy.APIError
	require.True(t, stderrors.As(err, &got))
	assert.Equal(t, "AccessDenied", got.ErrorCode())
}

func TestS3Uploader_MissingFile(t *testing.T) {
	called := false
	client := &mockS3Client{
		putObjectFunc: func(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
			called = true
			return &s3.PutObjectOutput{}, nil
		},
	}

	err := NewS3Uploader(client, memfs.New()).UploadObject(testContext(), "bucket", "key", "missing")
	assert.ErrorIs(t, err, errors.ErrUpload)
	assert.False(t, called)
}
