package utils

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/require"
)

type fakePutter struct {
	in   *s3.PutObjectInput
	body []byte
	err  error
}

func (f *fakePutter) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.in = in
	f.body, _ = io.ReadAll(in.Body)
	return &s3.PutObjectOutput{}, f.err
}

func TestS3Archiver(t *testing.T) {
	p := &fakePutter{}
	a := NewS3Archiver(p, "bucket")

	require.NoError(t, a.Archive(context.Background(), "exports/x.pdf", "application/pdf", []byte("%PDF-1.3")))
	require.Equal(t, "bucket", *p.in.Bucket)
	require.Equal(t, "exports/x.pdf", *p.in.Key)
	require.Equal(t, "application/pdf", *p.in.ContentType)
	require.Equal(t, []byte("%PDF-1.3"), p.body)

	p.err = errors.New("denied")
	require.ErrorContains(t, a.Archive(context.Background(), "k", "application/pdf", nil), "s3://bucket/k")
}
