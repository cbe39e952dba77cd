package config

import (
	"context"
	"fmt"

	"restobot/internal/dialogue"
	"restobot/pkg/s3"
)

// artifactReader resolves s3:// URLs through the bucket client and everything else from
// disk.
type artifactReader struct {
	local dialogue.LocalReader
	s3    s3.ItfS3
}

func NewArtifactReader(client s3.ItfS3) dialogue.ArtifactReader {
	return &artifactReader{s3: client}
}

func (r *artifactReader) Read(ctx context.Context, path string) ([]byte, error) {
	if !s3.IsURL(path) {
		return r.local.Read(ctx, path)
	}
	if r.s3 == nil {
		return nil, fmt.Errorf("%s: s3 client is not configured", path)
	}

	bucket, key, err := s3.ParseURL(path)
	if err != nil {
		return nil, err
	}
	return r.s3.Download(ctx, bucket, key)
}
