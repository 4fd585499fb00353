// Package fsxs3 exports artifacts to an S3 bucket.
package fsxs3

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Abraxas-365/mailcraft/pkg/fsx"
)

// S3Exporter implements fsx.Exporter against a bucket. Exported locations
// are presigned download URLs so the UI can link them directly.
type S3Exporter struct {
	client    *s3.Client
	presigner *s3.PresignClient
	bucket    string
	prefix    string
	urlTTL    time.Duration
}

// NewS3Exporter creates an exporter writing under prefix in bucket.
func NewS3Exporter(client *s3.Client, bucket, prefix string) *S3Exporter {
	return &S3Exporter{
		client:    client,
		presigner: s3.NewPresignClient(client),
		bucket:    bucket,
		prefix:    prefix,
		urlTTL:    24 * time.Hour,
	}
}

func (e *S3Exporter) key(emailID, name string) string {
	if e.prefix != "" {
		return fmt.Sprintf("%s/%s/%s", e.prefix, emailID, name)
	}
	return fmt.Sprintf("%s/%s", emailID, name)
}

func (e *S3Exporter) Export(ctx context.Context, emailID string, artifacts []fsx.Artifact) ([]string, error) {
	urls := make([]string, 0, len(artifacts))
	for _, a := range artifacts {
		key := e.key(emailID, a.Name)
		_, err := e.client.PutObject(ctx, &s3.PutObjectInput{
			Bucket:      aws.String(e.bucket),
			Key:         aws.String(key),
			Body:        bytes.NewReader(a.Data),
			ContentType: aws.String(a.ContentType),
		})
		if err != nil {
			return nil, fsx.WriteFailed(err, key)
		}

		presigned, err := e.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(e.bucket),
			Key:    aws.String(key),
		}, func(po *s3.PresignOptions) {
			po.Expires = e.urlTTL
		})
		if err != nil {
			return nil, fsx.WriteFailed(err, key)
		}
		urls = append(urls, presigned.URL)
	}
	return urls, nil
}

func (e *S3Exporter) Fetch(ctx context.Context, emailID, name string) ([]byte, error) {
	key := e.key(emailID, name)
	out, err := e.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(e.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fsx.NotFound(key)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fsx.WriteFailed(err, key)
	}
	return data, nil
}
