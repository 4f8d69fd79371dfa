package utils

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
)

// S3Config describes an S3-compatible bucket.
type S3Config struct {
	Endpoint  string
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// PublicURL is the base URL objects are served from. Defaults to
	// https://<bucket>.<endpoint host>.
	PublicURL string
}

// Uploader stores public objects in an S3-compatible bucket.
type Uploader struct {
	client    s3iface.S3API
	bucket    string
	publicURL string
}

// NewUploader builds an S3 client with static credentials.
func NewUploader(cfg S3Config) (*Uploader, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("s3: empty bucket")
	}
	region := cfg.Region
	if region == "" {
		region = "us-east-1"
	}
	awsCfg := &aws.Config{
		Region:      aws.String(region),
		Credentials: credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""),
	}
	if cfg.Endpoint != "" {
		awsCfg.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("s3 session: %w", err)
	}
	return newUploader(s3.New(sess), cfg), nil
}

func newUploader(client s3iface.S3API, cfg S3Config) *Uploader {
	public := strings.TrimRight(cfg.PublicURL, "/")
	if public == "" {
		host := strings.TrimPrefix(strings.TrimPrefix(cfg.Endpoint, "https://"), "http://")
		if host == "" {
			host = "s3.amazonaws.com"
		}
		public = fmt.Sprintf("https://%s.%s", cfg.Bucket, strings.TrimRight(host, "/"))
	}
	return &Uploader{client: client, bucket: cfg.Bucket, publicURL: public}
}

// Upload writes body under key with public-read access and returns its URL.
func (u *Uploader) Upload(ctx context.Context, key, contentType string, body []byte) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	_, err := u.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(u.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(body),
		ContentLength: aws.Int64(int64(len(body))),
		ContentType:   aws.String(contentType),
		ACL:           aws.String("public-read"),
	})
	if err != nil {
		return "", fmt.Errorf("unable to upload file to S3: %w", err)
	}
	return fmt.Sprintf("%s/%s", u.publicURL, key), nil
}
