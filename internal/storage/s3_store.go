package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/awserr"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

// S3Config holds configuration for the S3 logo store
type S3Config struct {
	// Endpoint is optional; set it for S3-compatible services
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	Bucket          string
	Region          string
}

// S3LogoStore keeps logos in an S3-compatible bucket
type S3LogoStore struct {
	s3Client *s3.S3
	bucket   string
}

// NewS3LogoStore creates a new S3 logo store
func NewS3LogoStore(config *S3Config) (*S3LogoStore, error) {
	if config.AccessKeyID == "" || config.AccessKeySecret == "" {
		return nil, fmt.Errorf("S3 configuration is incomplete")
	}

	if config.Bucket == "" {
		return nil, fmt.Errorf("S3 bucket is not configured")
	}

	awsConfig := &aws.Config{
		Region:           aws.String(config.Region),
		Credentials:      credentials.NewStaticCredentials(config.AccessKeyID, config.AccessKeySecret, ""),
		S3ForcePathStyle: aws.Bool(true),
	}
	if config.Endpoint != "" {
		awsConfig.Endpoint = aws.String(config.Endpoint)
	}

	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 session: %w", err)
	}

	return &S3LogoStore{
		s3Client: s3.New(sess),
		bucket:   config.Bucket,
	}, nil
}

// Put uploads a logo object
func (s *S3LogoStore) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := validateKey(key); err != nil {
		return &StorageError{Op: "put_logo", Key: key, Err: err}
	}
	if contentType == "" {
		contentType = "image/png"
	}

	_, err := s.s3Client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentType:   aws.String(contentType),
		ContentLength: aws.Int64(int64(len(data))),
	})
	if err != nil {
		return &StorageError{Op: "put_logo", Key: key, Err: fmt.Errorf("failed to upload to S3: %w", err)}
	}

	return nil
}

// Get downloads a logo object
func (s *S3LogoStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := validateKey(key); err != nil {
		return nil, &StorageError{Op: "get_logo", Key: key, Err: err}
	}

	out, err := s.s3Client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		var aerr awserr.Error
		if errors.As(err, &aerr) && (aerr.Code() == s3.ErrCodeNoSuchKey || aerr.Code() == "NotFound") {
			return nil, &StorageError{Op: "get_logo", Key: key, Err: ErrLogoNotFound}
		}
		return nil, &StorageError{Op: "get_logo", Key: key, Err: fmt.Errorf("failed to download from S3: %w", err)}
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, &StorageError{Op: "get_logo", Key: key, Err: fmt.Errorf("failed to read S3 object: %w", err)}
	}

	return data, nil
}

// Delete removes a logo object. S3 reports success for missing keys.
func (s *S3LogoStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return &StorageError{Op: "delete_logo", Key: key, Err: err}
	}

	_, err := s.s3Client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return &StorageError{Op: "delete_logo", Key: key, Err: fmt.Errorf("failed to delete from S3: %w", err)}
	}
	return nil
}
