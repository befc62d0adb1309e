package storage

import (
	"Foodgram-Backend/internal/utils"
	"bytes"
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

var AllowImage = []string{"image/jpeg", "image/png", "image/webp"}

var (
	ErrInvalidBase64     = errors.New("invalid base64 image data")
	ErrContentNotAllowed = errors.New("content type not allowed")
	ErrUploadFailed      = errors.New("failed to upload file")
)

type (
	AwsS3 interface {
		UploadBase64(name string, data string, dir string, allowed ...string) (string, error)
		DeleteObject(objectKey string) error
		GetPublicLinkKey(objectKey string) string
	}

	awsS3 struct {
		client *s3.Client
		bucket string
		region string
	}
)

func NewAwsS3() AwsS3 {
	region := utils.GetConfig("AWS_S3_REGION")
	cfg, err := awsconfig.LoadDefaultConfig(
		context.Background(),
		awsconfig.WithRegion(region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			utils.GetConfig("AWS_ACCESS_KEY"),
			utils.GetConfig("AWS_SECRET_KEY"),
			"",
		)),
	)
	if err != nil {
		panic(fmt.Sprintf("failed to load AWS config: %v", err))
	}

	return &awsS3{
		client: s3.NewFromConfig(cfg),
		bucket: utils.GetConfig("AWS_S3_BUCKET"),
		region: region,
	}
}

// UploadBase64 decodes a base64 payload (raw or data-URI form), checks the
// sniffed content type against the allow list and puts the object under
// dir/name. Returns the object key.
func (s *awsS3) UploadBase64(name string, data string, dir string, allowed ...string) (string, error) {
	if idx := strings.Index(data, ";base64,"); idx != -1 {
		data = data[idx+len(";base64,"):]
	}

	raw, err := base64.StdEncoding.DecodeString(data)
	if err != nil {
		return "", ErrInvalidBase64
	}

	contentType := http.DetectContentType(raw)
	if len(allowed) > 0 {
		ok := false
		for _, allow := range allowed {
			if contentType == allow {
				ok = true
				break
			}
		}
		if !ok {
			return "", ErrContentNotAllowed
		}
	}

	ext := "bin"
	if parts := strings.Split(contentType, "/"); len(parts) == 2 {
		ext = parts[1]
	}
	objectKey := fmt.Sprintf("%s/%s.%s", dir, name, ext)

	_, err = s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(objectKey),
		Body:        bytes.NewReader(raw),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", ErrUploadFailed
	}

	return objectKey, nil
}

func (s *awsS3) DeleteObject(objectKey string) error {
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(objectKey),
	})
	return err
}

func (s *awsS3) GetPublicLinkKey(objectKey string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, objectKey)
}
