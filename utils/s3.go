package utils

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// PhotoStore archives submitted meal photos in S3 so an estimate can be
// audited against the original image.
type PhotoStore struct {
	client *s3.Client
	bucket string
}

func NewPhotoStore(ctx context.Context, region, bucket string) (*PhotoStore, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config for S3: %w", err)
	}
	return &PhotoStore{client: s3.NewFromConfig(cfg), bucket: bucket}, nil
}

// UploadMealPhoto stores the image bytes under a unique key and returns
// that key.
func (p *PhotoStore) UploadMealPhoto(ctx context.Context, userID uint, imageBytes []byte, contentType string) (string, error) {
	if contentType == "" {
		contentType = "image/jpeg"
	}
	key := fmt.Sprintf("meal-photos/%d/%s-%d",
		userID, uuid.NewString(), time.Now().UTC().Unix())

	_, err := p.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(p.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(imageBytes),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("upload meal photo: %w", err)
	}
	return key, nil
}
