package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rekognition"
	"github.com/aws/aws-sdk-go-v2/service/rekognition/types"
)

// RekognitionService extracts food labels from a meal photo so the
// photo path can feed the text-based nutrition estimator.
type RekognitionService struct {
	client *rekognition.Client
}

func NewRekognitionService(ctx context.Context, region string) (*RekognitionService, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return &RekognitionService{client: rekognition.NewFromConfig(cfg)}, nil
}

// DetectFoodLabels returns the top labels for raw image bytes, most
// confident first.
func (r *RekognitionService) DetectFoodLabels(ctx context.Context, imageBytes []byte) ([]string, error) {
	if len(imageBytes) == 0 {
		return nil, &EstimationError{Reason: EstimationInvalidInput, Err: fmt.Errorf("empty image")}
	}

	out, err := r.client.DetectLabels(ctx, &rekognition.DetectLabelsInput{
		Image:         &types.Image{Bytes: imageBytes},
		MaxLabels:     aws.Int32(5),
		MinConfidence: aws.Float32(75),
	})
	if err != nil {
		return nil, &EstimationError{Reason: EstimationMalformedResponse, Err: err}
	}

	var labels []string
	for _, l := range out.Labels {
		if l.Name != nil {
			labels = append(labels, *l.Name)
		}
	}
	if len(labels) == 0 {
		return nil, &EstimationError{Reason: EstimationInvalidInput, Err: fmt.Errorf("no food detected in image")}
	}
	return labels, nil
}

// LabelsToDescription joins detected labels into the free-text
// description the estimator accepts.
func LabelsToDescription(labels []string) string {
	return strings.Join(labels, ", ")
}
