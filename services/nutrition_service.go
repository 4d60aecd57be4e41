package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// NutritionEstimate is the validated result of the external estimator.
type NutritionEstimate struct {
	TotalCalories float64             `json:"total_calories"`
	Protein       float64             `json:"protein"`
	Carbs         float64             `json:"carbs"`
	Fat           float64             `json:"fat"`
	Fiber         float64             `json:"fiber,omitempty"`
	Sugar         float64             `json:"sugar,omitempty"`
	Sodium        float64             `json:"sodium,omitempty"`
	Foods         []EstimatedFoodItem `json:"foods"`
	Model         string              `json:"model,omitempty"`
}

type EstimatedFoodItem struct {
	Name     string  `json:"name"`
	Quantity string  `json:"quantity"`
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

// NutritionEstimator converts a free-text food description into a
// nutrition estimate. The production implementation delegates to an
// external AI endpoint; tests substitute their own.
type NutritionEstimator interface {
	EstimateNutrition(ctx context.Context, description string) (*NutritionEstimate, error)
}

// NutritionAIService calls the hosted nutrition-estimation endpoint.
type NutritionAIService struct {
	endpoint string
	apiKey   string
	model    string
	client   *http.Client
}

func NewNutritionAIService(endpoint, apiKey, model string) *NutritionAIService {
	return &NutritionAIService{
		endpoint: endpoint,
		apiKey:   apiKey,
		model:    model,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

type estimateRequest struct {
	Description string `json:"description"`
	Model       string `json:"model,omitempty"`
}

func (s *NutritionAIService) EstimateNutrition(ctx context.Context, description string) (*NutritionEstimate, error) {
	if len(description) == 0 {
		return nil, &EstimationError{Reason: EstimationInvalidInput, Err: fmt.Errorf("empty description")}
	}

	b, err := json.Marshal(estimateRequest{Description: description, Model: s.model})
	if err != nil {
		return nil, &EstimationError{Reason: EstimationInvalidInput, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(b))
	if err != nil {
		return nil, &EstimationError{Reason: EstimationInvalidInput, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+s.apiKey)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &EstimationError{Reason: EstimationMalformedResponse, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &EstimationError{Reason: EstimationMalformedResponse, Err: err}
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &EstimationError{Reason: EstimationQuota, Err: fmt.Errorf("estimator quota exhausted")}
	case resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnprocessableEntity:
		return nil, &EstimationError{Reason: EstimationInvalidInput, Err: fmt.Errorf("estimator rejected input: %s", body)}
	case resp.StatusCode != http.StatusOK:
		return nil, &EstimationError{Reason: EstimationMalformedResponse, Err: fmt.Errorf("estimator returned %d: %s", resp.StatusCode, body)}
	}

	var est NutritionEstimate
	if err := json.Unmarshal(body, &est); err != nil {
		return nil, &EstimationError{Reason: EstimationMalformedResponse, Err: err}
	}
	if est.Model == "" {
		est.Model = s.model
	}
	if err := validateEstimate(&est); err != nil {
		return nil, err
	}
	return &est, nil
}

// validateEstimate enforces the contract on upstream output: every
// numeric field non-negative. A violation means the response cannot be
// trusted at all.
func validateEstimate(est *NutritionEstimate) error {
	malformed := func(field string, v float64) error {
		return &EstimationError{
			Reason: EstimationMalformedResponse,
			Err:    fmt.Errorf("negative %s in estimator response: %v", field, v),
		}
	}
	if est.TotalCalories < 0 {
		return malformed("total_calories", est.TotalCalories)
	}
	if est.Protein < 0 {
		return malformed("protein", est.Protein)
	}
	if est.Carbs < 0 {
		return malformed("carbs", est.Carbs)
	}
	if est.Fat < 0 {
		return malformed("fat", est.Fat)
	}
	if est.Fiber < 0 {
		return malformed("fiber", est.Fiber)
	}
	if est.Sugar < 0 {
		return malformed("sugar", est.Sugar)
	}
	if est.Sodium < 0 {
		return malformed("sodium", est.Sodium)
	}
	for _, f := range est.Foods {
		if f.Calories < 0 || f.Protein < 0 || f.Carbs < 0 || f.Fat < 0 {
			return malformed("food item "+f.Name, f.Calories)
		}
	}
	return nil
}
