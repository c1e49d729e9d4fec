package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// InferenceResponse is the shape returned by the face-shape detection
// service for one image.
type InferenceResponse struct {
	Predictions []struct {
		Class      string  `json:"class"`
		Confidence float64 `json:"confidence"`
	} `json:"predictions"`
}

// DetectFaceShape submits a base64-encoded image to the external
// inference service and returns the top predicted class, or "Unknown"
// when the service finds no face.
var DetectFaceShape = func(imageBase64 string) (string, error) {
	apiURL := os.Getenv("INFERENCE_API_URL")
	if apiURL == "" {
		apiURL = "https://detect.roboflow.com/face-shape-detection/1"
	}

	endpoint := apiURL + "?api_key=" + url.QueryEscape(os.Getenv("INFERENCE_API_KEY"))

	req, err := http.NewRequest("POST", endpoint, strings.NewReader(imageBase64))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("inference service failed with status %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var result InferenceResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", err
	}

	if len(result.Predictions) == 0 {
		return "Unknown", nil
	}
	return result.Predictions[0].Class, nil
}
