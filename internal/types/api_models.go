package types

// NoAnswer is returned in place of an empty or absent vendor answer
const NoAnswer = "No answer"

// TextQueryRequest is the body of /chatgpt, /deepseek and /gemini
type TextQueryRequest struct {
	Query string `json:"query" validate:"required" example:"What is 2+2?"`
}

// ImagePromptRequest is the body of /dalle
type ImagePromptRequest struct {
	Prompt string `json:"prompt" validate:"required" example:"a red fox in the snow, watercolor"`
}

// BackgroundRemovalRequest is the body of /removebg
type BackgroundRemovalRequest struct {
	ImageURL string `json:"imageUrl" validate:"required,url" example:"https://example.com/photo.jpg"`
}

// TextAnswerResponse carries the text produced by a chat vendor
type TextAnswerResponse struct {
	Answer string `json:"answer" example:"4"`
}

// ImageURLResponse carries the location of a generated image
type ImageURLResponse struct {
	URL string `json:"url" example:"https://example.com/generated.png"`
}

// HealthResponse represents the structured health check response
type HealthResponse struct {
	Status    string                 `json:"status" example:"healthy"`
	Timestamp string                 `json:"timestamp" example:"2025-01-01T00:00:00Z"`
	Services  map[string]string      `json:"services"`
	Details   map[string]interface{} `json:"details"`
}
