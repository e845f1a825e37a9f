package dto

// HealthResponse is returned by the liveness endpoints
type HealthResponse struct {
	Status  string `json:"status" example:"ok"`
	Message string `json:"message,omitempty" example:"pong"`
}
