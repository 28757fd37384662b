package response_models

type LoginResponse struct {
	Token string `json:"token"`
}

type SavedPlanResponse struct {
	PlanID string `json:"plan_id"`
}

type SavedPlanSummary struct {
	PlanID    string `json:"plan_id"`
	Title     string `json:"title"`
	Duration  int    `json:"duration"`
	CreatedAt int64  `json:"created_at"`
}
