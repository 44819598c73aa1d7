package agent

type Agent struct {
	ID           string `json:"id"`
	Skill        string `json:"skill"`
	ModelVersion string `json:"model_version"`
	Description  string `json:"description"`
}
