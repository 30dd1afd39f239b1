package types

type ProjectMatch struct {
	ProjectID   string `json:"projectId"`
	ProjectName string `json:"projectName"`
}

type FindProjectsResponse struct {
	Total    int            `json:"total"`
	Query    string         `json:"query"`
	Projects []ProjectMatch `json:"projects"`
}
