package dto

type ListInstancesResponse struct {
	Instances []string `json:"instances"`
}
