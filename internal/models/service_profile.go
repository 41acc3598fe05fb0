package models

// ServiceProfile is the single "service info" record: who the corper is,
// where they were deployed and when the service year runs. EndDate is
// computed once at save time (start + 1 year) and never re-derived.
type ServiceProfile struct {
	Name              string `json:"name"`
	StateOfDeployment string `json:"stateOfDeployment"`
	StartDate         string `json:"startDate"`
	EndDate           string `json:"endDate"`
	TotalDays         int    `json:"totalDays"`
	DateChangesLeft   int    `json:"dateChangesLeft"`
	DateFirstSet      string `json:"dateFirstSet"`
}
