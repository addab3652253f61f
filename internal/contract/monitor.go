package contract

// AlertStatus is the outcome of one detected alert.
type AlertStatus string

const (
	AlertCreated AlertStatus = "created"
	AlertSkipped AlertStatus = "skipped"
)

// AlertResult describes one alert found by a monitor run.
type AlertResult struct {
	Type              string      `json:"type"`
	ProjectID         string      `json:"project_id"`
	ReferenceID       string      `json:"reference_id"`
	Title             string      `json:"title"`
	Message           string      `json:"message"`
	Priority          string      `json:"priority"`
	Status            AlertStatus `json:"status"`
	NotificationsSent int         `json:"notifications_sent"`
	PushErrors        []string    `json:"push_errors,omitempty"`
}

// MonitorResponse is the result body of monitorCriticalEvents.
type MonitorResponse struct {
	Success           bool          `json:"success"`
	AlertsFound       int           `json:"alertsFound"`
	NotificationsSent int           `json:"notificationsSent"`
	Results           []AlertResult `json:"results"`
}

// ErrorResponse is the body returned for any failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
