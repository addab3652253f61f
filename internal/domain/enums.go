package domain

type ProjectStatus string

const (
	ProjectPlanning   ProjectStatus = "planning"
	ProjectInProgress ProjectStatus = "in_progress"
	ProjectOnHold     ProjectStatus = "on_hold"
	ProjectCompleted  ProjectStatus = "completed"
	ProjectCancelled  ProjectStatus = "cancelled"
	ProjectArchived   ProjectStatus = "archived"
)

// ValidProjectStatuses is the canonical set of accepted project status strings.
var ValidProjectStatuses = map[string]bool{
	"planning": true, "in_progress": true, "on_hold": true,
	"completed": true, "cancelled": true, "archived": true,
}

type TaskStatus string

const (
	TaskNotStarted TaskStatus = "not_started"
	TaskInProgress TaskStatus = "in_progress"
	TaskOnHold     TaskStatus = "on_hold"
	TaskCompleted  TaskStatus = "completed"
	TaskCancelled  TaskStatus = "cancelled"
)

// ValidTaskStatuses is the canonical set of accepted task status strings.
var ValidTaskStatuses = map[string]bool{
	"not_started": true, "in_progress": true, "on_hold": true,
	"completed": true, "cancelled": true,
}

// IsActive reports whether a task in this status still occupies its
// assigned resources.
func (s TaskStatus) IsActive() bool {
	return s == TaskInProgress || s == TaskNotStarted
}

type ResourceType string

const (
	ResourceLabor         ResourceType = "labor"
	ResourceEquipment     ResourceType = "equipment"
	ResourceSubcontractor ResourceType = "subcontractor"
)

// ValidResourceTypes is the canonical set of accepted resource type strings.
var ValidResourceTypes = map[string]bool{
	"labor": true, "equipment": true, "subcontractor": true,
}

type ResourceStatus string

const (
	ResourceAvailable   ResourceStatus = "available"
	ResourceAssigned    ResourceStatus = "assigned"
	ResourceUnavailable ResourceStatus = "unavailable"
	ResourceMaintenance ResourceStatus = "maintenance"
)

// ValidResourceStatuses is the canonical set of accepted resource status strings.
var ValidResourceStatuses = map[string]bool{
	"available": true, "assigned": true, "unavailable": true, "maintenance": true,
}

type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// ValidPriorities is the canonical set of accepted priority strings.
var ValidPriorities = map[string]bool{
	"low": true, "medium": true, "high": true, "critical": true,
}

type RFIStatus string

const (
	RFIOpen     RFIStatus = "open"
	RFIAnswered RFIStatus = "answered"
	RFIClosed   RFIStatus = "closed"
)

type ChangeOrderStatus string

const (
	ChangeOrderPending  ChangeOrderStatus = "pending"
	ChangeOrderApproved ChangeOrderStatus = "approved"
	ChangeOrderRejected ChangeOrderStatus = "rejected"
)

type DeliveryStatus string

const (
	DeliveryScheduled DeliveryStatus = "scheduled"
	DeliveryInTransit DeliveryStatus = "in_transit"
	DeliveryDelivered DeliveryStatus = "delivered"
	DeliveryDelayed   DeliveryStatus = "delayed"
	DeliveryCancelled DeliveryStatus = "cancelled"
)

// ValidDeliveryStatuses is the canonical set of accepted delivery status strings.
var ValidDeliveryStatuses = map[string]bool{
	"scheduled": true, "in_transit": true, "delivered": true,
	"delayed": true, "cancelled": true,
}

type IncidentStatus string

const (
	IncidentOpen   IncidentStatus = "open"
	IncidentClosed IncidentStatus = "closed"
)

type NotificationType string

const (
	AlertEquipmentUnavailable  NotificationType = "equipment_unavailable"
	AlertSafetyIncident        NotificationType = "safety_incident"
	AlertLaborOverallocated    NotificationType = "labor_overallocated"
	AlertCertificationExpiring NotificationType = "certification_expiring"
)
