package entity

import "time"

// Render operations recorded in the audit log.
const (
	OperationReceiveNumber = "receive_number"
	OperationCommand       = "command"
	OperationLeaveForm     = "leave_form"
	OperationLeaveSummary  = "leave_summary"
)

// RenderLog represents one audit entry for a render call
type RenderLog struct {
	ID        int64     `json:"id"`
	RenderID  string    `json:"render_id"`
	Operation string    `json:"operation"`
	Status    string    `json:"status"` // SUCCESS or ERROR
	ErrorCode string    `json:"error_code,omitempty"`
	PageCount int       `json:"page_count"`
	SizeBytes int       `json:"size_bytes"`
	Duration  int64     `json:"duration_ms"`
	CreatedAt time.Time `json:"created_at"`
}
