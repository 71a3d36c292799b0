package entity

// LeaveType identifies a kind of leave on forms and reports.
type LeaveType string

const (
	LeaveSick      LeaveType = "sick"
	LeavePersonal  LeaveType = "personal"
	LeaveMaternity LeaveType = "maternity"
	LeaveVacation  LeaveType = "vacation"
	LeaveHourly    LeaveType = "hourly" // personal leave taken by the hour
)

var leaveTypeNames = map[LeaveType]string{
	LeaveSick:      "ลาป่วย",
	LeavePersonal:  "ลากิจส่วนตัว",
	LeaveMaternity: "ลาคลอดบุตร",
	LeaveVacation:  "ลาพักผ่อน",
	LeaveHourly:    "ลากิจส่วนตัวรายชั่วโมง",
}

// Valid reports whether t is a known leave type.
func (t LeaveType) Valid() bool {
	_, ok := leaveTypeNames[t]
	return ok
}

// ThaiName returns the label printed on forms, e.g. "ลาป่วย".
func (t LeaveType) ThaiName() string {
	if name, ok := leaveTypeNames[t]; ok {
		return name
	}
	return string(t)
}

// TimeScoped reports whether the leave is requested with an explicit time range.
func (t LeaveType) TimeScoped() bool {
	return t == LeaveHourly
}

// ApprovalOutcome is the approver's decision printed on a leave form.
type ApprovalOutcome string

const (
	OutcomePending  ApprovalOutcome = "pending"
	OutcomeApproved ApprovalOutcome = "approved"
	OutcomeRejected ApprovalOutcome = "rejected"
)

// LeaveStatistic holds the three columns of the statistics table. The values are
// printed as supplied; no arithmetic is checked between them.
type LeaveStatistic struct {
	Prior      float64 `json:"prior"`      // ลามาแล้ว
	ThisTime   float64 `json:"this_time"`  // ลาครั้งนี้
	Cumulative float64 `json:"cumulative"` // รวมเป็น
}

// LeaveFormRequest carries everything printed on a leave request form.
type LeaveFormRequest struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	OrgName   string `json:"org_name"`
	Addressee string `json:"addressee"`

	WrittenAt   string `json:"written_at"`
	WrittenDate Date   `json:"written_date"`

	LeaveType LeaveType `json:"leave_type"`
	StartDate Date      `json:"start_date"`
	EndDate   Date      `json:"end_date"`
	StartTime string    `json:"start_time,omitempty"`
	EndTime   string    `json:"end_time,omitempty"`
	Days      float64   `json:"days"`
	Reason    string    `json:"reason"`
	Contact   string    `json:"contact"`

	LastLeaveStart Date    `json:"last_leave_start"`
	LastLeaveEnd   Date    `json:"last_leave_end"`
	LastLeaveDays  float64 `json:"last_leave_days"`

	Statistics map[LeaveType]LeaveStatistic `json:"statistics"`

	Outcome         ApprovalOutcome `json:"outcome"`
	ApproverName    string          `json:"approver_name"`
	ApproverTitle   string          `json:"approver_title"`
	ApproverComment string          `json:"approver_comment,omitempty"`
	ApprovalDate    Date            `json:"approval_date"`

	RequesterSignature string `json:"requester_signature,omitempty"`
	ApproverSignature  string `json:"approver_signature,omitempty"`
	Emblem             string `json:"emblem,omitempty"`

	LocalizedDigits bool `json:"localized_digits"`
}

// StaffLeaveRecord is one row of the leave summary report.
type StaffLeaveRecord struct {
	Name   string                `json:"name"`
	Title  string                `json:"title"`
	Counts map[LeaveType]float64 `json:"counts"`
}

// LeaveSummaryRequest carries a multi-page leave summary report.
type LeaveSummaryRequest struct {
	OrgName     string `json:"org_name"`
	ReferenceNo string `json:"reference_no"`
	ReportDate  Date   `json:"report_date"`
	Period      string `json:"period"`
	Addressee   string `json:"addressee"`
	Intro       string `json:"intro,omitempty"`

	Staff []StaffLeaveRecord `json:"staff"`

	ApproverName      string  `json:"approver_name"`
	ApproverTitle     string  `json:"approver_title"`
	ApproverSignature string  `json:"approver_signature,omitempty"`
	SignatureScale    float64 `json:"signature_scale"`
	SignatureYOffset  float64 `json:"signature_y_offset"`
	Emblem            string  `json:"emblem,omitempty"`

	LocalizedDigits bool `json:"localized_digits"`
}
