package models

import "time"

// ActivityLog is an audit entry for a back office action.
type ActivityLog struct {
	ID          string    `json:"id"`
	ActorID     string    `json:"actor_id"`
	ActorRole   Role      `json:"actor_role"`
	ActionType  string    `json:"action_type"`
	TargetType  string    `json:"target_type"`
	TargetID    string    `json:"target_id"`
	Description string    `json:"description"`
	OldValue    string    `json:"old_value,omitempty"`
	NewValue    string    `json:"new_value,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

type ActivityLogFilter struct {
	TargetType string
	TargetID   string
	ActorID    string
	Limit      int
}

const (
	ActionCreate       = "CREATE"
	ActionUpdate       = "UPDATE"
	ActionDelete       = "DELETE"
	ActionRoleChange   = "ROLE_CHANGE"
	ActionStatusChange = "STATUS_CHANGE"
	ActionAssign       = "ASSIGN"
	ActionUnassign     = "UNASSIGN"
	ActionInvoice      = "INVOICE"
	ActionPayment      = "PAYMENT"
	ActionPayout       = "PAYOUT"
	ActionNotify       = "NOTIFY"
)

const (
	TargetUser    = "user"
	TargetStaff   = "staff"
	TargetOrder   = "order"
	TargetInvoice = "invoice"
	TargetPayout  = "payout"
	TargetFirm    = "firm"
	TargetInquiry = "inquiry"
)
