package models

import "time"

const (
	TeamRoleAdmin     = "admin"
	TeamRolePublisher = "publisher"
	TeamRoleReviewer  = "reviewer"
	TeamRoleEditor    = "editor"
)

const (
	MemberStatusInvited = "invited"
	MemberStatusActive  = "active"
)

type TeamMember struct {
	ID          int64     `db:"id" json:"id"`
	OwnerID     int64     `db:"owner_id" json:"owner_id"`
	Email       string    `db:"email" json:"email"`
	Name        string    `db:"name" json:"name"`
	Role        string    `db:"role" json:"role"`
	Status      string    `db:"status" json:"status"`
	InviteToken string    `db:"invite_token" json:"-"`
	JoinedAt    time.Time `db:"joined_at" json:"joined_at"`
}

const (
	ActivityPublish         = "publish"
	ActivityUpdate          = "update"
	ActivityMemberAdded     = "member_added"
	ActivityMemberRemoved   = "member_removed"
	ActivityCampaignCreated = "campaign_created"
	ActivityAccountChanged  = "account_changed"
)

type ActivityLog struct {
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Actor     string    `db:"actor" json:"actor"`
	Action    string    `db:"action" json:"action"`
	Kind      string    `db:"kind" json:"type"`
	Details   string    `db:"details" json:"details,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"timestamp"`
}
