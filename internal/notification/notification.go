package notification

import (
	"errors"
	"time"

	notificationDatamodel "github.com/frahmantamala/construction-backoffice/internal/core/datamodel/notification"
)

// Notification is an in-app message delivered to one user. Kind identifies
// the producing workflow so clients can group or icon them.
type Notification struct {
	ID        int64      `json:"id"`
	UserID    int64      `json:"user_id"`
	Kind      string     `json:"kind"`
	Subject   string     `json:"subject"`
	Body      string     `json:"body,omitempty"`
	ReadAt    *time.Time `json:"read_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

const (
	KindPurchaseSubmitted = "purchase_submitted"
	KindPurchaseApproved  = "purchase_approved"
	KindPurchaseRejected  = "purchase_rejected"
)

var ErrNotFound = errors.New("notification not found")

func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

func FromDataModel(n *notificationDatamodel.Notification) *Notification {
	return &Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Kind:      n.Kind,
		Subject:   n.Subject,
		Body:      n.Body,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}

func ToDataModel(n *Notification) *notificationDatamodel.Notification {
	return &notificationDatamodel.Notification{
		ID:        n.ID,
		UserID:    n.UserID,
		Kind:      n.Kind,
		Subject:   n.Subject,
		Body:      n.Body,
		ReadAt:    n.ReadAt,
		CreatedAt: n.CreatedAt,
	}
}
