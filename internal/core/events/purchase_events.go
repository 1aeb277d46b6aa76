package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypePurchaseSubmitted = "purchase_request.submitted"
	EventTypePurchaseApproved  = "purchase_request.approved"
	EventTypePurchaseRejected  = "purchase_request.rejected"
)

type PurchaseSubmittedEvent struct {
	BaseEvent
	RequestID int64 `json:"request_id"`
	UserID    int64 `json:"user_id"`
	AmountIDR int64 `json:"amount_idr"`
}

func NewPurchaseSubmittedEvent(requestID, userID, amountIDR int64) *PurchaseSubmittedEvent {
	return &PurchaseSubmittedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePurchaseSubmitted,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id": requestID,
				"user_id":    userID,
				"amount_idr": amountIDR,
			},
		},
		RequestID: requestID,
		UserID:    userID,
		AmountIDR: amountIDR,
	}
}

type PurchaseApprovedEvent struct {
	BaseEvent
	RequestID  int64 `json:"request_id"`
	UserID     int64 `json:"user_id"`
	ApproverID int64 `json:"approver_id"`
	AmountIDR  int64 `json:"amount_idr"`
}

func NewPurchaseApprovedEvent(requestID, userID, approverID, amountIDR int64) *PurchaseApprovedEvent {
	return &PurchaseApprovedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePurchaseApproved,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id":  requestID,
				"user_id":     userID,
				"approver_id": approverID,
				"amount_idr":  amountIDR,
			},
		},
		RequestID:  requestID,
		UserID:     userID,
		ApproverID: approverID,
		AmountIDR:  amountIDR,
	}
}

type PurchaseRejectedEvent struct {
	BaseEvent
	RequestID  int64  `json:"request_id"`
	UserID     int64  `json:"user_id"`
	ApproverID int64  `json:"approver_id"`
	Reason     string `json:"reason"`
}

func NewPurchaseRejectedEvent(requestID, userID, approverID int64, reason string) *PurchaseRejectedEvent {
	return &PurchaseRejectedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.New().String(),
			Type:      EventTypePurchaseRejected,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"request_id":  requestID,
				"user_id":     userID,
				"approver_id": approverID,
				"reason":      reason,
			},
		},
		RequestID:  requestID,
		UserID:     userID,
		ApproverID: approverID,
		Reason:     reason,
	}
}
