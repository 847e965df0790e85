package models

import "encoding/json"

type NotificationType string

const (
	NotificationInfo    NotificationType = "info"
	NotificationAlert   NotificationType = "alert"
	NotificationSuccess NotificationType = "success"
)

func (t NotificationType) Valid() bool {
	switch t {
	case NotificationInfo, NotificationAlert, NotificationSuccess:
		return true
	}
	return false
}

type Notification struct {
	ID         ID               `json:"id"`
	Type       NotificationType `json:"type"`
	SenderID   ID               `json:"senderId"`
	ReceiverID ID               `json:"receiverId"`
	Message    string           `json:"message"`
	Date       string           `json:"date"`
}

// NotificationInput is the POST /notifications body. The backend accepts a
// single receiver id or a list of them.
type NotificationInput struct {
	Type        NotificationType
	SenderID    ID
	ReceiverIDs []ID
	Message     string
}

func (n NotificationInput) MarshalJSON() ([]byte, error) {
	var receiver any = n.ReceiverIDs
	if len(n.ReceiverIDs) == 1 {
		receiver = n.ReceiverIDs[0]
	}
	return json.Marshal(struct {
		Type       NotificationType `json:"type"`
		SenderID   ID               `json:"senderId"`
		ReceiverID any              `json:"receiverId"`
		Message    string           `json:"message"`
	}{n.Type, n.SenderID, receiver, n.Message})
}

// Sender is the lookup result for a notification sender.
type Sender struct {
	Name string `json:"name"`
}
