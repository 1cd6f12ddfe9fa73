package models

import "gorm.io/gorm"

// Message is a direct message between two users, with an optional stored
// attachment. The read flag is set the first time the receiver fetches it
// and never cleared.
type Message struct {
	gorm.Model
	SenderID   uint   `json:"sender_id" gorm:"index;not null"`
	ReceiverID uint   `json:"receiver_id" gorm:"index;not null"`
	Content    string `json:"content"`
	FilePath   string `json:"file_path"`
	FileType   string `json:"file_type"`
	IsRead     bool   `json:"is_read" gorm:"default:false"`

	Sender   *User `json:"sender,omitempty" gorm:"foreignKey:SenderID"`
	Receiver *User `json:"receiver,omitempty" gorm:"foreignKey:ReceiverID"`
}
