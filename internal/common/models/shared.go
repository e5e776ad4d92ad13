package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ContextKey string

const (
	UserKeyKey ContextKey = "user_key"
)

type AuditAction string

const (
	AuditActionSaveLayout   AuditAction = "SAVE_LAYOUT"
	AuditActionDeleteLayout AuditAction = "DELETE_LAYOUT"
	AuditActionBootstrap    AuditAction = "BOOTSTRAP"
)

type Change struct {
	Old interface{} `bson:"old" json:"old"`
	New interface{} `bson:"new" json:"new"`
}

type AuditLog struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Action     AuditAction        `bson:"action" json:"action"`
	UserKey    primitive.ObjectID `bson:"user_key" json:"user_key"`
	LayoutName string             `bson:"layout_name" json:"layout_name"`
	Changes    map[string]Change  `bson:"changes,omitempty" json:"changes,omitempty"` // For updates: field -> {old, new}
	Timestamp  time.Time          `bson:"timestamp" json:"timestamp"`
}

type Log struct {
	AppId        string    `bson:"app_id" json:"app_id"`
	Message      string    `bson:"message" json:"message"`
	Caller       string    `bson:"caller,omitempty" json:"caller,omitempty"`
	UserKey      string    `bson:"user_key,omitempty" json:"user_key,omitempty"`
	LogLevelId   int       `bson:"log_level_id" json:"log_level_id"`
	CreatedOnUtc time.Time `bson:"created_on_utc" json:"created_on_utc"`
}
