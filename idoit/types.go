package idoit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// Params is the parameter object of a JSON-RPC call.
type Params map[string]any

// Int decodes from a JSON number or a numeric string; i-doit uses both
// for identifiers depending on the method. An empty string decodes to 0.
type Int int64

func (n *Int) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*n = 0
			return nil
		}
		data = []byte(s)
	}
	v, err := strconv.ParseInt(string(data), 10, 64)
	if err != nil {
		return fmt.Errorf("idoit: %q is not an integer", data)
	}
	*n = Int(v)
	return nil
}

// ID is an i-doit object or user identifier.
type ID = Int

// Record status constants accepted by cmdb.object.delete.
const (
	StatusNormal   = "C__RECORD_STATUS__NORMAL"
	StatusArchived = "C__RECORD_STATUS__ARCHIVED"
	StatusDeleted  = "C__RECORD_STATUS__DELETED"
	StatusPurge    = "C__RECORD_STATUS__PURGE"
	StatusTemplate = "C__RECORD_STATUS__TEMPLATE"
)

type LoginResult struct {
	UserID    ID     `json:"userid"`
	Name      string `json:"name"`
	Mail      string `json:"mail"`
	Username  string `json:"username"`
	Mandator  string `json:"mandator"`
	Language  string `json:"language"`
	SessionID string `json:"session-id"`
	ClientID  ID     `json:"client-id"`
}

type User struct {
	UserID   ID     `json:"userid"`
	Name     string `json:"name"`
	Mail     string `json:"mail"`
	Username string `json:"username"`
	Mandator string `json:"mandator"`
	Language string `json:"language"`
}

// VersionResult describes the i-doit installation and the calling user.
type VersionResult struct {
	Login   User   `json:"login"`
	Version string `json:"version"`
	Step    string `json:"step"`
	Type    string `json:"type"`
}

type SearchResult struct {
	DocumentID string `json:"documentId"`
	Key        string `json:"key"`
	Value      string `json:"value"`
	Type       string `json:"type"`
	Link       string `json:"link"`
	Score      Int    `json:"score"`
}

type CategoryConstants struct {
	Global   map[string]string `json:"g"`
	Specific map[string]string `json:"s"`
}

type Constants struct {
	ObjectTypes  map[string]string `json:"objectTypes"`
	Categories   CategoryConstants `json:"categories"`
	RecordStates map[string]string `json:"recordStates"`
}

type ObjectCreateResult struct {
	ID      ID     `json:"id"`
	Message string `json:"message"`
	Success bool   `json:"success"`
}

// ObjectCreateOptions holds the optional attributes of category Global.
// Unset fields are sent as null.
type ObjectCreateOptions struct {
	Category    *string
	Purpose     *string
	CMDBStatus  any
	Description *string
}

type Object struct {
	ID              ID     `json:"id"`
	Title           string `json:"title"`
	SysID           string `json:"sysid"`
	ObjectType      ID     `json:"objecttype"`
	TypeTitle       string `json:"type_title"`
	TypeIcon        string `json:"type_icon"`
	Status          ID     `json:"status"`
	CMDBStatus      ID     `json:"cmdb_status"`
	CMDBStatusTitle string `json:"cmdb_status_title"`
	Created         string `json:"created"`
	Updated         string `json:"updated"`
	Image           string `json:"image"`
}

// StatusResult is returned by the update and lifecycle methods.
type StatusResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// String returns a pointer to s, for use in ObjectCreateOptions.
func String(s string) *string {
	return &s
}
