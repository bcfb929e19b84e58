// Package audit defines the SalesforceAudit record exchanged through the
// schema registry serializers.
package audit

import "fmt"

// SalesforceAudit is a single Salesforce audit event. Field names match the
// registered Avro and JSON schema definitions; two records are equal when all
// four fields are equal.
type SalesforceAudit struct {
	EventID      string `json:"eventId" avro:"eventId"`
	EventName    string `json:"eventName" avro:"eventName"`
	Timestamp    int64  `json:"timestamp" avro:"timestamp"`
	EventDetails string `json:"eventDetails" avro:"eventDetails"`
}

// Schema is the canonical Avro record definition for SalesforceAudit,
// suitable for registering in a schema registry.
const Schema = `{
	"type": "record",
	"name": "SalesforceAudit",
	"namespace": "com.salesforce.audit",
	"fields": [
		{"name": "eventId", "type": "string"},
		{"name": "eventName", "type": "string"},
		{"name": "timestamp", "type": "long"},
		{"name": "eventDetails", "type": "string"}
	]
}`

// ToMap converts the record to a generic Avro datum keyed by schema field name.
func (a SalesforceAudit) ToMap() map[string]any {
	return map[string]any{
		"eventId":      a.EventID,
		"eventName":    a.EventName,
		"timestamp":    a.Timestamp,
		"eventDetails": a.EventDetails,
	}
}

// FromMap builds a record from a decoded Avro datum. Every schema field must
// be present with its schema type; a partial datum is an error, never a
// partial record.
func FromMap(data map[string]any) (SalesforceAudit, error) {
	var a SalesforceAudit

	eventID, err := stringField(data, "eventId")
	if err != nil {
		return SalesforceAudit{}, err
	}
	eventName, err := stringField(data, "eventName")
	if err != nil {
		return SalesforceAudit{}, err
	}
	timestamp, err := longField(data, "timestamp")
	if err != nil {
		return SalesforceAudit{}, err
	}
	eventDetails, err := stringField(data, "eventDetails")
	if err != nil {
		return SalesforceAudit{}, err
	}

	a.EventID = eventID
	a.EventName = eventName
	a.Timestamp = timestamp
	a.EventDetails = eventDetails
	return a, nil
}

func stringField(data map[string]any, name string) (string, error) {
	raw, ok := data[name]
	if !ok {
		return "", fmt.Errorf("field %q missing from decoded record", name)
	}
	s, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("field %q has type %T, expected string", name, raw)
	}
	return s, nil
}

func longField(data map[string]any, name string) (int64, error) {
	raw, ok := data[name]
	if !ok {
		return 0, fmt.Errorf("field %q missing from decoded record", name)
	}
	switch v := raw.(type) {
	case int64:
		return v, nil
	case int32:
		return int64(v), nil
	case int:
		return int64(v), nil
	default:
		return 0, fmt.Errorf("field %q has type %T, expected long", name, raw)
	}
}
