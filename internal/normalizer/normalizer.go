package normalizer

import (
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/rawlake/ingest-service/internal/domain"
)

// ValidationError reports a payload that cannot be canonicalized. It is the
// only failure Normalize produces.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

// allowedTypes is the closed set of accepted event types.
var allowedTypes = map[string]bool{
	"pageview": true,
	"click":    true,
	"lead":     true,
	"purchase": true,
}

// Normalizer turns untrusted JSON payloads into canonical events. The clock
// and the ID generator are injectable so canonicalization is deterministic
// under test.
type Normalizer struct {
	now   func() time.Time
	newID func() string
}

// New creates a normalizer backed by the wall clock and random UUIDs.
func New() *Normalizer {
	return NewWithClock(time.Now, func() string { return uuid.New().String() })
}

// NewWithClock creates a normalizer with an explicit clock and ID generator.
func NewWithClock(now func() time.Time, newID func() string) *Normalizer {
	return &Normalizer{now: now, newID: newID}
}

// Normalize validates and canonicalizes one raw payload. Every field of the
// returned event is defaulted; unknown or malformed optional fields are
// replaced, never propagated. Only three conditions fail: an unknown type,
// a non-absolute URL, and a present-but-unparseable timestamp.
func (n *Normalizer) Normalize(raw map[string]interface{}) (*domain.Event, error) {
	now := n.now().UTC()

	eventType := strField(raw, "type")
	if !allowedTypes[eventType] {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid type %q", eventType)}
	}

	rawURL := strField(raw, "url")
	if !isAbsoluteURL(rawURL) {
		return nil, &ValidationError{Reason: fmt.Sprintf("invalid url %q", rawURL)}
	}

	ts := domain.FormatISO(now)
	if v := strField(raw, "ts"); v != "" {
		parsed, err := parseTimestamp(v)
		if err != nil {
			return nil, &ValidationError{Reason: fmt.Sprintf("invalid ts %q", v)}
		}
		ts = domain.FormatISO(parsed)
	}

	eventID := strField(raw, "event_id")
	if eventID == "" {
		eventID = n.newID()
	}

	// Nested records default field by field: a partially provided object
	// never invalidates its siblings.
	utm := subObject(raw, "utm")
	client := subObject(raw, "client")
	ids := subObject(raw, "ids")
	device := subObject(raw, "device")

	return &domain.Event{
		EventID:  eventID,
		TS:       ts,
		Type:     eventType,
		URL:      rawURL,
		Referrer: strField(raw, "referrer"),
		UTM: domain.UTM{
			Source:   strField(utm, "source"),
			Medium:   strField(utm, "medium"),
			Campaign: strField(utm, "campaign"),
			Content:  strField(utm, "content"),
			Term:     strField(utm, "term"),
		},
		Client: domain.Client{
			IP:   strField(client, "ip"),
			UA:   strField(client, "ua"),
			Lang: strField(client, "lang"),
		},
		IDs: domain.IDs{
			Cookie:      strField(ids, "cookie"),
			GA:          strField(ids, "ga"),
			UID:         strPtrField(ids, "uid"),
			EmailSHA256: strPtrField(ids, "email_sha256"),
		},
		Device: domain.Device{
			OS:      strField(device, "os"),
			Browser: strField(device, "browser"),
			Device:  strField(device, "device"),
		},
		Properties: objField(raw, "properties"),
	}, nil
}

// strField returns the string at key, or "" when absent or not a string.
func strField(m map[string]interface{}, key string) string {
	if v, ok := m[key].(string); ok {
		return v
	}
	return ""
}

// strPtrField returns the string at key, or nil when absent or not a
// string. An empty string stays a non-nil pointer.
func strPtrField(m map[string]interface{}, key string) *string {
	if v, ok := m[key].(string); ok {
		return &v
	}
	return nil
}

// subObject returns the nested object at key, or nil when absent or not an
// object.
func subObject(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key].(map[string]interface{}); ok {
		return v
	}
	return nil
}

// objField returns the object at key verbatim, or an empty map.
func objField(m map[string]interface{}, key string) map[string]interface{} {
	if v, ok := m[key].(map[string]interface{}); ok && v != nil {
		return v
	}
	return map[string]interface{}{}
}

func isAbsoluteURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != "" && u.Host != ""
}

// parseTimestamp accepts RFC3339 with or without sub-seconds, and a bare
// calendar date.
func parseTimestamp(v string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, v); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", v)
}
