package domain

import "time"

// ISOMillis is the canonical timestamp layout: UTC RFC3339 with millisecond
// precision, matching the format the browser SDKs emit.
const ISOMillis = "2006-01-02T15:04:05.000Z"

// FormatISO renders t in the canonical timestamp layout.
func FormatISO(t time.Time) string {
	return t.UTC().Format(ISOMillis)
}

// Event is a canonical web analytics event as written to the raw bucket.
// Every field is always present in the serialized form; the normalizer
// guarantees full defaulting.
type Event struct {
	EventID    string                 `json:"event_id"`
	TS         string                 `json:"ts"`
	Type       string                 `json:"type"`
	URL        string                 `json:"url"`
	Referrer   string                 `json:"referrer"`
	UTM        UTM                    `json:"utm"`
	Client     Client                 `json:"client"`
	IDs        IDs                    `json:"ids"`
	Device     Device                 `json:"device"`
	Properties map[string]interface{} `json:"properties"`
}

// UTM carries campaign attribution parameters.
type UTM struct {
	Source   string `json:"source"`
	Medium   string `json:"medium"`
	Campaign string `json:"campaign"`
	Content  string `json:"content"`
	Term     string `json:"term"`
}

// Client describes the submitting user agent.
type Client struct {
	IP   string `json:"ip"`
	UA   string `json:"ua"`
	Lang string `json:"lang"`
}

// IDs holds identity fields. UID and EmailSHA256 are pointers so the
// serialized form distinguishes "known empty" ("") from "not provided"
// (null).
type IDs struct {
	Cookie      string  `json:"cookie"`
	GA          string  `json:"ga"`
	UID         *string `json:"uid"`
	EmailSHA256 *string `json:"email_sha256"`
}

// Device describes the submitting device.
type Device struct {
	OS      string `json:"os"`
	Browser string `json:"browser"`
	Device  string `json:"device"`
}
