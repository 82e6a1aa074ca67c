package normalizer

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testNow = time.Date(2024, 3, 14, 9, 30, 0, 0, time.UTC)

func fixedNormalizer() *Normalizer {
	return NewWithClock(
		func() time.Time { return testNow },
		func() string { return "generated-id" },
	)
}

func TestNormalize_MinimalValidEvent(t *testing.T) {
	n := fixedNormalizer()

	event, err := n.Normalize(map[string]interface{}{
		"type": "click",
		"url":  "https://example.com/a",
	})

	assert.NoError(t, err)
	assert.Equal(t, "generated-id", event.EventID)
	assert.Equal(t, "2024-03-14T09:30:00.000Z", event.TS)
	assert.Equal(t, "click", event.Type)
	assert.Equal(t, "https://example.com/a", event.URL)
	assert.Equal(t, "", event.Referrer)

	// Every nested field present with its documented default.
	assert.Equal(t, "", event.UTM.Source)
	assert.Equal(t, "", event.UTM.Medium)
	assert.Equal(t, "", event.UTM.Campaign)
	assert.Equal(t, "", event.UTM.Content)
	assert.Equal(t, "", event.UTM.Term)
	assert.Equal(t, "", event.Client.IP)
	assert.Equal(t, "", event.Client.UA)
	assert.Equal(t, "", event.Client.Lang)
	assert.Equal(t, "", event.IDs.Cookie)
	assert.Equal(t, "", event.IDs.GA)
	assert.Nil(t, event.IDs.UID)
	assert.Nil(t, event.IDs.EmailSHA256)
	assert.Equal(t, "", event.Device.OS)
	assert.Equal(t, "", event.Device.Browser)
	assert.Equal(t, "", event.Device.Device)
	assert.NotNil(t, event.Properties)
	assert.Empty(t, event.Properties)
}

func TestNormalize_InvalidType(t *testing.T) {
	n := fixedNormalizer()

	event, err := n.Normalize(map[string]interface{}{
		"type": "bogus",
		"url":  "https://x.com",
	})

	assert.Nil(t, event)
	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Contains(t, err.Error(), "invalid type")
	assert.Contains(t, err.Error(), "bogus")
}

func TestNormalize_MissingType(t *testing.T) {
	n := fixedNormalizer()

	_, err := n.Normalize(map[string]interface{}{
		"url": "https://x.com",
	})

	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Contains(t, err.Error(), "invalid type")
}

func TestNormalize_AllValidTypes(t *testing.T) {
	n := fixedNormalizer()

	for _, eventType := range []string{"pageview", "click", "lead", "purchase"} {
		event, err := n.Normalize(map[string]interface{}{
			"type": eventType,
			"url":  "https://example.com",
		})
		assert.NoError(t, err)
		assert.Equal(t, eventType, event.Type)
	}
}

func TestNormalize_InvalidURL(t *testing.T) {
	n := fixedNormalizer()

	for _, rawURL := range []string{"not-a-url", "/relative/path", ""} {
		event, err := n.Normalize(map[string]interface{}{
			"type": "lead",
			"url":  rawURL,
		})
		assert.Nil(t, event)
		var vErr *ValidationError
		assert.True(t, errors.As(err, &vErr))
		assert.Contains(t, err.Error(), "invalid url")
	}
}

func TestNormalize_ExplicitTimestampNormalized(t *testing.T) {
	n := fixedNormalizer()

	event, err := n.Normalize(map[string]interface{}{
		"type": "pageview",
		"url":  "https://example.com",
		"ts":   "2024-01-02T03:04:05+02:00",
	})

	assert.NoError(t, err)
	assert.Equal(t, "2024-01-02T01:04:05.000Z", event.TS)
}

func TestNormalize_UnparseableTimestampFails(t *testing.T) {
	n := fixedNormalizer()

	event, err := n.Normalize(map[string]interface{}{
		"type": "pageview",
		"url":  "https://example.com",
		"ts":   "yesterday",
	})

	assert.Nil(t, event)
	var vErr *ValidationError
	assert.True(t, errors.As(err, &vErr))
	assert.Contains(t, err.Error(), "invalid ts")
}

func TestNormalize_NonStringTimestampDefaults(t *testing.T) {
	n := fixedNormalizer()

	// Only a present, unparseable string is a hard failure; a non-string
	// value defaults like an absent one.
	event, err := n.Normalize(map[string]interface{}{
		"type": "pageview",
		"url":  "https://example.com",
		"ts":   float64(1700000000),
	})

	assert.NoError(t, err)
	assert.Equal(t, "2024-03-14T09:30:00.000Z", event.TS)
}

func TestNormalize_ExplicitEventIDKept(t *testing.T) {
	n := fixedNormalizer()

	event, err := n.Normalize(map[string]interface{}{
		"type":     "click",
		"url":      "https://example.com",
		"event_id": "evt-42",
	})

	assert.NoError(t, err)
	assert.Equal(t, "evt-42", event.EventID)
}

func TestNormalize_PartialNestedObject(t *testing.T) {
	n := fixedNormalizer()

	event, err := n.Normalize(map[string]interface{}{
		"type": "click",
		"url":  "https://example.com",
		"utm": map[string]interface{}{
			"source": "newsletter",
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "newsletter", event.UTM.Source)
	assert.Equal(t, "", event.UTM.Medium)
	assert.Equal(t, "", event.UTM.Campaign)
}

func TestNormalize_IDsAbsentVersusEmpty(t *testing.T) {
	n := fixedNormalizer()

	event, err := n.Normalize(map[string]interface{}{
		"type": "click",
		"url":  "https://example.com",
		"ids": map[string]interface{}{
			"cookie": "c1",
			"uid":    "",
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, "c1", event.IDs.Cookie)
	// Provided empty string stays a known-empty value.
	if assert.NotNil(t, event.IDs.UID) {
		assert.Equal(t, "", *event.IDs.UID)
	}
	// Not provided at all stays the absent marker.
	assert.Nil(t, event.IDs.EmailSHA256)
}

func TestNormalize_PropertiesPassthrough(t *testing.T) {
	n := fixedNormalizer()

	props := map[string]interface{}{"sku": "prod-789", "price": 129.99}
	event, err := n.Normalize(map[string]interface{}{
		"type":       "purchase",
		"url":        "https://example.com/checkout",
		"properties": props,
	})

	assert.NoError(t, err)
	assert.Equal(t, props, event.Properties)
}

func TestNormalize_NonObjectPropertiesReplaced(t *testing.T) {
	n := fixedNormalizer()

	event, err := n.Normalize(map[string]interface{}{
		"type":       "purchase",
		"url":        "https://example.com",
		"properties": "not-an-object",
	})

	assert.NoError(t, err)
	assert.NotNil(t, event.Properties)
	assert.Empty(t, event.Properties)
}

func TestNormalize_Deterministic(t *testing.T) {
	n := fixedNormalizer()

	payload := map[string]interface{}{
		"type":     "lead",
		"url":      "https://example.com/form",
		"referrer": "https://google.com",
		"client":   map[string]interface{}{"ip": "10.0.0.1"},
	}

	first, err := n.Normalize(payload)
	assert.NoError(t, err)
	second, err := n.Normalize(payload)
	assert.NoError(t, err)

	assert.Equal(t, first, second)
}
