package entity

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// TrackingData é o sub-registro que o formulário anexa ao fim da mensagem.
type TrackingData struct {
	Referrer  string `json:"referrer"`
	Timestamp string `json:"timestamp"`
	SessionID string `json:"sessionId"`
}

var (
	trackingPattern = regexp.MustCompile(`Dados de tracking:\{([^}]+)\}`)
	bareKeyPattern  = regexp.MustCompile(`([{,]\s*)([A-Za-z_]\w*)\s*:`)
)

// ParseTrackingData separates the embedded tracking payload from the free
// text. It never fails: malformed payloads yield the original message and nil.
func ParseTrackingData(message string) (string, *TrackingData) {
	match := trackingPattern.FindStringSubmatch(message)
	if match == nil {
		return message, nil
	}

	raw := "{" + match[1] + "}"
	fields := map[string]any{}
	if err := json.Unmarshal([]byte(raw), &fields); err != nil {
		// chaves sem aspas: {referrer:"...",sessionId:"..."}
		quoted := bareKeyPattern.ReplaceAllString(raw, `$1"$2":`)
		if err := json.Unmarshal([]byte(quoted), &fields); err != nil {
			return message, nil
		}
	}

	data := &TrackingData{
		Referrer:  stringField(fields["referrer"]),
		Timestamp: stringField(fields["timestamp"]),
		SessionID: stringField(fields["sessionId"]),
	}
	clean := strings.TrimSpace(trackingPattern.ReplaceAllString(message, ""))
	return clean, data
}

func stringField(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return fmt.Sprintf("%.0f", t)
	default:
		return fmt.Sprint(t)
	}
}
