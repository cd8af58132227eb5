package alerts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
)

// notice is the shift-scoped view of an alert shared by every webhook format.
type notice struct {
	Headline string  `json:"headline"`
	Rule     string  `json:"rule"`
	State    string  `json:"state"`
	Severity string  `json:"severity"`
	Line     string  `json:"line"`
	Date     string  `json:"date"`
	Shift    string  `json:"shift_id"`
	Value    float64 `json:"value"`
}

func newNotice(a *Alert) notice {
	verb := "below target"
	if a.State == StateResolved {
		verb = "back within target"
	}
	return notice{
		Headline: fmt.Sprintf("%s %s on %s, %s (shift %s)", a.RuleName, verb, a.LineName, a.Date, a.ShiftID),
		Rule:     a.RuleName,
		State:    a.State,
		Severity: a.Severity,
		Line:     a.LineName,
		Date:     a.Date,
		Shift:    a.ShiftID,
		Value:    a.Value,
	}
}

// facts lists the shift context in display order.
func (n notice) facts() [][2]string {
	return [][2]string{
		{"Line", n.Line},
		{"Date", n.Date},
		{"Shift", n.Shift},
		{"Rule", n.Rule},
		{"Value", strconv.FormatFloat(n.Value, 'f', 2, 64)},
		{"State", n.State},
	}
}

// encoders render a notice (and the raw alert) into each webhook type's body.
var encoders = map[string]func(n notice, a *Alert) interface{}{
	"slack": slackBody,
	"teams": teamsBody,
	"http": func(n notice, a *Alert) interface{} {
		return map[string]interface{}{"alert": a, "shift": n}
	},
}

func slackBody(n notice, _ *Alert) interface{} {
	fields := make([]map[string]string, 0, 6)
	for _, f := range n.facts() {
		fields = append(fields, map[string]string{"type": "mrkdwn", "text": fmt.Sprintf("*%s*\n%s", f[0], f[1])})
	}
	return map[string]interface{}{
		"text": fmt.Sprintf("%s %s", marker(n), n.Headline),
		"blocks": []map[string]interface{}{
			{"type": "section", "text": map[string]string{"type": "mrkdwn", "text": fmt.Sprintf("*%s* %s", marker(n), n.Headline)}},
			{"type": "section", "fields": fields},
		},
	}
}

func teamsBody(n notice, _ *Alert) interface{} {
	facts := make([]map[string]string, 0, 6)
	for _, f := range n.facts() {
		facts = append(facts, map[string]string{"name": f[0], "value": f[1]})
	}
	return map[string]interface{}{
		"@type":      "MessageCard",
		"@context":   "http://schema.org/extensions",
		"themeColor": color(n),
		"summary":    n.Headline,
		"title":      fmt.Sprintf("%s %s", marker(n), n.Rule),
		"sections":   []map[string]interface{}{{"activityTitle": n.Headline, "facts": facts}},
	}
}

// deliver posts a to every configured webhook. Failures are logged only.
func (e *Engine) deliver(a *Alert) {
	e.mu.Lock()
	webhooks := e.webhooks
	e.mu.Unlock()

	n := newNotice(a)
	for _, wh := range webhooks {
		url := wh.URL()
		if url == "" {
			continue
		}
		encode, ok := encoders[wh.Type]
		if !ok {
			slog.Warn("alerts: unknown webhook type, skipping", "type", wh.Type)
			continue
		}
		body, err := json.Marshal(encode(n, a))
		if err == nil {
			err = e.post(url, body)
		}
		if err != nil {
			slog.Error("alerts: webhook delivery failed",
				"type", wh.Type, "rule", a.RuleName, "shift", a.ShiftID, "err", err)
			continue
		}
		slog.Debug("alerts: webhook delivered", "type", wh.Type, "rule", a.RuleName, "state", a.State)
	}
}

func (e *Engine) post(url string, body []byte) error {
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return fmt.Errorf("http post: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook returned HTTP %d", resp.StatusCode)
	}
	return nil
}

func marker(n notice) string {
	if n.State == StateResolved {
		return "[RESOLVED]"
	}
	switch n.Severity {
	case "critical":
		return "[CRITICAL]"
	case "warning":
		return "[WARNING]"
	}
	return "[INFO]"
}

func color(n notice) string {
	if n.State == StateResolved {
		return "2EB67D"
	}
	switch n.Severity {
	case "critical":
		return "FF4F6A"
	case "warning":
		return "FFAB40"
	}
	return "00D4FF"
}
