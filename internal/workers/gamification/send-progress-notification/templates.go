// internal/workers/gamification/send-progress-notification/templates.go
package sendprogressnotification

import (
	"fmt"
	"strings"

	"career-workers/internal/models"
)

type template struct {
	Subject string
	Body    string
	SMS     string
}

var templates = map[string]template{
	models.NotificationLevelUp: {
		Subject: "You reached level {{level}}: {{levelTitle}}",
		Body: "Hi {{name}},\n\nCongratulations! You are now level {{level}} ({{levelTitle}}) " +
			"with {{totalXP}} XP.\n\nKeep practising to reach the next level.",
		SMS: "Level up! You are now level {{level}} ({{levelTitle}}) with {{totalXP}} XP.",
	},
	models.NotificationJobDigest: {
		Subject: "{{jobCount}} jobs picked for you",
		Body:    "Hi {{name}},\n\nThese openings match your profile:\n\n{{jobList}}\n",
	},
}

// renderTemplate substitutes {{key}} placeholders and drops any left unfilled.
func renderTemplate(tmpl string, data map[string]interface{}) string {
	result := tmpl
	for k, v := range data {
		value := ""
		if v != nil {
			value = fmt.Sprintf("%v", v)
		}
		result = strings.ReplaceAll(result, "{{"+k+"}}", value)
	}

	for {
		start := strings.Index(result, "{{")
		if start == -1 {
			break
		}
		end := strings.Index(result[start:], "}}")
		if end == -1 {
			break
		}
		result = result[:start] + result[start+end+2:]
	}
	return result
}

func formatJobList(matches []models.JobMatch, max int) string {
	if max > 0 && len(matches) > max {
		matches = matches[:max]
	}
	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		line := "- " + m.Title
		if m.Company != "" {
			line += " at " + m.Company
		}
		line += fmt.Sprintf(" (%d%% match)", m.MatchScore)
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}
