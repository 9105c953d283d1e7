package skills

import (
	"context"
	"encoding/json"
	"regexp"

	"jobtailor/internal/llm"
	"jobtailor/internal/shared/telemetry"
)

const systemMessage = "You extract professional skills from user data. Always respond with valid JSON."

var quotedPattern = regexp.MustCompile(`"([^"]+)"`)

// Extract asks the LLM for a JSON object of shape {"skills": [...]} built
// from the profile's resume, portfolio and LinkedIn text. Invalid JSON falls
// back to scanning the reply for quoted substrings; a failed call or an
// empty fallback yields an empty list. It never fails the caller.
func Extract(ctx context.Context, client llm.Client, resumeText, portfolioText, linkedinText string) []string {
	prompt := llm.Fill(llm.SkillsPromptV1(), map[string]string{
		"RESUME_TEXT":    orNotProvided(resumeText),
		"PORTFOLIO_TEXT": orNotProvided(portfolioText),
		"LINKEDIN_TEXT":  orNotProvided(linkedinText),
	})

	reply, err := client.Generate(ctx, llm.Request{
		Label:         "skills",
		Prompt:        prompt,
		SystemMessage: systemMessage,
		MaxTokens:     500,
		Temperature:   0.3,
	})
	if err != nil {
		telemetry.Error("skills.generate", map[string]any{"error": err.Error()})
		return []string{}
	}

	return Parse(reply)
}

// Parse applies the two-stage reply parser: strict JSON first, then the
// quoted-substring fallback.
func Parse(reply string) []string {
	var parsed struct {
		Skills []string `json:"skills"`
	}
	if err := json.Unmarshal([]byte(reply), &parsed); err == nil {
		if parsed.Skills == nil {
			return []string{}
		}
		telemetry.Info("skills.extracted", map[string]any{"count": len(parsed.Skills)})
		return parsed.Skills
	}

	telemetry.Warn("skills.fallback_regex", map[string]any{"reply_len": len(reply)})
	matches := quotedPattern.FindAllStringSubmatch(reply, -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		if m[1] != "skills" {
			out = append(out, m[1])
		}
	}
	return out
}

func orNotProvided(s string) string {
	if s == "" {
		return "Not provided"
	}
	return s
}
