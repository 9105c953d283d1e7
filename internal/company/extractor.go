package company

import (
	"context"
	"regexp"
	"strings"

	"jobtailor/internal/llm"
	"jobtailor/internal/shared/telemetry"
	"jobtailor/internal/shared/util"
)

// Unknown is the fallback company token used in folder and file names.
const Unknown = "Unknown_Company"

const (
	descriptionBudget = 2000
	systemMessage     = "You extract company names from job descriptions. Respond with only the company name, nothing else."
)

var (
	disallowedPattern = regexp.MustCompile(`[^\w\s-]`)
	whitespacePattern = regexp.MustCompile(`\s+`)
	underscorePattern = regexp.MustCompile(`_+`)
)

// Extract pulls the company name out of a job description and sanitizes it
// into a filesystem-safe token. Empty input or a failed call yields Unknown.
func Extract(ctx context.Context, client llm.Client, jobDescription string) string {
	if strings.TrimSpace(jobDescription) == "" {
		return Unknown
	}

	prompt := llm.Fill(llm.CompanyPromptV1(), map[string]string{
		"JOB_DESCRIPTION": util.Truncate(jobDescription, descriptionBudget),
	})

	reply, err := client.Generate(ctx, llm.Request{
		Label:         "company",
		Prompt:        prompt,
		SystemMessage: systemMessage,
		MaxTokens:     50,
		Temperature:   0.7,
	})
	if err != nil {
		telemetry.Error("company.generate", map[string]any{"error": err.Error()})
		return Unknown
	}

	return Sanitize(reply)
}

// Sanitize strips characters outside word/space/hyphen, collapses whitespace
// runs to single underscores and repeated underscores to one. Empty results
// and "unknown" variants map to Unknown.
func Sanitize(raw string) string {
	name := strings.TrimSpace(raw)
	name = disallowedPattern.ReplaceAllString(name, "")
	name = whitespacePattern.ReplaceAllString(name, "_")
	name = underscorePattern.ReplaceAllString(name, "_")
	name = strings.Trim(name, "_")

	switch strings.ToLower(name) {
	case "", "unknown", "unknown_company":
		return Unknown
	}
	return name
}
