package generate

import (
	"context"
	"strings"
	"time"

	"jobtailor/internal/llm"
	"jobtailor/internal/shared/util"
)

// Character budgets applied to long inputs before prompt assembly.
const (
	jobDescriptionBudget = 3500
	resumeBudget         = 2000
	coverResumeBudget    = 1500
	portfolioBudget      = 500
	linkedinBudget       = 500
)

const (
	resumeSystemMessage = "You are a professional resume writer. Always respond with complete, valid HTML only. " +
		"Do not include markdown formatting, code blocks, or any explanatory text before or after the HTML. " +
		"Your entire response should be valid HTML that can be directly rendered in a browser."
	coverLetterSystemMessage = "You are a professional cover letter writer. Always respond with complete, valid HTML only. " +
		"Do not include markdown formatting, code blocks, or any explanatory text before or after the HTML. " +
		"Your entire response should be valid HTML that can be directly rendered in a browser."
)

// DocumentInput carries everything one resume/cover-letter generation needs.
type DocumentInput struct {
	ResumeText     string
	JobDescription string
	CompanyName    string
	ApplicantName  string
	Skills         []string
	PortfolioText  string
	LinkedInText   string
}

// Generator builds tailored-document prompts and invokes the LLM.
type Generator struct {
	LLM llm.Client
	// Now is overridable for tests; nil means time.Now.
	Now func() time.Time
}

// Resume produces a tailored resume as a complete HTML document.
func (g *Generator) Resume(ctx context.Context, in DocumentInput) (string, error) {
	prompt := llm.Fill(llm.ResumePromptV1(), map[string]string{
		"TODAY":           g.today(),
		"RESUME_TEXT":     util.Truncate(in.ResumeText, resumeBudget),
		"JOB_DESCRIPTION": util.Truncate(in.JobDescription, jobDescriptionBudget),
		"PROFILE_BLOCK":   profileBlock(in),
	})

	reply, err := g.LLM.Generate(ctx, llm.Request{
		Label:         "resume",
		Prompt:        prompt,
		SystemMessage: resumeSystemMessage,
		MaxTokens:     4000,
		Temperature:   0.7,
	})
	if err != nil {
		return "", err
	}
	return EnsureHTMLDocument(reply), nil
}

// CoverLetter produces a business-letter cover letter as a complete HTML
// document.
func (g *Generator) CoverLetter(ctx context.Context, in DocumentInput) (string, error) {
	prompt := llm.Fill(llm.CoverLetterPromptV1(), map[string]string{
		"TODAY":           g.today(),
		"NAME_BLOCK":      nameBlock(in),
		"RESUME_TEXT":     util.Truncate(in.ResumeText, coverResumeBudget),
		"JOB_DESCRIPTION": util.Truncate(in.JobDescription, jobDescriptionBudget),
		"PROFILE_BLOCK":   profileBlock(in),
	})

	reply, err := g.LLM.Generate(ctx, llm.Request{
		Label:         "cover_letter",
		Prompt:        prompt,
		SystemMessage: coverLetterSystemMessage,
		MaxTokens:     4000,
		Temperature:   0.7,
	})
	if err != nil {
		return "", err
	}
	return EnsureHTMLDocument(reply), nil
}

func (g *Generator) today() string {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}
	return now().Format("January 2, 2006")
}

func nameBlock(in DocumentInput) string {
	var b strings.Builder
	if in.ApplicantName != "" {
		b.WriteString("Applicant Name: " + in.ApplicantName + "\n")
	}
	if in.CompanyName != "" && in.CompanyName != "Unknown_Company" {
		b.WriteString("Company: " + strings.ReplaceAll(in.CompanyName, "_", " ") + "\n")
	}
	return strings.TrimSpace(b.String())
}

func profileBlock(in DocumentInput) string {
	var b strings.Builder
	if len(in.Skills) > 0 {
		b.WriteString("Skills to emphasize (if relevant to the job):\n")
		for _, skill := range in.Skills {
			b.WriteString("- " + skill + "\n")
		}
	}
	if text := strings.TrimSpace(in.PortfolioText); text != "" {
		b.WriteString("\nPORTFOLIO (excerpt):\n" + util.Truncate(text, portfolioBudget) + "\n")
	}
	if text := strings.TrimSpace(in.LinkedInText); text != "" {
		b.WriteString("\nLINKEDIN (excerpt):\n" + util.Truncate(text, linkedinBudget) + "\n")
	}
	return strings.TrimSpace(b.String())
}

const htmlWrapperHead = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Generated Document</title>
<style>
body {
  font-family: Arial, Helvetica, sans-serif;
  font-size: 12px;
  line-height: 1.5;
  color: #222;
  background: #fff;
  margin: 1in;
}
h1, h2, h3 {
  color: #1a1a1a;
}
@media print {
  body {
    background: none;
    margin: 0.75in;
  }
}
</style>
</head>
<body>
`

const htmlWrapperTail = `
</body>
</html>
`

// EnsureHTMLDocument wraps a bare reply in a default HTML document when the
// reply lacks its own <html>/<body> markers.
func EnsureHTMLDocument(content string) string {
	lower := strings.ToLower(content)
	if strings.Contains(lower, "<html") && strings.Contains(lower, "<body") {
		return content
	}
	return htmlWrapperHead + content + htmlWrapperTail
}
