package llm

import (
	_ "embed"
	"strings"
)

var (
	//go:embed prompts/skills_v1.txt
	skillsPromptV1 string
	//go:embed prompts/company_v1.txt
	companyPromptV1 string
	//go:embed prompts/resume_v1.txt
	resumePromptV1 string
	//go:embed prompts/cover_letter_v1.txt
	coverLetterPromptV1 string
)

// SkillsPromptV1 returns the skill-extraction prompt template.
func SkillsPromptV1() string { return skillsPromptV1 }

// CompanyPromptV1 returns the company-name-extraction prompt template.
func CompanyPromptV1() string { return companyPromptV1 }

// ResumePromptV1 returns the tailored-resume prompt template.
func ResumePromptV1() string { return resumePromptV1 }

// CoverLetterPromptV1 returns the cover-letter prompt template.
func CoverLetterPromptV1() string { return coverLetterPromptV1 }

// Fill replaces {{NAME}} placeholders in a prompt template.
func Fill(template string, vars map[string]string) string {
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{{"+k+"}}", v)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
