// Package scanner flags template lines that look like real credentials.
// The template is supposed to carry key names only; anything matching
// here was pasted in by hand and belongs in a gitignored source file.
package scanner

import (
	"regexp"
	"strings"
)

type Pattern struct {
	Name     string
	Regex    *regexp.Regexp
	Severity string
}

var Patterns = []Pattern{
	{
		Name:     "AWS Access Key ID",
		Regex:    regexp.MustCompile(`AKIA[0-9A-Z]{16}`),
		Severity: "high",
	},
	{
		Name:     "GitHub Token",
		Regex:    regexp.MustCompile(`gh[pousr]_[0-9a-zA-Z]{36}`),
		Severity: "high",
	},
	{
		Name:     "GitHub Fine-Grained PAT",
		Regex:    regexp.MustCompile(`github_pat_[0-9a-zA-Z_]{22,}`),
		Severity: "high",
	},
	{
		Name:     "GitLab Token",
		Regex:    regexp.MustCompile(`gl(pat|dt|ft)-[0-9a-zA-Z\-]{20}`),
		Severity: "high",
	},
	{
		Name:     "Slack Token",
		Regex:    regexp.MustCompile(`xox[baprs]-[0-9]{10,13}-[0-9]{10,13}(-[0-9a-zA-Z]{24})?`),
		Severity: "high",
	},
	{
		Name:     "Slack Webhook URL",
		Regex:    regexp.MustCompile(`https://hooks\.slack\.com/services/T[0-9A-Z]{8,12}/B[0-9A-Z]{8,12}/[0-9a-zA-Z]{24}`),
		Severity: "high",
	},
	{
		Name:     "Private Key",
		Regex:    regexp.MustCompile(`-----BEGIN (RSA |EC |DSA |OPENSSH )?PRIVATE KEY-----`),
		Severity: "high",
	},
	{
		Name:     "Google API Key",
		Regex:    regexp.MustCompile(`AIza[0-9A-Za-z_-]{35}`),
		Severity: "high",
	},
	{
		Name:     "Stripe Key",
		Regex:    regexp.MustCompile(`[sr]k_(live|test)_[0-9a-zA-Z]{24,}`),
		Severity: "high",
	},
	{
		Name:     "OpenAI API Key",
		Regex:    regexp.MustCompile(`sk-[a-zA-Z0-9_-]{20,}`),
		Severity: "high",
	},
	{
		Name:     "Anthropic API Key",
		Regex:    regexp.MustCompile(`sk-ant-[a-zA-Z0-9\-_]{80,}`),
		Severity: "high",
	},
	{
		Name:     "SendGrid API Key",
		Regex:    regexp.MustCompile(`SG\.[a-zA-Z0-9=_\-\.]{66}`),
		Severity: "high",
	},
	{
		Name:     "Twilio API Key",
		Regex:    regexp.MustCompile(`SK[0-9a-f]{32}`),
		Severity: "high",
	},
	{
		Name:     "Docker Hub PAT",
		Regex:    regexp.MustCompile(`dckr_pat_[0-9a-zA-Z_-]{27}`),
		Severity: "high",
	},
	{
		Name:     "URL With Embedded Password",
		Regex:    regexp.MustCompile(`[a-zA-Z][a-zA-Z0-9+.-]*://[^:/\s@]+:[^@\s]+@[^\s]+`),
		Severity: "medium",
	},
	{
		Name:     "JWT Token",
		Regex:    regexp.MustCompile(`eyJ[a-zA-Z0-9_-]*\.eyJ[a-zA-Z0-9_-]*\.[a-zA-Z0-9_-]*`),
		Severity: "medium",
	},
}

// Finding is one suspicious template line. Match holds the matched text
// so callers can reason about it, but it should never be echoed back to
// the terminal.
type Finding struct {
	Pattern Pattern
	Line    int
	Match   string
}

// Check scans content line by line and reports the first matching
// pattern per line, with 1-based line numbers.
func Check(content string) []Finding {
	var findings []Finding
	for i, line := range strings.Split(content, "\n") {
		for _, p := range Patterns {
			if m := p.Regex.FindString(line); m != "" {
				findings = append(findings, Finding{Pattern: p, Line: i + 1, Match: m})
				break
			}
		}
	}
	return findings
}
