package review

import (
	"fmt"
	"strings"
	"time"
)

const (
	StatusPass    = "pass"
	StatusWarning = "warning"
	StatusFail    = "fail"
)

type CheckResult struct {
	Status  string             `json:"status"`
	Checks  map[string]bool    `json:"checks,omitempty"`
	Metrics map[string]float64 `json:"metrics,omitempty"`
	Issues  []string           `json:"issues"`
}

type Checks struct {
	Performance    CheckResult `json:"performance"`
	SEO            CheckResult `json:"seo"`
	Accessibility  CheckResult `json:"accessibility"`
	Security       CheckResult `json:"security"`
	CodeQuality    CheckResult `json:"code_quality"`
	Responsiveness CheckResult `json:"responsiveness"`
}

type Summary struct {
	TotalIssues    int `json:"total_issues"`
	CriticalIssues int `json:"critical_issues"`
	WarningIssues  int `json:"warning_issues"`
	Score          int `json:"score"`
}

type Report struct {
	Timestamp       time.Time `json:"timestamp"`
	TargetURL       string    `json:"target_url"`
	Checks          Checks    `json:"checks"`
	Summary         Summary   `json:"summary"`
	Recommendations []string  `json:"recommendations"`
}

// State is carried from one run to the next by the caller.
type State struct {
	LastReport *Report
	Runs       int
}

// statusFor maps an issue count to a status; more than failAbove issues fails.
func statusFor(issues []string, failAbove int) string {
	switch {
	case len(issues) == 0:
		return StatusPass
	case len(issues) > failAbove:
		return StatusFail
	default:
		return StatusWarning
	}
}

func (c *Checks) ordered() []*CheckResult {
	return []*CheckResult{&c.Performance, &c.SEO, &c.Accessibility, &c.Security, &c.CodeQuality, &c.Responsiveness}
}

// Summarize scores the report: each failed check costs 20 points and each
// warning 5, floored at zero. Issues of failed checks count as critical.
func Summarize(r *Report) {
	s := Summary{Score: 100}
	for _, c := range r.Checks.ordered() {
		s.TotalIssues += len(c.Issues)
		switch c.Status {
		case StatusFail:
			s.CriticalIssues += len(c.Issues)
			s.Score -= 20
		case StatusWarning:
			s.WarningIssues += len(c.Issues)
			s.Score -= 5
		}
	}
	if s.Score < 0 {
		s.Score = 0
	}
	r.Summary = s
}

func Recommend(r *Report) {
	var recs []string
	if r.Checks.Performance.Status != StatusPass {
		recs = append(recs, "Improve performance by reducing image and asset sizes")
	}
	if r.Checks.SEO.Status != StatusPass {
		recs = append(recs, "Improve SEO by adding meta tags and structured data")
	}
	if r.Checks.Accessibility.Status != StatusPass {
		recs = append(recs, "Improve accessibility with ARIA labels and alternative text")
	}
	if r.Checks.Security.Status != StatusPass {
		recs = append(recs, "Harden security by serving HTTPS and setting CSP and framing headers")
	}
	if r.Checks.CodeQuality.Status != StatusPass {
		recs = append(recs, "Improve code quality by fixing compiler errors and lint warnings")
	}
	if r.Checks.Responsiveness.Status != StatusPass {
		recs = append(recs, "Add a responsive viewport so the site works on phones and tablets")
	}
	r.Recommendations = recs
}

func (r *Report) Title() string {
	return fmt.Sprintf("Automated review: %d critical issues", r.Summary.CriticalIssues)
}

// Message lists the issues that matter most along with the score.
func (r *Report) Message() string {
	var b strings.Builder
	fmt.Fprintf(&b, "The automated review of %s found %d critical issues.\n", r.TargetURL, r.Summary.CriticalIssues)
	sections := []struct {
		name  string
		check CheckResult
	}{
		{"Performance", r.Checks.Performance},
		{"SEO", r.Checks.SEO},
		{"Security", r.Checks.Security},
	}
	for _, s := range sections {
		for _, issue := range s.check.Issues {
			fmt.Fprintf(&b, "- %s: %s\n", s.name, issue)
		}
	}
	fmt.Fprintf(&b, "\nScore: %d/100\n", r.Summary.Score)
	if len(r.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for _, rec := range r.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}
	return b.String()
}
