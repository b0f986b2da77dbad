package review

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxLoadTime  = 3 * time.Second
	maxPageBytes = 2 << 20
)

// QualityMetrics come from an external build; the review cannot measure them.
type QualityMetrics struct {
	CompileErrors   int `json:"compile_errors"`
	LintErrors      int `json:"lint_errors"`
	UnusedVariables int `json:"unused_variables"`
	Complexity      int `json:"complexity"`
}

type page struct {
	url      *url.URL
	status   int
	header   http.Header
	size     int
	loadTime time.Duration
	doc      *goquery.Document
}

func checkPerformance(p *page) CheckResult {
	var issues []string
	if p.loadTime > maxLoadTime {
		issues = append(issues, fmt.Sprintf("page took %s to load, above 3s", p.loadTime.Round(time.Millisecond)))
	}
	if p.size > maxPageBytes {
		issues = append(issues, fmt.Sprintf("page weighs %d KB, above 2 MB", p.size/1024))
	}
	if p.status >= http.StatusBadRequest {
		issues = append(issues, fmt.Sprintf("page answered with status %d", p.status))
	}
	return CheckResult{
		Status: statusFor(issues, 2),
		Metrics: map[string]float64{
			"load_time_ms":  float64(p.loadTime.Milliseconds()),
			"content_bytes": float64(p.size),
		},
		Issues: issues,
	}
}

func metaContent(doc *goquery.Document, selector string) string {
	v, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(v)
}

func checkSEO(p *page) CheckResult {
	doc := p.doc
	checks := map[string]bool{
		"title_tag":         strings.TrimSpace(doc.Find("head title").First().Text()) != "",
		"meta_description":  metaContent(doc, `meta[name="description"]`) != "",
		"heading_structure": doc.Find("h1").Length() == 1,
		"open_graph_tags":   metaContent(doc, `meta[property="og:title"]`) != "" && metaContent(doc, `meta[property="og:description"]`) != "",
		"structured_data":   doc.Find(`script[type="application/ld+json"]`).Length() > 0,
	}

	var issues []string
	if !checks["title_tag"] {
		issues = append(issues, "page title is missing")
	}
	if !checks["meta_description"] {
		issues = append(issues, "meta description is missing")
	}
	if !checks["heading_structure"] {
		issues = append(issues, fmt.Sprintf("expected exactly one h1, found %d", doc.Find("h1").Length()))
	}
	if !checks["open_graph_tags"] {
		issues = append(issues, "Open Graph tags are missing")
	}
	if !checks["structured_data"] {
		issues = append(issues, "structured data is missing")
	}
	return CheckResult{Status: statusFor(issues, 3), Checks: checks, Issues: issues}
}

func checkAccessibility(p *page) CheckResult {
	doc := p.doc

	missingAlt := doc.Find("img").FilterFunction(func(_ int, s *goquery.Selection) bool {
		_, ok := s.Attr("alt")
		return !ok
	}).Length()

	labelled := make(map[string]bool)
	doc.Find("label[for]").Each(func(_ int, s *goquery.Selection) {
		id, _ := s.Attr("for")
		labelled[id] = true
	})
	unlabelled := doc.Find("input, select, textarea").FilterFunction(func(_ int, s *goquery.Selection) bool {
		switch t, _ := s.Attr("type"); t {
		case "hidden", "submit", "button", "reset", "image":
			return false
		}
		if _, ok := s.Attr("aria-label"); ok {
			return false
		}
		if id, ok := s.Attr("id"); ok && labelled[id] {
			return false
		}
		return s.ParentsFiltered("label").Length() == 0
	}).Length()

	unnamedButtons := doc.Find("button").FilterFunction(func(_ int, s *goquery.Selection) bool {
		_, aria := s.Attr("aria-label")
		return !aria && strings.TrimSpace(s.Text()) == ""
	}).Length()

	lang, _ := doc.Find("html").First().Attr("lang")

	checks := map[string]bool{
		"alt_text":      missingAlt == 0,
		"form_labels":   unlabelled == 0,
		"aria_labels":   unnamedButtons == 0,
		"document_lang": strings.TrimSpace(lang) != "",
	}

	var issues []string
	if missingAlt > 0 {
		issues = append(issues, fmt.Sprintf("%d images have no alternative text", missingAlt))
	}
	if unlabelled > 0 {
		issues = append(issues, fmt.Sprintf("%d form fields have no label", unlabelled))
	}
	if unnamedButtons > 0 {
		issues = append(issues, fmt.Sprintf("%d buttons have no accessible name", unnamedButtons))
	}
	if !checks["document_lang"] {
		issues = append(issues, "html element has no lang attribute")
	}
	return CheckResult{Status: statusFor(issues, 2), Checks: checks, Issues: issues}
}

func checkSecurity(p *page) CheckResult {
	csp := p.header.Get("Content-Security-Policy")
	https := p.url.Scheme == "https"
	checks := map[string]bool{
		"https":                   https,
		"csp":                     csp != "",
		"clickjacking_protection": p.header.Get("X-Frame-Options") != "" || strings.Contains(csp, "frame-ancestors"),
		"content_type_options":    strings.EqualFold(p.header.Get("X-Content-Type-Options"), "nosniff"),
		"hsts":                    !https || p.header.Get("Strict-Transport-Security") != "",
	}

	var issues []string
	if !checks["https"] {
		issues = append(issues, "site is not served over HTTPS")
	}
	if !checks["csp"] {
		issues = append(issues, "Content-Security-Policy header is missing")
	}
	if !checks["clickjacking_protection"] {
		issues = append(issues, "clickjacking protection is missing")
	}
	if !checks["content_type_options"] {
		issues = append(issues, "X-Content-Type-Options is not nosniff")
	}
	if !checks["hsts"] {
		issues = append(issues, "Strict-Transport-Security header is missing")
	}
	return CheckResult{Status: statusFor(issues, 2), Checks: checks, Issues: issues}
}

func checkCodeQuality(m *QualityMetrics) CheckResult {
	if m == nil {
		return CheckResult{Status: StatusPass}
	}

	var issues []string
	if m.CompileErrors > 0 {
		issues = append(issues, fmt.Sprintf("%d compile errors", m.CompileErrors))
	}
	if m.LintErrors > 5 {
		issues = append(issues, fmt.Sprintf("%d lint errors", m.LintErrors))
	}
	if m.UnusedVariables > 3 {
		issues = append(issues, fmt.Sprintf("%d unused variables", m.UnusedVariables))
	}
	if m.Complexity > 80 {
		issues = append(issues, "code complexity is too high")
	}
	return CheckResult{
		Status: statusFor(issues, 2),
		Metrics: map[string]float64{
			"compile_errors":   float64(m.CompileErrors),
			"lint_errors":      float64(m.LintErrors),
			"unused_variables": float64(m.UnusedVariables),
			"complexity":       float64(m.Complexity),
		},
		Issues: issues,
	}
}

// checkResponsiveness fails on any issue.
func checkResponsiveness(p *page) CheckResult {
	viewport := metaContent(p.doc, `meta[name="viewport"]`)
	responsive := strings.Contains(strings.ReplaceAll(viewport, " ", ""), "width=device-width")
	checks := map[string]bool{"mobile": responsive, "tablet": responsive, "desktop": true}

	var issues []string
	if !responsive {
		issues = append(issues, "no responsive viewport meta tag")
	}
	return CheckResult{Status: statusFor(issues, 0), Checks: checks, Issues: issues}
}
