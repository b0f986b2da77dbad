package review

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const goodPage = `<!doctype html>
<html lang="en">
<head>
  <title>Autopost</title>
  <meta name="description" content="Scheduled social posts">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <meta property="og:title" content="Autopost">
  <meta property="og:description" content="Scheduled social posts">
  <script type="application/ld+json">{"@type":"WebSite"}</script>
</head>
<body>
  <h1>Autopost</h1>
  <img src="/logo.png" alt="logo">
  <label for="email">Email</label><input id="email" type="email">
  <button>Send</button>
</body>
</html>`

const badPage = `<html><body><img src="a.png"><input id="x"><button></button></body></html>`

func serve(t *testing.T, body string, secure bool) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if secure {
			w.Header().Set("Content-Security-Policy", "default-src 'self'; frame-ancestors 'none'")
			w.Header().Set("X-Content-Type-Options", "nosniff")
		}
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunOnWellFormedPage(t *testing.T) {
	srv := serve(t, goodPage, true)

	report, state, err := New().Run(context.Background(), Input{TargetURL: srv.URL})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	for name, c := range map[string]CheckResult{
		"performance":    report.Checks.Performance,
		"seo":            report.Checks.SEO,
		"accessibility":  report.Checks.Accessibility,
		"responsiveness": report.Checks.Responsiveness,
		"code quality":   report.Checks.CodeQuality,
	} {
		if c.Status != StatusPass {
			t.Errorf("%s = %s, issues %v", name, c.Status, c.Issues)
		}
	}
	// Plain http is the only security finding.
	if report.Checks.Security.Status != StatusWarning || len(report.Checks.Security.Issues) != 1 {
		t.Errorf("security = %+v", report.Checks.Security)
	}
	if report.Summary.Score != 95 || report.Summary.CriticalIssues != 0 {
		t.Errorf("summary = %+v", report.Summary)
	}
	if state.Runs != 1 || state.LastReport != report {
		t.Errorf("state = %+v", state)
	}
}

func TestRunOnBrokenPage(t *testing.T) {
	srv := serve(t, badPage, false)

	prev := State{Runs: 3}
	report, state, err := New().Run(context.Background(), Input{TargetURL: srv.URL, PreviousState: prev})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if report.Checks.SEO.Status != StatusFail || len(report.Checks.SEO.Issues) != 5 {
		t.Errorf("seo = %+v", report.Checks.SEO)
	}
	if report.Checks.Accessibility.Status != StatusFail || len(report.Checks.Accessibility.Issues) != 4 {
		t.Errorf("accessibility = %+v", report.Checks.Accessibility)
	}
	if report.Checks.Security.Status != StatusFail {
		t.Errorf("security = %+v", report.Checks.Security)
	}
	if report.Checks.Responsiveness.Status != StatusFail {
		t.Errorf("responsiveness = %+v", report.Checks.Responsiveness)
	}
	if report.Summary.Score != 20 || report.Summary.CriticalIssues != 14 {
		t.Errorf("summary = %+v", report.Summary)
	}
	if len(report.Recommendations) != 4 {
		t.Errorf("recommendations = %v", report.Recommendations)
	}
	if state.Runs != 4 {
		t.Errorf("runs = %d", state.Runs)
	}
	if !strings.Contains(report.Message(), "Score: 20/100") {
		t.Errorf("message = %q", report.Message())
	}
}

func TestRunUnreachableKeepsState(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	target := srv.URL
	srv.Close()

	prev := State{Runs: 2}
	_, state, err := New().Run(context.Background(), Input{TargetURL: target, PreviousState: prev})
	if err == nil {
		t.Fatal("expected fetch error")
	}
	if state.Runs != 2 {
		t.Fatalf("state changed: %+v", state)
	}
}

func TestSummarizeFloorsScore(t *testing.T) {
	fail := CheckResult{Status: StatusFail, Issues: []string{"a", "b", "c"}}
	r := &Report{Checks: Checks{
		Performance: fail, SEO: fail, Accessibility: fail,
		Security: fail, CodeQuality: fail, Responsiveness: fail,
	}}
	Summarize(r)
	if r.Summary.Score != 0 || r.Summary.CriticalIssues != 18 || r.Summary.TotalIssues != 18 {
		t.Fatalf("summary = %+v", r.Summary)
	}
}

func TestCodeQualityThresholds(t *testing.T) {
	c := checkCodeQuality(&QualityMetrics{CompileErrors: 1, LintErrors: 6, UnusedVariables: 4, Complexity: 10})
	if c.Status != StatusFail || len(c.Issues) != 3 {
		t.Fatalf("check = %+v", c)
	}
	c = checkCodeQuality(&QualityMetrics{LintErrors: 5, UnusedVariables: 3, Complexity: 80})
	if c.Status != StatusPass {
		t.Fatalf("check = %+v", c)
	}
}
