package review

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/go-resty/resty/v2"
)

type Input struct {
	TargetURL     string
	Quality       *QualityMetrics
	PreviousState State
}

type Reviewer struct {
	http *resty.Client
	now  func() time.Time
}

func New() *Reviewer {
	return &Reviewer{
		http: resty.New().SetTimeout(30 * time.Second).SetRedirectPolicy(resty.FlexibleRedirectPolicy(5)),
		now:  time.Now,
	}
}

func (r *Reviewer) fetch(ctx context.Context, target string) (*page, error) {
	resp, err := r.http.R().SetContext(ctx).SetHeader("Accept", "text/html").Get(target)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", target, err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(resp.Body()))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", target, err)
	}

	final, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	if resp.RawResponse != nil && resp.RawResponse.Request != nil && resp.RawResponse.Request.URL != nil {
		final = resp.RawResponse.Request.URL
	}

	return &page{
		url:      final,
		status:   resp.StatusCode(),
		header:   resp.Header(),
		size:     len(resp.Body()),
		loadTime: resp.Time(),
		doc:      doc,
	}, nil
}

// Run reviews the target once and returns the report with the next state.
// A target that cannot be fetched yields an error and the previous state.
func (r *Reviewer) Run(ctx context.Context, in Input) (*Report, State, error) {
	if in.TargetURL == "" {
		return nil, in.PreviousState, fmt.Errorf("review target is not configured")
	}

	p, err := r.fetch(ctx, in.TargetURL)
	if err != nil {
		return nil, in.PreviousState, err
	}

	report := &Report{
		Timestamp: r.now(),
		TargetURL: in.TargetURL,
		Checks: Checks{
			Performance:    checkPerformance(p),
			SEO:            checkSEO(p),
			Accessibility:  checkAccessibility(p),
			Security:       checkSecurity(p),
			CodeQuality:    checkCodeQuality(in.Quality),
			Responsiveness: checkResponsiveness(p),
		},
	}
	Summarize(report)
	Recommend(report)

	slog.Info("site review finished", "target", in.TargetURL, "score", report.Summary.Score,
		"critical", report.Summary.CriticalIssues)

	return report, State{LastReport: report, Runs: in.PreviousState.Runs + 1}, nil
}
