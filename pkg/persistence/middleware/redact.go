package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/automata/pkg/domain"
	"github.com/aretw0/automata/pkg/ports"
)

// Mask replaces redacted content in stored reports.
const Mask = "***"

type redactMiddleware struct {
	next     ports.ReportStore
	patterns []*regexp.Regexp
}

// NewRedactMiddleware masks the contents of memories whose names match one of
// the patterns before a report is stored. A pattern matching "input" also masks
// the run input and every timeline's input tape. Outputs are kept.
func NewRedactMiddleware(patterns []string) (Middleware, error) {
	compiled := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, err
		}
		compiled[i] = re
	}
	return func(next ports.ReportStore) ports.ReportStore {
		return &redactMiddleware{next: next, patterns: compiled}
	}, nil
}

func (m *redactMiddleware) Save(ctx context.Context, report *domain.RunReport) error {
	// The caller keeps its own report untouched.
	cloned := *report
	maskInput := m.matches(domain.InputMemory)
	if maskInput {
		cloned.Input = Mask
	}

	cloned.Timelines = make([]domain.TimelineSnapshot, len(report.Timelines))
	for i, tl := range report.Timelines {
		cloned.Timelines[i] = m.mask(tl, maskInput)
	}
	if report.Accepted != nil {
		acc := m.mask(*report.Accepted, maskInput)
		cloned.Accepted = &acc
	}

	return m.next.Save(ctx, &cloned)
}

func (m *redactMiddleware) Load(ctx context.Context, id string) (*domain.RunReport, error) {
	return m.next.Load(ctx, id)
}

func (m *redactMiddleware) Delete(ctx context.Context, id string) error {
	return m.next.Delete(ctx, id)
}

func (m *redactMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func (m *redactMiddleware) mask(tl domain.TimelineSnapshot, maskInput bool) domain.TimelineSnapshot {
	if maskInput {
		tl.Input = Mask
	}
	if tl.Memories == nil {
		return tl
	}
	mems := make(map[string]string, len(tl.Memories))
	for name, content := range tl.Memories {
		if m.matches(name) {
			content = Mask
		}
		mems[name] = content
	}
	tl.Memories = mems
	return tl
}

func (m *redactMiddleware) matches(name string) bool {
	for _, p := range m.patterns {
		if p.MatchString(name) {
			return true
		}
	}
	return false
}
