package orchestration

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/agbru/mathsolve/internal/answer"
	apperrors "github.com/agbru/mathsolve/internal/errors"
)

// recordingPresenter records which presentation hooks were called.
type recordingPresenter struct {
	answers, best int
}

func (p *recordingPresenter) PresentAnswers(answer.AggregateResult, []answer.ProviderResult, io.Writer) {
	p.answers++
}

func (p *recordingPresenter) PresentBestAnswer(answer.AggregateResult, PresentationOptions, io.Writer) {
	p.best++
}

func TestAnalyzeResults(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name           string
		results        []answer.ProviderResult
		opts           PresentationOptions
		expectedStatus int
		wantAnswers    int
		wantText       string
	}{
		{
			name: "some answered",
			results: []answer.ProviderResult{
				{Name: "A", Outcome: answer.Success, Text: "4"},
				{Name: "B", Outcome: answer.Failure},
			},
			expectedStatus: apperrors.ExitSuccess,
			wantAnswers:    1,
			wantText:       "1 of 2 providers answered",
		},
		{
			name: "none answered",
			results: []answer.ProviderResult{
				{Name: "A", Outcome: answer.Absent},
				{Name: "B", Outcome: answer.Success, Text: " "},
			},
			expectedStatus: apperrors.ExitErrorNoAnswer,
			wantAnswers:    1,
			wantText:       "No provider produced an answer",
		},
		{
			name: "quiet skips table",
			results: []answer.ProviderResult{
				{Name: "A", Outcome: answer.Success, Text: "4"},
			},
			opts:           PresentationOptions{Quiet: true},
			expectedStatus: apperrors.ExitSuccess,
			wantAnswers:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			p := &recordingPresenter{}
			status := AnalyzeResults(Report{Results: tt.results}, tt.opts, p, &buf)
			if status != tt.expectedStatus {
				t.Errorf("expected status %d, got %d", tt.expectedStatus, status)
			}
			if p.answers != tt.wantAnswers || p.best != 1 {
				t.Errorf("presenter calls = %d/%d", p.answers, p.best)
			}
			if tt.wantText != "" && !strings.Contains(buf.String(), tt.wantText) {
				t.Errorf("output %q missing %q", buf.String(), tt.wantText)
			}
		})
	}
}
