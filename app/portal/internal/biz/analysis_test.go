package biz

import (
	"context"
	"fmt"
	"testing"

	"github.com/go-kratos/kratos/v2/log"

	dm "github.com/iWorld-y/report_reviewer/app/reviewer/pkg/model"
)

// mockAnalysisRepo 模拟评审记录仓库
type mockAnalysisRepo struct {
	saveErr error
	saved   *dm.ReportAnalysis
}

func (m *mockAnalysisRepo) SaveAnalysis(ctx context.Context, title, project string, analysis *dm.ReportAnalysis) (int, error) {
	if m.saveErr != nil {
		return 0, m.saveErr
	}
	m.saved = analysis
	return 7, nil
}

func (m *mockAnalysisRepo) ListAnalyses(ctx context.Context, page, pageSize int) ([]*AnalysisSummary, int, error) {
	return []*AnalysisSummary{{ID: 1, ReportTitle: "Test Report"}}, 1, nil
}

func (m *mockAnalysisRepo) GetAnalysis(ctx context.Context, id int) (*StoredAnalysis, error) {
	return &StoredAnalysis{ID: id}, nil
}

// mockEngine 模拟评审引擎
type mockEngine struct {
	result *dm.ReportAnalysis
	err    error
}

func (m *mockEngine) Analyze(ctx context.Context, in *dm.ReportInput) (*dm.ReportAnalysis, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.result, nil
}

func TestAnalysisUseCase_Review(t *testing.T) {
	repo := &mockAnalysisRepo{}
	engine := &mockEngine{result: &dm.ReportAnalysis{OverallScore: 80, ReadinessLevel: "good"}}
	uc := NewAnalysisUseCase(repo, engine, log.DefaultLogger)

	id, analysis, err := uc.Review(context.Background(), &dm.ReportInput{Title: "T", Content: "C", ProjectName: "P"})
	if err != nil {
		t.Errorf("Review() error = %v", err)
		return
	}
	if id != 7 {
		t.Errorf("Review() id = %v, want 7", id)
	}
	if analysis.OverallScore != 80 {
		t.Errorf("Review() analysis = %+v", analysis)
	}
	if repo.saved != analysis {
		t.Errorf("Review() did not persist the analysis")
	}
}

func TestAnalysisUseCase_ReviewEngineFailure(t *testing.T) {
	repo := &mockAnalysisRepo{}
	engine := &mockEngine{err: fmt.Errorf("Failed to analyze report: upstream down")}
	uc := NewAnalysisUseCase(repo, engine, log.DefaultLogger)

	_, _, err := uc.Review(context.Background(), &dm.ReportInput{Title: "T"})
	if err == nil {
		t.Errorf("Review() expected engine error to surface")
	}
	if repo.saved != nil {
		t.Errorf("Review() persisted a result despite engine failure")
	}
}

func TestAnalysisUseCase_ReviewSaveFailureKeepsAnalysis(t *testing.T) {
	// 持久化失败不丢弃已经拿到的评审结果
	repo := &mockAnalysisRepo{saveErr: fmt.Errorf("db down")}
	engine := &mockEngine{result: &dm.ReportAnalysis{OverallScore: 55}}
	uc := NewAnalysisUseCase(repo, engine, log.DefaultLogger)

	id, analysis, err := uc.Review(context.Background(), &dm.ReportInput{Title: "T"})
	if err != nil {
		t.Errorf("Review() error = %v", err)
	}
	if id != 0 || analysis == nil {
		t.Errorf("Review() = (%v, %+v), want id 0 with analysis kept", id, analysis)
	}
}

func TestAnalysisUseCase_List(t *testing.T) {
	repo := &mockAnalysisRepo{}
	uc := NewAnalysisUseCase(repo, &mockEngine{}, log.DefaultLogger)

	summaries, total, err := uc.List(context.Background(), 1, 10)
	if err != nil {
		t.Errorf("List() error = %v", err)
		return
	}
	if total != 1 {
		t.Errorf("List() total = %v, want 1", total)
	}
	if len(summaries) != 1 || summaries[0].ReportTitle != "Test Report" {
		t.Errorf("List() summaries = %v", summaries)
	}
}
