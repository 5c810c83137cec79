package biz

import (
	"context"

	"github.com/go-kratos/kratos/v2/log"

	dm "github.com/iWorld-y/report_reviewer/app/reviewer/pkg/model"
)

// AnalysisSummary 评审记录摘要
type AnalysisSummary struct {
	ID             int
	ReportTitle    string
	ProjectName    string
	OverallScore   int
	ReadinessLevel string
	CreatedAt      string
}

// StoredAnalysis 持久化后的完整评审记录
type StoredAnalysis struct {
	ID          int
	ReportTitle string
	ProjectName string
	Analysis    *dm.ReportAnalysis
	CreatedAt   string
}

// AnalysisRepo 评审记录仓库接口
type AnalysisRepo interface {
	// SaveAnalysis 保存一次评审结果，返回记录ID
	SaveAnalysis(ctx context.Context, title, project string, analysis *dm.ReportAnalysis) (int, error)
	// ListAnalyses 分页获取评审摘要列表
	ListAnalyses(ctx context.Context, page, pageSize int) ([]*AnalysisSummary, int, error)
	// GetAnalysis 根据ID获取完整评审记录
	GetAnalysis(ctx context.Context, id int) (*StoredAnalysis, error)
}

// ReportEngine 评审引擎接口，由 reviewer 流水线实现
type ReportEngine interface {
	Analyze(ctx context.Context, in *dm.ReportInput) (*dm.ReportAnalysis, error)
}

// AnalysisUseCase 报告评审业务逻辑
type AnalysisUseCase struct {
	repo   AnalysisRepo
	engine ReportEngine
	log    *log.Helper
}

// NewAnalysisUseCase 创建评审业务逻辑实例
func NewAnalysisUseCase(repo AnalysisRepo, engine ReportEngine, logger log.Logger) *AnalysisUseCase {
	return &AnalysisUseCase{repo: repo, engine: engine, log: log.NewHelper(logger)}
}

// Review 执行一次评审并持久化结果。评审失败时错误原样返回，
// 报告本身的提交不受 AI 评审可用性影响；持久化失败只记日志，
// 不丢弃已经拿到的评审结果
func (uc *AnalysisUseCase) Review(ctx context.Context, in *dm.ReportInput) (int, *dm.ReportAnalysis, error) {
	analysis, err := uc.engine.Analyze(ctx, in)
	if err != nil {
		uc.log.Errorf("评审失败 [%s]: %v", in.Title, err)
		return 0, nil, err
	}

	id, err := uc.repo.SaveAnalysis(ctx, in.Title, in.ProjectName, analysis)
	if err != nil {
		uc.log.Errorf("保存评审结果失败 [%s]: %v", in.Title, err)
		return 0, analysis, nil
	}
	return id, analysis, nil
}

// List 分页列出评审摘要
func (uc *AnalysisUseCase) List(ctx context.Context, page, pageSize int) ([]*AnalysisSummary, int, error) {
	return uc.repo.ListAnalyses(ctx, page, pageSize)
}

// Get 根据ID获取评审记录
func (uc *AnalysisUseCase) Get(ctx context.Context, id int) (*StoredAnalysis, error) {
	return uc.repo.GetAnalysis(ctx, id)
}
