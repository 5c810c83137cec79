package service

import (
	"context"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/iWorld-y/report_reviewer/app/portal/internal/biz"
	"github.com/iWorld-y/report_reviewer/app/portal/internal/conf"
	dm "github.com/iWorld-y/report_reviewer/app/reviewer/pkg/model"
)

// ReviewService 评审服务的 HTTP 编排层
type ReviewService struct {
	uc         *biz.AnalysisUseCase
	uploadsDir string
	log        *log.Helper
}

func NewReviewService(uc *biz.AnalysisUseCase, rc *conf.Reviewer, logger log.Logger) *ReviewService {
	uploadsDir := "uploads"
	if rc != nil && rc.UploadsDir != "" {
		uploadsDir = rc.UploadsDir
	}
	return &ReviewService{
		uc:         uc,
		uploadsDir: uploadsDir,
		log:        log.NewHelper(logger),
	}
}

// AnalyzeReportReply 评审接口响应
type AnalyzeReportReply struct {
	ID       int                `json:"id"`
	Analysis *dm.ReportAnalysis `json:"analysis"`
}

// AnalyzeReport 执行一次报告评审并保存结果
func (s *ReviewService) AnalyzeReport(ctx context.Context, in *dm.ReportInput) (*AnalyzeReportReply, error) {
	id, analysis, err := s.uc.Review(ctx, in)
	if err != nil {
		return nil, err
	}
	return &AnalyzeReportReply{ID: id, Analysis: analysis}, nil
}

// UploadReply 附件上传响应
type UploadReply struct {
	Path string `json:"path"`
	Type string `json:"type"`
}

// UploadAttachment 保存上传的附件到上传目录，文件名使用 uuid
// 防止同名覆盖；返回的 path 可直接填入 ReportInput.AttachmentPaths
func (s *ReviewService) UploadAttachment(file multipart.File, header *multipart.FileHeader) (*UploadReply, error) {
	if err := os.MkdirAll(s.uploadsDir, 0o755); err != nil {
		return nil, err
	}

	name := uuid.NewString() + filepath.Ext(header.Filename)
	dst, err := os.Create(filepath.Join(s.uploadsDir, name))
	if err != nil {
		return nil, err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		return nil, err
	}

	declared := header.Header.Get("Content-Type")
	if declared == "" {
		declared = "application/octet-stream"
	}
	s.log.Infof("附件已保存: %s (%s)", name, declared)
	return &UploadReply{Path: name, Type: declared}, nil
}

// ListAnalysesReply 评审列表响应
type ListAnalysesReply struct {
	Analyses []*AnalysisSummary `json:"analyses"`
	Total    int                `json:"total"`
}

// AnalysisSummary 评审摘要
type AnalysisSummary struct {
	ID             int    `json:"id"`
	ReportTitle    string `json:"report_title"`
	ProjectName    string `json:"project_name"`
	OverallScore   int    `json:"overall_score"`
	ReadinessLevel string `json:"readiness_level"`
	CreatedAt      string `json:"created_at"`
}

// ListAnalyses 分页列出历史评审
func (s *ReviewService) ListAnalyses(ctx context.Context, page, pageSize int) (*ListAnalysesReply, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}

	summaries, total, err := s.uc.List(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}

	list := make([]*AnalysisSummary, 0, len(summaries))
	for _, r := range summaries {
		list = append(list, &AnalysisSummary{
			ID:             r.ID,
			ReportTitle:    r.ReportTitle,
			ProjectName:    r.ProjectName,
			OverallScore:   r.OverallScore,
			ReadinessLevel: r.ReadinessLevel,
			CreatedAt:      r.CreatedAt,
		})
	}
	return &ListAnalysesReply{Analyses: list, Total: total}, nil
}

// GetAnalysisReply 评审详情响应
type GetAnalysisReply struct {
	ID          int                `json:"id"`
	ReportTitle string             `json:"report_title"`
	ProjectName string             `json:"project_name"`
	Analysis    *dm.ReportAnalysis `json:"analysis"`
	CreatedAt   string             `json:"created_at"`
}

// GetAnalysis 获取单条评审详情
func (s *ReviewService) GetAnalysis(ctx context.Context, id int) (*GetAnalysisReply, error) {
	stored, err := s.uc.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return &GetAnalysisReply{
		ID:          stored.ID,
		ReportTitle: stored.ReportTitle,
		ProjectName: stored.ProjectName,
		Analysis:    stored.Analysis,
		CreatedAt:   stored.CreatedAt,
	}, nil
}
