package data

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/report_reviewer/app/portal/internal/biz"
	dm "github.com/iWorld-y/report_reviewer/app/reviewer/pkg/model"
)

type analysisRepo struct {
	data *Data
	log  *log.Helper
}

func NewAnalysisRepo(data *Data, logger log.Logger) biz.AnalysisRepo {
	return &analysisRepo{
		data: data,
		log:  log.NewHelper(logger),
	}
}

func (r *analysisRepo) SaveAnalysis(ctx context.Context, title, project string, analysis *dm.ReportAnalysis) (int, error) {
	// 嵌套结构序列化为 JSON 文本列存储
	sections, err := json.Marshal(analysis.SectionAnalysis)
	if err != nil {
		return 0, err
	}
	strengths, err := json.Marshal(analysis.StrengthsIdentified)
	if err != nil {
		return 0, err
	}
	improvements, err := json.Marshal(analysis.PriorityImprovements)
	if err != nil {
		return 0, err
	}

	var id int
	err = r.data.db.QueryRowContext(ctx, `
		INSERT INTO report_analyses
			(report_title, project_name, overall_score, readiness_level,
			 overall_feedback, section_analysis, strengths, improvements)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		title, project, analysis.OverallScore, analysis.ReadinessLevel,
		analysis.OverallFeedback, string(sections), string(strengths), string(improvements),
	).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *analysisRepo) ListAnalyses(ctx context.Context, page, pageSize int) ([]*biz.AnalysisSummary, int, error) {
	offset := (page - 1) * pageSize

	rows, err := r.data.db.QueryContext(ctx, `
		SELECT id, report_title, project_name, overall_score, readiness_level, created_at
		FROM report_analyses
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var summaries []*biz.AnalysisSummary
	for rows.Next() {
		var s biz.AnalysisSummary
		var createdAt time.Time
		if err := rows.Scan(&s.ID, &s.ReportTitle, &s.ProjectName,
			&s.OverallScore, &s.ReadinessLevel, &createdAt); err != nil {
			return nil, 0, err
		}
		s.CreatedAt = createdAt.Format("2006-01-02 15:04:05")
		summaries = append(summaries, &s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	var total int
	if err := r.data.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM report_analyses`).Scan(&total); err != nil {
		return nil, 0, err
	}

	return summaries, total, nil
}

func (r *analysisRepo) GetAnalysis(ctx context.Context, id int) (*biz.StoredAnalysis, error) {
	var (
		stored       biz.StoredAnalysis
		analysis     dm.ReportAnalysis
		sections     string
		strengths    string
		improvements string
		createdAt    time.Time
	)
	err := r.data.db.QueryRowContext(ctx, `
		SELECT id, report_title, project_name, overall_score, readiness_level,
		       overall_feedback, section_analysis, strengths, improvements, created_at
		FROM report_analyses WHERE id = $1`, id).
		Scan(&stored.ID, &stored.ReportTitle, &stored.ProjectName,
			&analysis.OverallScore, &analysis.ReadinessLevel, &analysis.OverallFeedback,
			&sections, &strengths, &improvements, &createdAt)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("ANALYSIS_NOT_FOUND", "analysis not found")
	}
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(sections), &analysis.SectionAnalysis); err != nil {
		r.log.Warnf("损坏的 section_analysis 列 [id=%d]: %v", id, err)
		analysis.SectionAnalysis = []dm.SectionAnalysis{}
	}
	if err := json.Unmarshal([]byte(strengths), &analysis.StrengthsIdentified); err != nil {
		analysis.StrengthsIdentified = []string{}
	}
	if err := json.Unmarshal([]byte(improvements), &analysis.PriorityImprovements); err != nil {
		analysis.PriorityImprovements = []string{}
	}

	stored.Analysis = &analysis
	stored.CreatedAt = createdAt.Format("2006-01-02 15:04:05")
	return &stored, nil
}
