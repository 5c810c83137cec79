package analyzer

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino-ext/components/model/openai"
	protocol "github.com/cloudwego/eino-ext/libs/acl/openai"
	einomodel "github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"
	"golang.org/x/time/rate"

	"github.com/iWorld-y/report_reviewer/app/reviewer/pkg/config"
	"github.com/iWorld-y/report_reviewer/app/reviewer/pkg/extract"
	dm "github.com/iWorld-y/report_reviewer/app/reviewer/pkg/model"
	"github.com/iWorld-y/report_reviewer/app/reviewer/pkg/prompt"
)

// 评审参数固定，不随调用方配置：低温度保证打分稳定，
// 输出 schema 紧凑所以限制输出长度
const (
	temperature = float32(0.3)
	maxTokens   = 2000

	systemPrompt = "You are an expert NGO project management consultant. " +
		"Always respond with valid JSON in the exact format requested."
)

// AnalysisError 上游分析服务调用失败，携带原始错误
type AnalysisError struct {
	Err error
}

func (e *AnalysisError) Error() string {
	return fmt.Sprintf("Failed to analyze report: %v", e.Err)
}

func (e *AnalysisError) Unwrap() error { return e.Err }

// Analyzer 报告评审流水线：附件提取 → 提示词组装 → LLM 调用 → 归一化
type Analyzer struct {
	chatModel einomodel.BaseChatModel
	extractor *extract.Extractor
	limiter   *rate.Limiter
}

// New 创建评审器。API 凭证缺失视为致命配置错误，立即失败
// 而不是推迟到请求时才暴露
func New(ctx context.Context, cfg *config.Config) (*Analyzer, error) {
	if cfg.LLM.APIKey == "" {
		return nil, fmt.Errorf("llm api key is not configured")
	}

	temp := temperature
	tokens := maxTokens
	chatModel, err := openai.NewChatModel(ctx, &openai.ChatModelConfig{
		BaseURL:     cfg.LLM.BaseURL,
		APIKey:      cfg.LLM.APIKey,
		Model:       cfg.LLM.Model,
		Temperature: &temp,
		MaxTokens:   &tokens,
		ResponseFormat: &protocol.ChatCompletionResponseFormat{
			Type: protocol.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("LLM 初始化失败: %w", err)
	}

	rpm := cfg.Concurrency.RPM
	if rpm <= 0 {
		rpm = 60
	}
	qps := cfg.Concurrency.QPS
	if qps <= 0 {
		qps = 1
	}
	limiter := rate.NewLimiter(rate.Limit(float64(rpm)/60.0), qps)

	return &Analyzer{
		chatModel: chatModel,
		extractor: extract.New(cfg.UploadsDir),
		limiter:   limiter,
	}, nil
}

// NewWithModel 注入现成的 ChatModel，测试时无需真实凭证
func NewWithModel(chatModel einomodel.BaseChatModel, extractor *extract.Extractor, limiter *rate.Limiter) *Analyzer {
	if limiter == nil {
		limiter = rate.NewLimiter(rate.Inf, 1)
	}
	return &Analyzer{chatModel: chatModel, extractor: extractor, limiter: limiter}
}

// Analyze 执行一次完整评审。每次调用相互独立，无共享可变状态；
// 失败时返回 AnalysisError，调用方可以放弃 AI 反馈继续提交报告
func (a *Analyzer) Analyze(ctx context.Context, in *dm.ReportInput) (*dm.ReportAnalysis, error) {
	block := in.AttachmentContents
	if block == "" && in.HasAttachments && len(in.AttachmentPaths) > 0 {
		if len(in.AttachmentTypes) != len(in.AttachmentPaths) {
			return nil, fmt.Errorf("attachment paths and types must have equal length: %d != %d",
				len(in.AttachmentPaths), len(in.AttachmentTypes))
		}
		excerpts := a.extractor.ExtractAll(in.AttachmentPaths, in.AttachmentTypes)
		block = prompt.JoinExcerpts(excerpts)
	}

	userPrompt := prompt.Build(in, block)

	if err := a.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	messages := []*schema.Message{
		{Role: schema.System, Content: systemPrompt},
		{Role: schema.User, Content: userPrompt},
	}

	resp, err := a.chatModel.Generate(ctx, messages)
	if err != nil {
		return nil, &AnalysisError{Err: err}
	}

	raw, err := decodeRaw(resp.Content)
	if err != nil {
		return nil, &AnalysisError{Err: err}
	}

	return Normalize(raw), nil
}
