package server

import (
	"context"
	"fmt"

	"github.com/go-kratos/kratos/v2/log"

	"github.com/iWorld-y/report_reviewer/app/portal/internal/biz"
	"github.com/iWorld-y/report_reviewer/app/portal/internal/conf"
	"github.com/iWorld-y/report_reviewer/app/reviewer/pkg/analyzer"
	"github.com/iWorld-y/report_reviewer/app/reviewer/pkg/config"
	rvLogger "github.com/iWorld-y/report_reviewer/app/reviewer/pkg/logger"
)

// NewReviewerEngine 从 portal 配置初始化评审流水线引擎
func NewReviewerEngine(c *conf.Reviewer, logger log.Logger) (biz.ReportEngine, func(), error) {
	if c == nil || c.Llm == nil {
		return nil, nil, fmt.Errorf("reviewer llm config is required")
	}

	// 将 internal/conf.Reviewer 转换为 pkg/config.Config
	rvCfg := &config.Config{
		LLM: config.LLMConfig{
			BaseURL: c.Llm.BaseUrl,
			APIKey:  c.Llm.ApiKey,
			Model:   c.Llm.Model,
		},
		UploadsDir: c.UploadsDir,
	}
	if c.Log != nil {
		rvCfg.Log = config.LogConfig{Level: c.Log.Level, File: c.Log.File}
	}
	if c.Concurrency != nil {
		rvCfg.Concurrency = config.ConcurrencyConfig{
			QPS: int(c.Concurrency.Qps),
			RPM: int(c.Concurrency.Rpm),
		}
	}

	// 初始化流水线日志
	if err := rvLogger.Init(rvCfg.Log.Level, rvCfg.Log.File); err != nil {
		log.NewHelper(logger).Errorf("Failed to init reviewer logger: %v", err)
		_ = rvLogger.Init("info", "") // 降级处理
	}

	// 初始化评审引擎，凭证缺失在启动时立即失败
	eng, err := analyzer.New(context.Background(), rvCfg)
	if err != nil {
		log.NewHelper(logger).Errorf("Failed to init reviewer engine: %v", err)
		return nil, nil, err
	}

	cleanup := func() {
		log.NewHelper(logger).Info("Cleaning up reviewer engine")
	}

	return eng, cleanup, nil
}
