package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/iWorld-y/report_reviewer/app/reviewer/pkg/analyzer"
	"github.com/iWorld-y/report_reviewer/app/reviewer/pkg/config"
	"github.com/iWorld-y/report_reviewer/app/reviewer/pkg/logger"
	dm "github.com/iWorld-y/report_reviewer/app/reviewer/pkg/model"
)

var (
	flagconf   string
	flagreport string
)

func init() {
	flag.StringVar(&flagconf, "conf", "configs/config.yaml", "config path, eg: -conf config.yaml")
	flag.StringVar(&flagreport, "report", "", "report input JSON path")
}

func main() {
	flag.Parse()

	// .env 仅用于本地开发注入 OPENAI_API_KEY，不存在时忽略
	_ = godotenv.Load()

	// 1. 加载配置
	cfg, err := config.LoadConfig(flagconf)
	if err != nil {
		log.Fatalf("无法加载配置文件: %v", err)
	}

	// 2. 初始化日志
	if err = logger.Init(cfg.Log.Level, cfg.Log.File); err != nil {
		log.Fatalf("无法初始化日志: %v", err)
	}
	logger.Log.Info("启动报告评审流水线...")

	if flagreport == "" {
		log.Fatal("未指定报告输入文件 (-report)")
	}

	data, err := os.ReadFile(flagreport)
	if err != nil {
		log.Fatalf("无法读取报告输入: %v", err)
	}
	var input dm.ReportInput
	if err := json.Unmarshal(data, &input); err != nil {
		log.Fatalf("报告输入不是合法 JSON: %v", err)
	}

	ctx := context.Background()

	// 3. 初始化评审器，凭证缺失在这里立即失败
	a, err := analyzer.New(ctx, cfg)
	if err != nil {
		log.Fatalf("无法初始化评审器: %v", err)
	}

	// 4. 执行评审
	result, err := a.Analyze(ctx, &input)
	if err != nil {
		logger.Log.Errorf("评审失败: %v", err)
		os.Exit(1)
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("无法序列化结果: %v", err)
	}
	fmt.Println(string(out))

	logger.Log.Infof("评审完成, 总分 %d (%s)", result.OverallScore, result.ReadinessLevel)
}
