package analyzer

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"

	"github.com/kaptinlin/jsonrepair"

	dm "github.com/iWorld-y/report_reviewer/app/reviewer/pkg/model"
)

const fallbackFeedback = "Analysis unavailable"

// decodeRaw 把模型返回的文本解析为宽松的 JSON 结构。
// 先剥掉可能出现的 markdown 代码围栏；直接解析失败时尝试
// jsonrepair 修复后重试，仍失败才报错
func decodeRaw(content string) (map[string]any, error) {
	clean := strings.TrimSpace(content)
	clean = strings.TrimPrefix(clean, "```json")
	clean = strings.TrimPrefix(clean, "```")
	clean = strings.TrimSuffix(clean, "```")
	clean = strings.TrimSpace(clean)

	var raw map[string]any
	err := json.Unmarshal([]byte(clean), &raw)
	if err == nil {
		return raw, nil
	}

	repaired, rerr := jsonrepair.JSONRepair(clean)
	if rerr != nil {
		return nil, err
	}
	if uerr := json.Unmarshal([]byte(repaired), &raw); uerr != nil {
		return nil, err
	}
	return raw, nil
}

// Normalize 把不可信的原始响应收敛成合法的 ReportAnalysis。
// 全函数：输入为 nil、类型错误或字段缺失时同样返回合法结果，
// 调用方永远不需要做空值或范围检查
func Normalize(raw any) *dm.ReportAnalysis {
	obj, _ := raw.(map[string]any)

	return &dm.ReportAnalysis{
		OverallScore:         clampScore(obj["overallScore"]),
		ReadinessLevel:       normalizeReadiness(obj["readinessLevel"]),
		OverallFeedback:      normalizeFeedback(obj["overallFeedback"]),
		SectionAnalysis:      normalizeSections(obj["sectionAnalysis"]),
		StrengthsIdentified:  stringSlice(obj["strengthsIdentified"]),
		PriorityImprovements: stringSlice(obj["priorityImprovements"]),
	}
}

// clampScore 把任意原始值收敛到 [0,100]；非数值一律按 0 处理
func clampScore(v any) int {
	f, ok := toNumber(v)
	if !ok || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	if f < 0 {
		return 0
	}
	if f > 100 {
		return 100
	}
	return int(f)
}

func toNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		return f, err == nil
	default:
		return 0, false
	}
}

func normalizeReadiness(v any) string {
	s, _ := v.(string)
	for _, level := range dm.ReadinessLevels {
		if s == level {
			return s
		}
	}
	return dm.ReadinessNeedsMajor
}

func normalizeFeedback(v any) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallbackFeedback
}

// normalizeSections 章节数组逐元素校验：score 走同样的收敛规则，
// 无法识别的元素直接丢弃
func normalizeSections(v any) []dm.SectionAnalysis {
	arr, ok := v.([]any)
	if !ok {
		return []dm.SectionAnalysis{}
	}
	sections := make([]dm.SectionAnalysis, 0, len(arr))
	for _, item := range arr {
		m, ok := item.(map[string]any)
		if !ok {
			continue
		}
		section, _ := m["section"].(string)
		sections = append(sections, dm.SectionAnalysis{
			Section:     section,
			Score:       clampScore(m["score"]),
			Issues:      stringSlice(m["issues"]),
			Suggestions: stringSlice(m["suggestions"]),
		})
	}
	return sections
}

// stringSlice 数组按元素取字符串，非数组一律返回空切片
func stringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return []string{}
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}
