package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/iWorld-y/report_reviewer/app/reviewer/pkg/model"
)

// ExcerptSeparator 多个附件摘录之间的分隔线
const ExcerptSeparator = "\n\n---\n\n"

const notProvided = "Not provided"

// JoinExcerpts 把单个附件摘录拼成一个带分隔线的整体块
func JoinExcerpts(excerpts []string) string {
	return strings.Join(excerpts, ExcerptSeparator)
}

// Build 组装评审提示词。纯函数，输入相同则输出相同。
// attachmentBlock 为已经拼好的附件摘录块，可为空
func Build(in *model.ReportInput, attachmentBlock string) string {
	var sb strings.Builder

	sb.WriteString("You are reviewing a field report submitted to an NGO project management system.\n\n")

	sb.WriteString("PROJECT CONTEXT:\n")
	fmt.Fprintf(&sb, "Project Name: %s\n", in.ProjectName)
	fmt.Fprintf(&sb, "Project Description: %s\n", orDefault(in.ProjectDescription))
	fmt.Fprintf(&sb, "Project Goals: %s\n", orDefault(in.ProjectGoals))
	fmt.Fprintf(&sb, "Project Budget: %s\n", formatBudget(in.ProjectBudget))
	fmt.Fprintf(&sb, "Project Status: %s\n\n", orDefault(in.ProjectStatus))

	fmt.Fprintf(&sb, "REPORT TITLE: %s\n\n", in.Title)
	fmt.Fprintf(&sb, "REPORT CONTENT:\n%s\n\n", in.Content)

	if strings.TrimSpace(attachmentBlock) == "" {
		sb.WriteString("ATTACHMENTS: None provided\n\n")
	} else {
		fmt.Fprintf(&sb, "ATTACHMENTS:\n%s\n\n", attachmentBlock)
	}

	// 可选字段缺省时写明 Not provided，保证评审者看到固定形状的文档
	if in.Progress > 0 {
		fmt.Fprintf(&sb, "Reported Progress: %d%%\n", in.Progress)
	} else {
		sb.WriteString("Reported Progress: Not provided\n")
	}
	fmt.Fprintf(&sb, "Challenges Faced: %s\n", orDefault(in.ChallengesFaced))
	fmt.Fprintf(&sb, "Next Steps: %s\n", orDefault(in.NextSteps))
	fmt.Fprintf(&sb, "Budget Notes: %s\n\n", orDefault(in.BudgetNotes))

	sb.WriteString(`Evaluate the report against these criteria:
1. Clarity: is the narrative easy to follow and unambiguous?
2. Completeness: are all expected reporting elements present?
3. Specificity: does it give concrete numbers, dates and locations?
4. Evidence: are claims supported by data or attached material?
5. Alignment: does reported work match the project goals?
6. Actionability: are next steps concrete and assignable?
7. Impact: does it convey outcomes for beneficiaries?
8. Professional Standards: tone, structure and presentation quality.

Take the presence or absence of supporting attachments into account when
assessing evidence and completeness.

Respond with valid JSON in exactly this format:
{
  "overallScore": <integer 0-100>,
  "readinessLevel": "<needs-major-improvements | needs-minor-improvements | good | excellent>",
  "overallFeedback": "<2-3 sentence summary>",
  "sectionAnalysis": [
    {
      "section": "<section name>",
      "score": <integer 0-100>,
      "issues": ["<issue>"],
      "suggestions": ["<suggestion>"]
    }
  ],
  "strengthsIdentified": ["<strength>"],
  "priorityImprovements": ["<improvement>"]
}
`)

	return sb.String()
}

func orDefault(s string) string {
	if strings.TrimSpace(s) == "" {
		return notProvided
	}
	return s
}

// formatBudget 金额格式化为美元货币，带千分位
func formatBudget(budget float64) string {
	if budget <= 0 {
		return notProvided
	}
	whole := strconv.FormatFloat(budget, 'f', 0, 64)
	var sb strings.Builder
	for i, ch := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(ch)
	}
	return "$" + sb.String()
}
