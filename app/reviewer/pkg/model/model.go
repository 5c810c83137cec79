package model

// ReadinessLevel 报告成熟度等级，四个固定取值
const (
	ReadinessNeedsMajor = "needs-major-improvements"
	ReadinessNeedsMinor = "needs-minor-improvements"
	ReadinessGood       = "good"
	ReadinessExcellent  = "excellent"
)

// ReadinessLevels 所有合法等级，校验时使用
var ReadinessLevels = []string{
	ReadinessNeedsMajor,
	ReadinessNeedsMinor,
	ReadinessGood,
	ReadinessExcellent,
}

// ReportInput 一次评审请求的输入，由上层（报告提交流程）构造
type ReportInput struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	ProjectName string `json:"projectName"`

	ProjectDescription string  `json:"projectDescription,omitempty"`
	ProjectGoals       string  `json:"projectGoals,omitempty"`
	ProjectBudget      float64 `json:"projectBudget,omitempty"`
	ProjectStatus      string  `json:"projectStatus,omitempty"`
	Progress           int     `json:"progress,omitempty"` // 0-100
	ChallengesFaced    string  `json:"challengesFaced,omitempty"`
	NextSteps          string  `json:"nextSteps,omitempty"`
	BudgetNotes        string  `json:"budgetNotes,omitempty"`

	HasAttachments  bool     `json:"hasAttachments,omitempty"`
	AttachmentCount int      `json:"attachmentCount,omitempty"`
	AttachmentTypes []string `json:"attachmentTypes,omitempty"`
	AttachmentPaths []string `json:"attachmentPaths,omitempty"`
	// AttachmentContents 预先提取好的附件内容，非空时跳过文件提取
	AttachmentContents string `json:"attachmentContents,omitempty"`
}

// SectionAnalysis 单个章节的评审结果
type SectionAnalysis struct {
	Section     string   `json:"section"`
	Score       int      `json:"score"` // 0-100
	Issues      []string `json:"issues"`
	Suggestions []string `json:"suggestions"`
}

// ReportAnalysis 评审结果，经过归一化后所有字段保证合法
type ReportAnalysis struct {
	OverallScore         int               `json:"overallScore"` // 0-100
	ReadinessLevel       string            `json:"readinessLevel"`
	OverallFeedback      string            `json:"overallFeedback"`
	SectionAnalysis      []SectionAnalysis `json:"sectionAnalysis"`
	StrengthsIdentified  []string          `json:"strengthsIdentified"`
	PriorityImprovements []string          `json:"priorityImprovements"`
}
