package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Extractor 附件内容提取器，把任意格式的附件转成有界的文本摘录
type Extractor struct {
	root string // 相对路径的解析根目录（上传目录）
}

// New 创建提取器，root 为空时默认使用工作目录下的 uploads
func New(root string) *Extractor {
	if root == "" {
		root = "uploads"
	}
	return &Extractor{root: root}
}

// strategy 一条类型分发规则：match 命中时由 read 处理
type strategy struct {
	match func(declared, path string) bool
	read  func(e *Extractor, abs, declared string) (string, error)
}

// 分发表按顺序匹配。csv/json/xml 必须排在纯文本之前，
// 因为 text/csv 等类型同样包含 "text" 子串。
// 链接附件不落盘，在进分发表之前单独处理
var strategies = []strategy{
	{matchType("pdf"), readPDF},
	{matchType("csv"), readCSV},
	{matchSpreadsheet, readExcel},
	{matchType("json"), readJSON},
	{matchType("xml"), readXML},
	{matchType("image"), readImage},
	{matchAnyType("text", "txt"), readText},
	{matchAll, readGeneric},
}

// Extract 按声明类型提取文件内容摘录。任何失败路径都返回描述性
// 占位文本而不是错误：单个不可读附件不能中断整次评审
func (e *Extractor) Extract(path, declaredType string) (result string) {
	defer func() {
		if r := recover(); r != nil {
			result = fmt.Sprintf("Error reading file: %s", path)
		}
	}()

	declared := strings.ToLower(declaredType)

	// 链接附件不落盘，先于文件存在性检查处理
	if matchLink(declared, path) {
		out, err := readLink(e, path, declared)
		if err != nil {
			return fmt.Sprintf("Linked document attached (%s): content could not be fetched", path)
		}
		return out
	}

	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(e.root, abs)
	}
	if _, err := os.Stat(abs); err != nil {
		return fmt.Sprintf("File not found: %s", path)
	}

	for _, s := range strategies {
		if !s.match(declared, path) {
			continue
		}
		out, err := s.read(e, abs, declared)
		if err != nil {
			return fmt.Sprintf("Error reading file: %s", path)
		}
		return out
	}
	return fmt.Sprintf("File attached (%s): content was not parsed", declaredType)
}

// ExtractAll 并发提取多个附件，摘录顺序与输入一致。
// paths 与 types 一一对应，单个失败不影响其余附件
func (e *Extractor) ExtractAll(paths, types []string) []string {
	excerpts := make([]string, len(paths))
	var wg sync.WaitGroup
	for i := range paths {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			declared := ""
			if i < len(types) {
				declared = types[i]
			}
			excerpts[i] = e.Extract(paths[i], declared)
		}(i)
	}
	wg.Wait()
	return excerpts
}

func matchType(sub string) func(declared, path string) bool {
	return func(declared, _ string) bool {
		return strings.Contains(declared, sub)
	}
}

func matchAnyType(subs ...string) func(declared, path string) bool {
	return func(declared, _ string) bool {
		for _, sub := range subs {
			if strings.Contains(declared, sub) {
				return true
			}
		}
		return false
	}
}

// matchSpreadsheet 声明类型或扩展名命中 Excel 系文件
func matchSpreadsheet(declared, path string) bool {
	if strings.Contains(declared, "excel") || strings.Contains(declared, "spreadsheet") {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".xlsx" || ext == ".xls"
}

func matchLink(declared, path string) bool {
	if strings.Contains(declared, "url") || strings.Contains(declared, "link") {
		return true
	}
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

func matchAll(_, _ string) bool { return true }

// truncate 按字符预算截断，保证送入提示词的每段摘录有界
func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit]
}
