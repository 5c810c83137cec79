package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-shiori/go-readability"
	"github.com/xuri/excelize/v2"
)

const (
	// textLimit 文本类摘录的字符预算
	textLimit = 5000
	// genericLimit 未知类型兜底读取的字符预算
	genericLimit = 3000
	// csvMaxRows CSV 只保留前若干行
	csvMaxRows = 50
	// excelMaxRows Excel 只保留首个工作表的前若干行
	excelMaxRows = 20

	linkFetchTimeout = 30 * time.Second
)

func readPDF(_ *Extractor, _, _ string) (string, error) {
	return "PDF file attached: text extraction is disabled, content was not analyzed", nil
}

func readImage(_ *Extractor, _, declared string) (string, error) {
	return fmt.Sprintf("Image file attached (%s): visual content is not analyzed", declared), nil
}

func readText(_ *Extractor, abs, _ string) (string, error) {
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", err
	}
	return "Text File Content:\n" + truncate(string(data), textLimit), nil
}

func readCSV(_ *Extractor, abs, _ string) (string, error) {
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", err
	}
	lines := strings.Split(string(data), "\n")
	if len(lines) > csvMaxRows {
		lines = lines[:csvMaxRows]
	}
	return "CSV File Content (first 50 rows):\n" + truncate(strings.Join(lines, "\n"), textLimit), nil
}

func readExcel(_ *Extractor, abs, _ string) (string, error) {
	f, err := excelize.OpenFile(abs)
	if err != nil {
		return "", err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}

	// 只取首个工作表，避免大工作簿撑爆提示词
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return "", err
	}
	if len(rows) > excelMaxRows {
		rows = rows[:excelMaxRows]
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Excel File Content (%d sheets):\n", len(sheets))
	fmt.Fprintf(&sb, "Sheet: %s\n", sheets[0])
	for _, row := range rows {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	return truncate(sb.String(), textLimit), nil
}

func readJSON(_ *Extractor, abs, _ string) (string, error) {
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", err
	}

	var v any
	if err := json.Unmarshal(data, &v); err == nil {
		if pretty, err := json.MarshalIndent(v, "", "  "); err == nil {
			return "JSON File Content:\n" + truncate(string(pretty), textLimit), nil
		}
	}
	// 解析失败时退回原始文本，依然有界
	return "JSON File Content:\n" + truncate(string(data), textLimit), nil
}

func readXML(_ *Extractor, abs, _ string) (string, error) {
	data, err := os.ReadFile(abs)
	if err != nil {
		return "", err
	}
	return "XML File Content:\n" + truncate(string(data), textLimit), nil
}

func readGeneric(_ *Extractor, abs, declared string) (string, error) {
	data, err := os.ReadFile(abs)
	if err != nil || !utf8.ValidString(string(data)) {
		return fmt.Sprintf("File attached (%s): binary content was not parsed", declared), nil
	}
	return "File Content:\n" + truncate(string(data), genericLimit), nil
}

// readLink 抓取链接附件的正文并清洗为纯文本，复用 readability
func readLink(_ *Extractor, url, _ string) (string, error) {
	article, err := readability.FromURL(url, linkFetchTimeout)
	if err != nil {
		return "", err
	}
	return "Linked Document Content:\n" + truncate(article.TextContent, textLimit), nil
}
