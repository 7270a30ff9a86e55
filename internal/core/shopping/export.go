package shopping

import (
	"strings"
)

// DefaultListTitle 匯出清單的預設標題
const DefaultListTitle = "Shopping List"

const checklistItemPrefix = "- [ ] "

// Dedupe 去除重複項目（不分大小寫），保留首次出現的順序與大小寫
func Dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	result := make([]string, 0, len(items))

	for _, item := range items {
		key := strings.ToLower(strings.TrimSpace(item))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, item)
	}
	return result
}

// RenderText 匯出純文字清單，一行一個項目
func RenderText(items []string) string {
	return strings.Join(items, "\n")
}

// RenderChecklist 匯出 Markdown 勾選清單
// 第一行為標題，之後每個項目一行未勾選項
func RenderChecklist(title string, items []string) string {
	if title == "" {
		title = DefaultListTitle
	}

	var sb strings.Builder
	sb.WriteString("# ")
	sb.WriteString(title)
	sb.WriteString("\n\n")
	for _, item := range items {
		sb.WriteString(checklistItemPrefix)
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return sb.String()
}

// ParseChecklist 從 Markdown 勾選清單還原項目，與 RenderChecklist 互為逆操作
func ParseChecklist(data string) (title string, items []string) {
	items = []string{}
	for _, line := range strings.Split(data, "\n") {
		switch {
		case strings.HasPrefix(line, "# "):
			title = strings.TrimSpace(strings.TrimPrefix(line, "# "))
		case strings.HasPrefix(line, checklistItemPrefix):
			items = append(items, strings.TrimPrefix(line, checklistItemPrefix))
		}
	}
	return title, items
}
