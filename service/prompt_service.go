package service

import (
	"fmt"
	"strings"
	"time"

	"github.com/tieubaoca/roskai-be/types"
)

// PromptService renders the prompts sent to the generation backend. The
// templates keep the Vietnamese persona of Rosk AI.
type PromptService struct {
	now func() time.Time
}

func NewPromptService() *PromptService {
	return &PromptService{now: time.Now}
}

const directPromptTemplate = `Bạn là Rosk AI, trợ lý trò chuyện thông minh và thân thiện.
Thông tin hiện tại: %s.
Bạn là phiên bản 1.0.0.
Trả lời tự nhiên, hữu ích, súc tích và chính xác nhất có thể dựa trên kiến thức của bạn.
Khi bạn cần biểu diễn các công thức toán học, hãy sử dụng cú pháp LaTeX.
Sử dụng $...$ cho công thức nội tuyến và $$...$$ cho các khối công thức riêng biệt.

Lịch sử trò chuyện:
%s%s
Người dùng: %s
Rosk AI:`

const analysisPromptTemplate = `Bạn là một trợ lý AI có khả năng phân tích sâu sắc.
Hãy phân tích yêu cầu sau của người dùng, liệt kê các điểm chính cần được giải quyết, các thông tin quan trọng cần được đưa vào, và lập kế hoạch chi tiết để tạo ra một câu trả lời hoàn chỉnh, chính xác, và dễ hiểu.
Đừng đưa ra câu trả lời cuối cùng, chỉ tập trung vào quá trình suy nghĩ và các yếu tố cần thiết.

Lịch sử trò chuyện:
%s%s
Yêu cầu của người dùng: "%s"
Phân tích và kế hoạch của bạn:`

const finalPromptTemplate = `Bạn là Rosk AI, một trợ lý thông minh và thân thiện.
Thông tin hiện tại: %s.
Bạn là phiên bản 1.0.0.
Dựa trên phân tích và kế hoạch nội bộ sau, hãy tạo ra câu trả lời hoàn chỉnh, tự nhiên, hữu ích, súc tích và chính xác nhất cho người dùng.
Khi bạn cần biểu diễn các công thức toán học, hãy sử dụng cú pháp LaTeX.
Sử dụng $...$ cho công thức nội tuyến và $$...$$ cho các khối công thức riêng biệt.
---
%s
---
Lịch sử trò chuyện:
%s%s
Yêu cầu của người dùng: "%s"
Rosk AI:`

// DirectPrompt is the single-shot prompt used when thinking mode is off.
func (s *PromptService) DirectPrompt(message string, window []types.Message, docs []types.ExtractedDocument) string {
	return fmt.Sprintf(directPromptTemplate,
		vietnameseDate(s.now()), renderHistory(window), renderFiles(docs), message)
}

// AnalysisPrompt is the first thinking-mode pass: an internal outline and
// plan, never shown to the user.
func (s *PromptService) AnalysisPrompt(message string, window []types.Message, docs []types.ExtractedDocument) string {
	return fmt.Sprintf(analysisPromptTemplate,
		renderHistory(window), renderFiles(docs), message)
}

// FinalPrompt is the second thinking-mode pass, carrying the analysis text
// of the first pass.
func (s *PromptService) FinalPrompt(analysis, message string, window []types.Message, docs []types.ExtractedDocument) string {
	return fmt.Sprintf(finalPromptTemplate,
		vietnameseDate(s.now()), analysis, renderHistory(window), renderFiles(docs), message)
}

// renderHistory renders each turn as "role: content" on its own line,
// chronological order, with a blank separator line. Empty window renders
// nothing.
func renderHistory(window []types.Message) string {
	if len(window) == 0 {
		return ""
	}
	var b strings.Builder
	for _, turn := range window {
		b.WriteString(turn.Role)
		b.WriteString(": ")
		b.WriteString(turn.Content)
		b.WriteByte('\n')
	}
	b.WriteByte('\n')
	return b.String()
}

// renderFiles renders each extracted document as a delimited block labeled
// with its source name. Failed extractions become a visible notice so the
// model can tell the user the file was unreadable.
func renderFiles(docs []types.ExtractedDocument) string {
	if len(docs) == 0 {
		return ""
	}
	blocks := make([]string, 0, len(docs))
	for _, doc := range docs {
		if doc.Err != nil {
			blocks = append(blocks, fmt.Sprintf(
				"--- Lỗi khi đọc file %s: %v. Rosk AI có thể không truy cập được hoặc file bị lỗi hoặc định dạng không chuẩn. ---",
				doc.SourceName, doc.Err))
			continue
		}
		blocks = append(blocks, fmt.Sprintf(
			"--- File: %s ---\n%s\n--- End File: %s ---",
			doc.SourceName, doc.Text, doc.SourceName))
	}
	return "\n\n**Dữ liệu từ file đã tải lên:**\n" + strings.Join(blocks, "\n\n") + "\n\n"
}

var vietnameseWeekdays = [...]string{
	"Chủ Nhật", "Thứ Hai", "Thứ Ba", "Thứ Tư", "Thứ Năm", "Thứ Sáu", "Thứ Bảy",
}

// vietnameseDate formats the date the way vi-VN long form does, e.g.
// "Thứ Năm, 28 tháng 8, 2026".
func vietnameseDate(t time.Time) string {
	return fmt.Sprintf("%s, %d tháng %d, %d",
		vietnameseWeekdays[t.Weekday()], t.Day(), int(t.Month()), t.Year())
}
