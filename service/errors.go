package service

import (
	"errors"
	"fmt"
)

// ErrEmptyResponse is returned when the backend answers 2xx but carries no
// candidate text. The orchestrator substitutes a fallback reply instead of
// failing the whole request.
var ErrEmptyResponse = errors.New("no response generated")

// ErrEmptyRequest rejects a chat request carrying neither a message nor files.
var ErrEmptyRequest = errors.New("empty chat request")

// TransportError wraps DNS/connection level failures on the way to the
// generation backend.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("generation transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// UpstreamError is a non-2xx answer from the generation backend.
type UpstreamError struct {
	StatusCode int
	Message    string // error message embedded in the response body, if any
	Body       string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("generation upstream status %d: %s", e.StatusCode, e.Message)
}

// Texts substituted when the backend returns an empty result.
const (
	FallbackReply    = "Rosk AI không thể tạo ra phản hồi lúc này."
	FallbackAnalysis = "Không thể tạo suy nghĩ nội bộ."
)

// EmptyRequestMessage is shown when a request has no message and no files.
const EmptyRequestMessage = "Tin nhắn không được để trống và không có file nào được tải lên."

// UserMessage translates a generation error into the Vietnamese string shown
// to the user. Internal detail stays in the logs.
func UserMessage(err error) string {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		switch {
		case upstream.StatusCode == 400:
			return "Rosk AI không thể xử lý yêu cầu này (có thể câu hỏi quá dài hoặc phức tạp). Vui lòng thử hỏi ngắn gọn hơn."
		case upstream.StatusCode == 401 || upstream.StatusCode == 403:
			return "Lỗi xác thực API Key. Vui lòng kiểm tra lại API key của bạn."
		case upstream.StatusCode == 429:
			return "Rosk AI đang quá tải. Vui lòng thử lại sau ít phút."
		case upstream.Message != "":
			return "Lỗi từ Rosk AI: " + upstream.Message
		default:
			return fmt.Sprintf("Có lỗi xảy ra từ Rosk AI: %v", err)
		}
	}
	return "Không thể kết nối đến dịch vụ của Rosk AI. Vui lòng kiểm tra kết nối mạng của bạn."
}
