package handler

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/tieubaoca/roskai-be/service"
	"github.com/tieubaoca/roskai-be/types"
	"github.com/tieubaoca/roskai-be/utils"
	"go.uber.org/zap"
)

// maxRequestBody caps the whole multipart body. Individual files are capped
// separately at types.MaxUploadSize.
const maxRequestBody = 64 << 20

// memoryLimit is how much of the multipart body is kept in memory before
// spilling to temp files.
const memoryLimit = 32 << 20

type ChatHandler struct {
	chatService *service.ChatService
	logger      *zap.Logger
}

func NewChatHandler(chatService *service.ChatService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		chatService: chatService,
		logger:      logger,
	}
}

func (h *ChatHandler) HandleChat() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
		if err := r.ParseMultipartForm(memoryLimit); err != nil {
			writeError(w, http.StatusBadRequest, "Yêu cầu không hợp lệ.")
			return
		}

		message := r.FormValue("message")
		thinkingMode := r.FormValue("thinkingMode") == "true"
		sessionID := r.FormValue("session_id")

		var files []types.UploadedFile
		if r.MultipartForm != nil {
			for _, fh := range r.MultipartForm.File["files"] {
				file, errMsg := readUploadedFile(fh)
				if errMsg != "" {
					writeError(w, http.StatusBadRequest, errMsg)
					return
				}
				files = append(files, file)
			}
		}

		result, err := h.chatService.Chat(r.Context(), service.ChatInput{
			Message:      message,
			ThinkingMode: thinkingMode,
			SessionID:    sessionID,
			Files:        files,
		})
		if err != nil {
			if errors.Is(err, service.ErrEmptyRequest) {
				writeError(w, http.StatusBadRequest, service.EmptyRequestMessage)
				return
			}
			h.logger.Error("generation failed", zap.Error(err))
			writeError(w, http.StatusInternalServerError, service.UserMessage(err))
			return
		}

		writeJSON(w, http.StatusOK, types.ChatResponse{
			Response:  result.Reply,
			Sources:   []string{},
			SessionID: result.SessionID,
		})
	}
}

// readUploadedFile enforces the size limit and the type allow-list, then
// reads the part into memory. Returns a user-facing message on rejection.
func readUploadedFile(fh *multipart.FileHeader) (types.UploadedFile, string) {
	if fh.Size > types.MaxUploadSize {
		return types.UploadedFile{}, fmt.Sprintf("File %s vượt quá giới hạn 10MB.", fh.Filename)
	}
	if !utils.IsAllowedUpload(fh.Filename, fh.Header.Get("Content-Type")) {
		return types.UploadedFile{}, "Unsupported file type! Only .txt, .pdf, and .docx are allowed."
	}

	f, err := fh.Open()
	if err != nil {
		return types.UploadedFile{}, fmt.Sprintf("Không thể đọc file %s.", fh.Filename)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, types.MaxUploadSize))
	if err != nil {
		return types.UploadedFile{}, fmt.Sprintf("Không thể đọc file %s.", fh.Filename)
	}

	return types.UploadedFile{
		Name:     fh.Filename,
		MimeType: fh.Header.Get("Content-Type"),
		Data:     data,
	}, ""
}
