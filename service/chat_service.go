package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tieubaoca/roskai-be/types"
	"go.uber.org/zap"
)

type ChatInput struct {
	Message      string
	ThinkingMode bool
	SessionID    string
	Files        []types.UploadedFile
}

type ChatResult struct {
	Reply     string
	SessionID string
}

// ChatService wires extraction, prompt composition, generation and history
// into one request pipeline.
type ChatService struct {
	ai         AIService
	extractor  *ExtractService
	prompts    *PromptService
	history    *ChatHistoryService
	window     int
	genTimeout time.Duration
	logger     *zap.Logger
}

func NewChatService(
	ai AIService,
	extractor *ExtractService,
	prompts *PromptService,
	history *ChatHistoryService,
	window int,
	genTimeout time.Duration,
	logger *zap.Logger,
) *ChatService {
	if window <= 0 {
		window = 6
	}
	return &ChatService{
		ai:         ai,
		extractor:  extractor,
		prompts:    prompts,
		history:    history,
		window:     window,
		genTimeout: genTimeout,
		logger:     logger,
	}
}

// Chat runs one chat exchange. On generation failure the session history is
// left untouched and the returned error carries the upstream detail;
// translate it with UserMessage before showing it to the user.
func (s *ChatService) Chat(ctx context.Context, in ChatInput) (*ChatResult, error) {
	if in.Message == "" && len(in.Files) == 0 {
		return nil, ErrEmptyRequest
	}
	sessionID := in.SessionID
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	docs := s.extractor.ExtractAll(in.Files)
	for _, doc := range docs {
		if doc.Err != nil {
			s.logger.Warn("file extraction failed",
				zap.String("file", doc.SourceName), zap.Error(doc.Err))
		}
	}
	window := s.history.RecentWindow(sessionID, s.window)

	var reply string
	if in.ThinkingMode {
		s.logger.Info("thinking mode on", zap.String("session_id", sessionID))
		analysis, err := s.generate(ctx, s.prompts.AnalysisPrompt(in.Message, window, docs))
		if errors.Is(err, ErrEmptyResponse) {
			analysis = FallbackAnalysis
		} else if err != nil {
			return nil, err
		}
		// The analysis only shapes the final pass, it never reaches the client.
		s.logger.Debug("internal analysis",
			zap.String("session_id", sessionID), zap.String("analysis", analysis))

		reply, err = s.generate(ctx, s.prompts.FinalPrompt(analysis, in.Message, window, docs))
		if errors.Is(err, ErrEmptyResponse) {
			reply = FallbackReply
		} else if err != nil {
			return nil, err
		}
	} else {
		var err error
		reply, err = s.generate(ctx, s.prompts.DirectPrompt(in.Message, window, docs))
		if errors.Is(err, ErrEmptyResponse) {
			reply = FallbackReply
		} else if err != nil {
			return nil, err
		}
	}

	s.history.Append(sessionID,
		types.Message{Role: types.RoleUser, Content: in.Message},
		types.Message{Role: types.RoleBot, Content: reply},
	)
	return &ChatResult{Reply: strings.TrimSpace(reply), SessionID: sessionID}, nil
}

func (s *ChatService) generate(ctx context.Context, prompt string) (string, error) {
	if s.genTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.genTimeout)
		defer cancel()
	}
	return s.ai.Generate(ctx, prompt)
}
