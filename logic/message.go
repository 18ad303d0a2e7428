package logic

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/abhinay-x/studymate-sub001/logger"
	"github.com/abhinay-x/studymate-sub001/models"
	"github.com/abhinay-x/studymate-sub001/pkg"
)

const (
	maxQuestionChars  = 2000
	defaultConfidence = 0.8
)

// AskResult is the outcome of one answered question
type AskResult struct {
	Message            *models.Message
	ProcessingTime     int64 // milliseconds
	RemainingQuestions int
}

// MessageLogic orchestrates the question-answering pipeline: quota gate,
// context retrieval, prompt composition, model invocation and durable
// recording of the exchange. It holds no state between calls beyond what is
// persisted.
type MessageLogic struct {
	users           UserStore
	convos          ConversationStore
	messages        MessageStore
	quota           *QuotaLedger
	retriever       *ContextRetriever
	generator       Generator
	log             *logger.Logger
	maxContextChars int
	retrievalLimit  int
	retryWaitCap    time.Duration
}

func NewMessageLogic(
	users UserStore,
	convos ConversationStore,
	messages MessageStore,
	quota *QuotaLedger,
	retriever *ContextRetriever,
	generator Generator,
	log *logger.Logger,
	maxContextChars int,
	retrievalLimit int,
	retryWaitCap time.Duration,
) *MessageLogic {
	if maxContextChars <= 0 {
		maxContextChars = 2000
	}
	if retrievalLimit <= 0 {
		retrievalLimit = 5
	}
	if retryWaitCap <= 0 {
		retryWaitCap = 5 * time.Second
	}
	return &MessageLogic{
		users:           users,
		convos:          convos,
		messages:        messages,
		quota:           quota,
		retriever:       retriever,
		generator:       generator,
		log:             log.With("logic", "message"),
		maxContextChars: maxContextChars,
		retrievalLimit:  retrievalLimit,
		retryWaitCap:    retryWaitCap,
	}
}

// Ask answers a question inside a conversation and records the exchange.
// Quota is charged only after a successful answer: a request that passes the
// gate but fails generation costs the user nothing.
func (l *MessageLogic) Ask(ctx context.Context, conversationID, userID uuid.UUID, question string) (*AskResult, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return nil, &ValidationError{Message: "question is required"}
	}
	if len(question) > maxQuestionChars {
		return nil, &ValidationError{Message: "question cannot exceed 2000 characters"}
	}

	start := time.Now()

	user, err := l.users.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "user"}
		}
		return nil, &PersistenceError{Op: "load user", Err: err}
	}

	ok, err := l.quota.CanAsk(user)
	if err != nil {
		return nil, &PersistenceError{Op: "reset daily quota", Err: err}
	}
	if !ok {
		return nil, &QuotaExceededError{Limit: l.quota.DailyLimit()}
	}

	convo, err := l.convos.GetActiveConversation(conversationID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "conversation"}
		}
		return nil, &PersistenceError{Op: "load conversation", Err: err}
	}

	documentIDs := make([]uuid.UUID, 0, len(convo.Documents))
	for _, doc := range convo.Documents {
		documentIDs = append(documentIDs, doc.ID)
	}

	chunks, err := l.retriever.Retrieve(documentIDs, question, l.retrievalLimit)
	if err != nil {
		return nil, &PersistenceError{Op: "search chunks", Err: err}
	}

	prompt := ComposePrompt(chunks, question, l.maxContextChars)

	result, err := l.generate(ctx, prompt)
	if err != nil {
		return nil, err
	}

	referencedChunks := make([]string, 0, len(chunks))
	for _, chunk := range chunks {
		referencedChunks = append(referencedChunks, chunk.ID.String())
	}

	msg := &models.Message{
		ID:               uuid.New(),
		ConversationID:   convo.ID,
		Question:         question,
		Answer:           result.Answer,
		ReferencedChunks: datatypes.NewJSONSlice(referencedChunks),
		Confidence:       defaultConfidence,
		ProcessingTime:   time.Since(start).Milliseconds(),
		ModelResponse: models.ModelResponse{
			Model:        result.Metadata.Model,
			TokensUsed:   result.Metadata.TokensUsed,
			ResponseTime: result.Metadata.ResponseTime,
			Temperature:  result.Metadata.Temperature,
			MaxTokens:    result.Metadata.MaxTokens,
		},
	}

	// The answer exists from here on; any store failure below must surface
	// it instead of dropping it.
	if err := l.messages.CreateMessage(msg); err != nil {
		l.log.Error("answer generated but message not recorded",
			"conversation_id", convo.ID, "error", err)
		return nil, &PersistenceError{Op: "create message", Answer: result.Answer, Err: err}
	}
	if err := l.convos.IncrementMessageCount(convo.ID); err != nil {
		l.log.Error("message recorded but count not incremented",
			"conversation_id", convo.ID, "message_id", msg.ID, "error", err)
		return nil, &PersistenceError{Op: "increment message count", Answer: result.Answer, Err: err}
	}
	if err := l.quota.RecordAsk(user); err != nil {
		l.log.Error("message recorded but quota not charged",
			"user_id", user.ID, "message_id", msg.ID, "error", err)
		return nil, &PersistenceError{Op: "record quota usage", Answer: result.Answer, Err: err}
	}

	l.log.Info("question answered",
		"conversation_id", convo.ID,
		"processing_ms", msg.ProcessingTime,
		"chunks", len(chunks))

	return &AskResult{
		Message:            msg,
		ProcessingTime:     msg.ProcessingTime,
		RemainingQuestions: l.quota.Remaining(user),
	}, nil
}

// generate performs the external call with at most one bounded wait-and-retry
// when the failure is classified retryable.
func (l *MessageLogic) generate(ctx context.Context, prompt string) (*pkg.GenerationResult, error) {
	result, err := l.generator.Generate(ctx, prompt, pkg.GenerateOptions{})
	if err == nil {
		return result, nil
	}

	genErr := asGenerationError(err)
	if !genErr.Retryable {
		return nil, &GenerationFailedError{Cause: genErr}
	}

	wait := genErr.RetryAfter
	if wait <= 0 || wait > l.retryWaitCap {
		wait = l.retryWaitCap
	}
	l.log.Warn("generation failed, retrying once", "kind", genErr.Kind, "wait", wait.String())

	select {
	case <-ctx.Done():
		return nil, &GenerationFailedError{Cause: genErr}
	case <-time.After(wait):
	}

	result, err = l.generator.Generate(ctx, prompt, pkg.GenerateOptions{})
	if err == nil {
		return result, nil
	}
	return nil, &GenerationFailedError{Cause: asGenerationError(err)}
}

func asGenerationError(err error) *pkg.GenerationError {
	var genErr *pkg.GenerationError
	if errors.As(err, &genErr) {
		return genErr
	}
	return &pkg.GenerationError{Kind: pkg.FailureUnknown, Message: err.Error()}
}

// AddFeedback sets the user's feedback on a message. Ownership is checked
// through the conversation; soft-deleted conversations still accept feedback.
func (l *MessageLogic) AddFeedback(messageID, conversationID, userID uuid.UUID, helpful bool, rating *int, comment string) (*models.Message, error) {
	if rating != nil && (*rating < 1 || *rating > 5) {
		return nil, &ValidationError{Message: "rating must be between 1 and 5"}
	}
	if len(comment) > 500 {
		return nil, &ValidationError{Message: "feedback comment cannot exceed 500 characters"}
	}

	if _, err := l.convos.GetConversation(conversationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "conversation"}
		}
		return nil, &PersistenceError{Op: "load conversation", Err: err}
	}

	msg, err := l.messages.GetMessage(messageID, conversationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "message"}
		}
		return nil, &PersistenceError{Op: "load message", Err: err}
	}

	msg.Feedback.Helpful = &helpful
	if rating != nil {
		msg.Feedback.Rating = rating
	}
	if comment != "" {
		msg.Feedback.Comment = comment
	}

	if err := l.messages.SaveFeedback(msg); err != nil {
		return nil, &PersistenceError{Op: "save feedback", Err: err}
	}
	return msg, nil
}

// ListMessages retrieves a conversation's messages, owner-scoped
func (l *MessageLogic) ListMessages(conversationID, userID uuid.UUID, page, limit int) ([]models.Message, error) {
	if _, err := l.convos.GetConversation(conversationID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Resource: "conversation"}
		}
		return nil, &PersistenceError{Op: "load conversation", Err: err}
	}
	messages, err := l.messages.ListMessages(conversationID, page, limit)
	if err != nil {
		return nil, &PersistenceError{Op: "list messages", Err: err}
	}
	return messages, nil
}
