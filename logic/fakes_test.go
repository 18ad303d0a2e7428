package logic

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/abhinay-x/studymate-sub001/models"
	"github.com/abhinay-x/studymate-sub001/pkg"
)

// In-memory store fakes. Counter mutations are mutex-guarded so the
// concurrency tests observe the same lost-update-free behavior the SQL
// increments give the real DAOs.

type fakeUserStore struct {
	mu             sync.Mutex
	users          map[uuid.UUID]*models.User
	saveUsageErr   error
	incrementErr   error
	saveUsageCalls int
}

func newFakeUserStore(users ...*models.User) *fakeUserStore {
	s := &fakeUserStore{users: make(map[uuid.UUID]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *fakeUserStore) GetUserByID(id uuid.UUID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *user
	return &copied, nil
}

func (s *fakeUserStore) SaveUsage(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saveUsageCalls++
	if s.saveUsageErr != nil {
		return s.saveUsageErr
	}
	stored, ok := s.users[user.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.APIUsage.DailyQuestions = user.APIUsage.DailyQuestions
	stored.APIUsage.LastReset = user.APIUsage.LastReset
	return nil
}

func (s *fakeUserStore) IncrementQuestionCounts(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.incrementErr != nil {
		return s.incrementErr
	}
	stored, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.APIUsage.DailyQuestions++
	stored.APIUsage.TotalQuestions++
	return nil
}

type fakeConversationStore struct {
	mu           sync.Mutex
	convos       map[uuid.UUID]*models.Conversation
	incrementErr error
}

func newFakeConversationStore(convos ...*models.Conversation) *fakeConversationStore {
	s := &fakeConversationStore{convos: make(map[uuid.UUID]*models.Conversation)}
	for _, c := range convos {
		s.convos[c.ID] = c
	}
	return s
}

func (s *fakeConversationStore) CreateConversation(userID uuid.UUID, title string, docs []models.Document) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	convo := &models.Conversation{ID: uuid.New(), UserID: userID, Title: title, Documents: docs, IsActive: true}
	s.convos[convo.ID] = convo
	return convo, nil
}

func (s *fakeConversationStore) GetActiveConversation(id, userID uuid.UUID) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	convo, ok := s.convos[id]
	if !ok || convo.UserID != userID || !convo.IsActive {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *convo
	return &copied, nil
}

func (s *fakeConversationStore) GetConversation(id, userID uuid.UUID) (*models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	convo, ok := s.convos[id]
	if !ok || convo.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *convo
	return &copied, nil
}

func (s *fakeConversationStore) ListConversations(userID uuid.UUID, page, limit int) ([]models.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Conversation
	for _, convo := range s.convos {
		if convo.UserID == userID && convo.IsActive {
			out = append(out, *convo)
		}
	}
	return out, nil
}

func (s *fakeConversationStore) UpdateTitle(id, userID uuid.UUID, title string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	convo, ok := s.convos[id]
	if !ok || convo.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	convo.Title = title
	return nil
}

func (s *fakeConversationStore) ReplaceDocuments(convo *models.Conversation, docs []models.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.convos[convo.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Documents = docs
	return nil
}

func (s *fakeConversationStore) SoftDelete(id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	convo, ok := s.convos[id]
	if !ok || convo.UserID != userID || !convo.IsActive {
		return gorm.ErrRecordNotFound
	}
	convo.IsActive = false
	return nil
}

func (s *fakeConversationStore) IncrementMessageCount(id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.incrementErr != nil {
		return s.incrementErr
	}
	convo, ok := s.convos[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	convo.MessageCount++
	return nil
}

func (s *fakeConversationStore) messageCount(id uuid.UUID) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.convos[id].MessageCount
}

type fakeMessageStore struct {
	mu        sync.Mutex
	messages  []*models.Message
	createErr error
}

func (s *fakeMessageStore) CreateMessage(msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.createErr != nil {
		return s.createErr
	}
	copied := *msg
	s.messages = append(s.messages, &copied)
	return nil
}

func (s *fakeMessageStore) GetMessage(id, conversationID uuid.UUID) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, msg := range s.messages {
		if msg.ID == id && msg.ConversationID == conversationID {
			copied := *msg
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeMessageStore) ListMessages(conversationID uuid.UUID, page, limit int) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Message
	for _, msg := range s.messages {
		if msg.ConversationID == conversationID {
			out = append(out, *msg)
		}
	}
	return out, nil
}

func (s *fakeMessageStore) SaveFeedback(msg *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, stored := range s.messages {
		if stored.ID == msg.ID {
			stored.Feedback = msg.Feedback
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (s *fakeMessageStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.messages)
}

type fakeDocumentStore struct {
	mu          sync.Mutex
	docs        map[uuid.UUID]*models.Document
	chunks      []models.DocumentChunk
	searchCalls int
}

func newFakeDocumentStore(docs ...*models.Document) *fakeDocumentStore {
	s := &fakeDocumentStore{docs: make(map[uuid.UUID]*models.Document)}
	for _, d := range docs {
		s.docs[d.ID] = d
	}
	return s
}

func (s *fakeDocumentStore) GetDocumentsByIDs(ids []uuid.UUID, userID uuid.UUID) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Document
	for _, id := range ids {
		if doc, ok := s.docs[id]; ok && doc.UserID == userID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (s *fakeDocumentStore) GetUserDocuments(userID uuid.UUID, page, limit int) ([]models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Document
	for _, doc := range s.docs {
		if doc.UserID == userID {
			out = append(out, *doc)
		}
	}
	return out, nil
}

func (s *fakeDocumentStore) GetDocumentByID(id, userID uuid.UUID) (*models.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.docs[id]
	if !ok || doc.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *doc
	return &copied, nil
}

func (s *fakeDocumentStore) SearchChunks(documentIDs []uuid.UUID, query string, limit int) ([]models.DocumentChunk, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchCalls++
	members := make(map[uuid.UUID]bool, len(documentIDs))
	for _, id := range documentIDs {
		members[id] = true
	}
	var out []models.DocumentChunk
	for _, chunk := range s.chunks {
		if members[chunk.DocumentID] && strings.Contains(strings.ToLower(chunk.Content), strings.ToLower(query)) {
			out = append(out, chunk)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type generatorCall struct {
	result *pkg.GenerationResult
	err    error
}

type fakeGenerator struct {
	mu    sync.Mutex
	queue []generatorCall
	calls int
}

func (g *fakeGenerator) Generate(ctx context.Context, prompt string, opts pkg.GenerateOptions) (*pkg.GenerationResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.calls++
	if len(g.queue) == 0 {
		return &pkg.GenerationResult{
			Answer: "The mitochondria is the powerhouse of the cell.",
			Metadata: pkg.ResponseMetadata{
				Model:       "huggingface-2b",
				TokensUsed:  12,
				Temperature: 0.7,
				MaxTokens:   512,
			},
		}, nil
	}
	call := g.queue[0]
	g.queue = g.queue[1:]
	return call.result, call.err
}

func (g *fakeGenerator) Model() string {
	return "huggingface-2b"
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}
