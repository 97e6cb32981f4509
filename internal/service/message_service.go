package service

import (
	"context"
	"fmt"
	"time"

	"socialbid/internal/domain"
)

// MessageService implements direct messaging. Threads are correlated by the
// unordered sender/receiver pair; the conversation row only tracks the pair,
// the last message pointer, and the recency used for inbox ordering.
type MessageService struct {
	messages      domain.MessageRepository
	conversations domain.ConversationRepository
	users         domain.UserRepository
}

func NewMessageService(
	messages domain.MessageRepository,
	conversations domain.ConversationRepository,
	users domain.UserRepository,
) *MessageService {
	return &MessageService{messages: messages, conversations: conversations, users: users}
}

// LastMessage is the inbox preview of a conversation's latest message.
type LastMessage struct {
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	IsOwn     bool      `json:"is_own"`
}

// ConversationView is one inbox entry: the other participant, the latest
// message, and how many messages addressed to the caller are still unread.
type ConversationView struct {
	ID          int64                 `json:"id"`
	Other       *domain.PublicProfile `json:"other,omitempty"`
	LastMessage *LastMessage          `json:"last_message,omitempty"`
	UnreadCount int                   `json:"unread_count"`
	UpdatedAt   time.Time             `json:"updated_at"`
}

// MessageView is a message tagged with ownership relative to the caller.
type MessageView struct {
	*domain.Message
	IsOwn bool `json:"is_own"`
}

// ListConversations returns the caller's inbox, most recently updated first.
func (s *MessageService) ListConversations(ctx context.Context, caller *domain.User) ([]*ConversationView, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}

	convs, err := s.conversations.ListForUser(ctx, caller.ID)
	if err != nil {
		return nil, err
	}

	views := make([]*ConversationView, 0, len(convs))
	for _, c := range convs {
		otherID := c.Other(caller.ID)
		v := &ConversationView{ID: c.ID, UpdatedAt: c.UpdatedAt}

		if other, err := s.users.GetByID(ctx, otherID); err == nil && other != nil {
			v.Other = other.Public()
		}

		unread, err := s.messages.CountUnreadFrom(ctx, caller.ID, otherID)
		if err != nil {
			return nil, err
		}
		v.UnreadCount = unread

		// The last message pointer may briefly trail the thread; the thread
		// itself is the source of truth for the preview.
		thread, err := s.messages.ListBetween(ctx, caller.ID, otherID)
		if err != nil {
			return nil, err
		}
		if len(thread) > 0 {
			last := thread[len(thread)-1]
			v.LastMessage = &LastMessage{
				Content:   last.Content,
				CreatedAt: last.CreatedAt,
				IsOwn:     last.SenderID == caller.ID,
			}
		}

		views = append(views, v)
	}
	return views, nil
}

// GetMessages returns the full thread for a conversation the caller belongs
// to, oldest first, and marks every unread message addressed to the caller
// as read. Calling it again immediately returns the same list unchanged.
func (s *MessageService) GetMessages(ctx context.Context, caller *domain.User, conversationID int64) ([]*MessageView, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}

	conv, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		return nil, domain.ErrNotFound
	}
	if !conv.Involves(caller.ID) {
		return nil, fmt.Errorf("%w: not a participant in this conversation", domain.ErrForbidden)
	}

	otherID := conv.Other(caller.ID)
	if _, err := s.messages.MarkReadFrom(ctx, caller.ID, otherID); err != nil {
		return nil, err
	}

	thread, err := s.messages.ListBetween(ctx, caller.ID, otherID)
	if err != nil {
		return nil, err
	}

	views := make([]*MessageView, 0, len(thread))
	for _, m := range thread {
		views = append(views, &MessageView{Message: m, IsOwn: m.SenderID == caller.ID})
	}
	return views, nil
}

// SendMessage delivers a message to receiverID, finding or creating the
// conversation for the pair so at most one ever exists. The message insert
// and the conversation upsert are separate writes; a failure between them
// leaves a pair-message without a conversation row, which is a known quirk
// of this model rather than something this layer papers over.
func (s *MessageService) SendMessage(ctx context.Context, caller *domain.User, receiverID int64, content string) (*MessageView, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}
	if content == "" {
		return nil, fmt.Errorf("%w: message content cannot be empty", domain.ErrInvalidInput)
	}

	receiver, err := s.users.GetByID(ctx, receiverID)
	if err != nil {
		return nil, fmt.Errorf("get receiver: %w", err)
	}
	if receiver == nil {
		return nil, domain.ErrNotFound
	}

	msg := &domain.Message{
		SenderID:   caller.ID,
		ReceiverID: receiverID,
		Content:    content,
		Read:       false,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.messages.Create(ctx, msg); err != nil {
		return nil, err
	}

	conv, err := s.conversations.FindByParticipants(ctx, caller.ID, receiverID)
	if err != nil {
		return nil, err
	}
	if conv == nil {
		conv = &domain.Conversation{
			ParticipantA:  caller.ID,
			ParticipantB:  receiverID,
			LastMessageID: &msg.ID,
			UpdatedAt:     msg.CreatedAt,
		}
		if err := s.conversations.Create(ctx, conv); err != nil {
			return nil, err
		}
	} else if err := s.conversations.SetLastMessage(ctx, conv.ID, msg.ID, msg.CreatedAt); err != nil {
		return nil, err
	}

	return &MessageView{Message: msg, IsOwn: true}, nil
}
