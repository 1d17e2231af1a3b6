package store

import (
	"context"
	"time"

	"github.com/effective-security/agentexec/pkg/llms"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/agentexec", "store")

// MessageStore persists conversation history between agent runs.
// The tenant and chat IDs are taken from the chatmodel context.
type MessageStore interface {
	Messages(ctx context.Context) []llms.Message
	Add(ctx context.Context, msg llms.Message) error
	Reset(ctx context.Context) error
}

// ChatInfo is the chat metadata kept alongside messages.
type ChatInfo struct {
	TenantID  string         `json:"tenant_id"`
	ChatID    string         `json:"chat_id"`
	Title     string         `json:"title"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	Messages  []llms.Message `json:"messages,omitempty"`
}

// MessageStoreManager extends MessageStore with chat management.
type MessageStoreManager interface {
	MessageStore

	UpdateChat(ctx context.Context, title string, metadata map[string]any) error
	ListChats(ctx context.Context) ([]string, error)
	GetChatInfo(ctx context.Context, id string) (*ChatInfo, error)
	GetChatTitle(ctx context.Context, id string) (string, error)
	ListTenants(ctx context.Context) ([]string, error)
	Cleanup(ctx context.Context, tenantID string, olderThan time.Duration) (uint32, error)
}
