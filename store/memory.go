package store

import (
	"context"
	"sync"

	"github.com/effective-security/agentexec/chatmodel"
	"github.com/effective-security/agentexec/pkg/llms"
)

type inMemory struct {
	mu      sync.RWMutex
	storage map[string][]llms.Message
}

func NewMemoryStore() MessageStore {
	return &inMemory{}
}

func memoryKey(ctx context.Context) string {
	tenantID, chatID, err := chatmodel.GetTenantAndChatID(ctx)
	if err != nil {
		return ""
	}
	return tenantID + "/" + chatID
}

func (m *inMemory) Messages(ctx context.Context) []llms.Message {
	key := memoryKey(ctx)
	if key == "" {
		return nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.storage == nil {
		return nil
	}
	return m.storage[key]
}

func (m *inMemory) Add(ctx context.Context, msg llms.Message) error {
	tenantID, chatID, err := chatmodel.GetTenantAndChatID(ctx)
	if err != nil {
		return err
	}
	key := tenantID + "/" + chatID

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage == nil {
		// create on first use
		m.storage = make(map[string][]llms.Message)
	}
	m.storage[key] = append(m.storage[key], msg)
	return nil
}

func (m *inMemory) Reset(ctx context.Context) error {
	tenantID, chatID, err := chatmodel.GetTenantAndChatID(ctx)
	if err != nil {
		return err
	}
	key := tenantID + "/" + chatID

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.storage != nil {
		delete(m.storage, key)
	}
	return nil
}
