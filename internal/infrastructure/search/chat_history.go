package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"github.com/oksasatya/go-travel-assistant/internal/domain/entity"
	"github.com/oksasatya/go-travel-assistant/internal/domain/repository"
)

const requestTimeout = 3 * time.Second

const chatIndexMapping = `{
  "mappings": {
    "properties": {
      "id":         {"type": "keyword"},
      "user_id":    {"type": "keyword"},
      "prompt":     {"type": "text"},
      "response":   {"type": "text", "index": false},
      "created_at": {"type": "date"}
    }
  }
}`

// ChatHistory stores chat exchanges in an Elasticsearch index.
// A nil client turns it into a no-op store so history stays optional.
type ChatHistory struct {
	es    *elasticsearch.Client
	index string
}

func NewChatHistory(es *elasticsearch.Client, index string) *ChatHistory {
	return &ChatHistory{es: es, index: index}
}

func (h *ChatHistory) enabled() bool {
	return h != nil && h.es != nil && h.index != ""
}

// EnsureIndex creates the index with keyword user ids if it does not exist yet.
func (h *ChatHistory) EnsureIndex(ctx context.Context) error {
	if !h.enabled() {
		return nil
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := esapi.IndicesCreateRequest{Index: h.index, Body: strings.NewReader(chatIndexMapping)}.Do(c, h.es)
	if err != nil {
		return fmt.Errorf("create index %s: %w", h.index, err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && !strings.Contains(res.String(), "resource_already_exists_exception") {
		return fmt.Errorf("create index %s: %s", h.index, res.Status())
	}
	return nil
}

func (h *ChatHistory) Save(ctx context.Context, ex *entity.ChatExchange) error {
	if !h.enabled() {
		return nil
	}
	b, err := json.Marshal(ex)
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	req := esapi.IndexRequest{Index: h.index, DocumentID: ex.ID, Body: bytes.NewReader(b), Refresh: "false"}
	res, err := req.Do(c, h.es)
	if err != nil {
		return fmt.Errorf("index chat exchange: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return fmt.Errorf("index chat exchange: %s", res.Status())
	}
	return nil
}

// Recent returns the newest exchanges of userID, newest first.
func (h *ChatHistory) Recent(ctx context.Context, userID string, size int) ([]entity.ChatExchange, error) {
	if !h.enabled() {
		return []entity.ChatExchange{}, nil
	}
	query := map[string]any{
		"query": map[string]any{
			"term": map[string]any{"user_id": userID},
		},
		"sort": []any{
			map[string]any{"created_at": map[string]any{"order": "desc"}},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	res, err := h.es.Search(
		h.es.Search.WithContext(c),
		h.es.Search.WithIndex(h.index),
		h.es.Search.WithBody(bytes.NewReader(b)),
		h.es.Search.WithIgnoreUnavailable(true),
	)
	if err != nil {
		return nil, fmt.Errorf("search chat history: %w", err)
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() {
		return nil, fmt.Errorf("search chat history: %s", res.Status())
	}

	var parsed struct {
		Hits struct {
			Hits []struct {
				Source entity.ChatExchange `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]entity.ChatExchange, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		out = append(out, hit.Source)
	}
	return out, nil
}

var _ repository.ChatHistoryRepository = (*ChatHistory)(nil)
