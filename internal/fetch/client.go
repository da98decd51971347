package fetch

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"match-service/internal/match/model"
)

// Client забирает документ по числовому id и вытаскивает из него таблицы.
type Client struct {
	HTTP        *http.Client
	DocumentURL string // шаблон с {id}
}

func NewClient(documentURL string, timeout time.Duration) *Client {
	return &Client{
		HTTP:        &http.Client{Timeout: timeout},
		DocumentURL: documentURL,
	}
}

// FetchTables: все таблицы документа id.
func (c *Client) FetchTables(ctx context.Context, id int) ([]*model.Table, error) {
	url := strings.ReplaceAll(c.DocumentURL, "{id}", strconv.Itoa(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("document %d: unexpected status %d", id, resp.StatusCode)
	}
	tables, err := ParseTables(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("document %d: %w", id, err)
	}
	return tables, nil
}
