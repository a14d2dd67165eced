package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/valter-silva-au/mdboard/pkg/models"
)

// APIError is returned for any non-2xx response from the Trello API.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("trello API %d %s: %s", e.StatusCode, e.Status, e.Body)
}

// TrelloClient talks to the Trello REST API for a single board. Every
// request carries the key and token as query parameters.
type TrelloClient struct {
	baseURL    string
	key        string
	token      string
	boardID    string
	httpClient *http.Client
}

// NewTrelloClient creates a client from cfg. An empty APIURL falls back to
// the public Trello endpoint.
func NewTrelloClient(cfg models.TrelloConfig) *TrelloClient {
	base := cfg.APIURL
	if base == "" {
		base = "https://api.trello.com/1"
	}
	return &TrelloClient{
		baseURL:    strings.TrimRight(base, "/"),
		key:        cfg.Key,
		token:      cfg.Token,
		boardID:    cfg.BoardID,
		httpClient: &http.Client{},
	}
}

// GetOpenLists returns the board's open lists in board order.
func (c *TrelloClient) GetOpenLists(ctx context.Context) ([]models.BoardList, error) {
	var lists []models.BoardList
	path := "/boards/" + url.PathEscape(c.boardID) + "/lists"
	if err := c.do(ctx, http.MethodGet, path, url.Values{"filter": {"open"}}, nil, &lists); err != nil {
		return nil, fmt.Errorf("listing open lists on board %s: %w", c.boardID, err)
	}
	return lists, nil
}

type createListRequest struct {
	Name    string `json:"name"`
	IDBoard string `json:"idBoard"`
	Pos     string `json:"pos"`
}

// CreateList adds a list named name at the top of the board.
func (c *TrelloClient) CreateList(ctx context.Context, name string) (*models.BoardList, error) {
	var list models.BoardList
	body := createListRequest{Name: name, IDBoard: c.boardID, Pos: "top"}
	if err := c.do(ctx, http.MethodPost, "/lists", nil, body, &list); err != nil {
		return nil, fmt.Errorf("creating list %q: %w", name, err)
	}
	return &list, nil
}

type createCardRequest struct {
	IDList string `json:"idList"`
	Name   string `json:"name"`
	Desc   string `json:"desc"`
}

// CreateCard adds a card to the list identified by listID.
func (c *TrelloClient) CreateCard(ctx context.Context, listID, name, desc string) (*models.Card, error) {
	var card models.Card
	body := createCardRequest{IDList: listID, Name: name, Desc: desc}
	if err := c.do(ctx, http.MethodPost, "/cards", nil, body, &card); err != nil {
		return nil, fmt.Errorf("creating card %q: %w", name, err)
	}
	return &card, nil
}

// do sends one authenticated JSON request and decodes the response into out.
func (c *TrelloClient) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("building request URL: %w", err)
	}
	q := u.Query()
	for k, vs := range query {
		for _, v := range vs {
			q.Add(k, v)
		}
	}
	q.Set("key", c.key)
	q.Set("token", c.token)
	u.RawQuery = q.Encode()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshaling request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reader)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(resp.Body)
		return &APIError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
			Body:       string(text),
		}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}
