package resource

import (
	"encoding/json"
	"fmt"

	"github.com/tailorly/seam/internal/core/domain"
)

// ReceivedItemTemplateInput is the request body for template writes.
type ReceivedItemTemplateInput struct {
	Name  string   `json:"name"`
	Items []string `json:"items"`
}

// NewReceivedItemTemplates creates the received-item template resource
// client.
func NewReceivedItemTemplates(deps Deps) *Client[domain.ReceivedItemTemplate] {
	return New(Config[domain.ReceivedItemTemplate]{
		Name:       "received_item_templates",
		BasePath:   "/received-item-templates",
		DecodeList: decodeTemplateList,
		DecodeOne:  decodeTemplate,
		ID:         func(t domain.ReceivedItemTemplate) string { return t.ID },
		Match: func(t domain.ReceivedItemTemplate, q Query) bool {
			return t.Matches(q.SearchText)
		},
	}, deps)
}

type templateWire struct {
	ID             string   `json:"id"`
	TemplateID     string   `json:"template_id"`
	Name           string   `json:"name"`
	Items          []string `json:"items"`
	CreatedAt      *float64 `json:"createdAt"`
	CreatedAtSnake *float64 `json:"created_at"`
	UpdatedAt      *float64 `json:"updatedAt"`
	UpdatedAtSnake *float64 `json:"updated_at"`
}

func (w templateWire) normalize() domain.ReceivedItemTemplate {
	id := w.ID
	if id == "" {
		id = w.TemplateID
	}
	items := w.Items
	if items == nil {
		items = []string{}
	}
	return domain.ReceivedItemTemplate{
		ID:        id,
		Name:      w.Name,
		Items:     items,
		CreatedAt: timeFromEpoch(firstNum(w.CreatedAt, w.CreatedAtSnake)),
		UpdatedAt: timeFromEpoch(firstNum(w.UpdatedAt, w.UpdatedAtSnake, w.CreatedAt, w.CreatedAtSnake)),
	}
}

func decodeTemplateList(data []byte) ([]domain.ReceivedItemTemplate, string, error) {
	var wire []templateWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, "", fmt.Errorf("received item template list: %w", err)
	}

	templates := make([]domain.ReceivedItemTemplate, 0, len(wire))
	for _, w := range wire {
		templates = append(templates, w.normalize())
	}
	return templates, "", nil
}

func decodeTemplate(data []byte) (domain.ReceivedItemTemplate, error) {
	var w templateWire
	if err := json.Unmarshal(data, &w); err != nil {
		return domain.ReceivedItemTemplate{}, fmt.Errorf("received item template: %w", err)
	}
	return w.normalize(), nil
}
