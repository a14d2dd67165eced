package core

import (
	"context"

	"github.com/valter-silva-au/mdboard/pkg/models"
)

// BoardClient is the remote task-board surface the exporter needs.
type BoardClient interface {
	GetOpenLists(ctx context.Context) ([]models.BoardList, error)
	CreateList(ctx context.Context, name string) (*models.BoardList, error)
	CreateCard(ctx context.Context, listID, name, desc string) (*models.Card, error)
}

// GroupByList partitions items by list name, keeping the order in which
// each name first appears.
func GroupByList(items []models.WorkItem) []models.ExportGroup {
	var groups []models.ExportGroup
	index := make(map[string]int)
	for _, item := range items {
		i, ok := index[item.ListName]
		if !ok {
			i = len(groups)
			index[item.ListName] = i
			groups = append(groups, models.ExportGroup{ListName: item.ListName})
		}
		groups[i].Items = append(groups[i].Items, item)
	}
	return groups
}

// listCache resolves list names to ids, creating missing lists on the board.
type listCache struct {
	client BoardClient
	lists  []models.BoardList
}

// resolve returns the id of the list named name and whether it was created.
func (c *listCache) resolve(ctx context.Context, name string) (string, bool, error) {
	for _, l := range c.lists {
		if l.Name == name {
			return l.ID, false, nil
		}
	}
	list, err := c.client.CreateList(ctx, name)
	if err != nil {
		return "", false, err
	}
	c.lists = append(c.lists, *list)
	return list.ID, true, nil
}
