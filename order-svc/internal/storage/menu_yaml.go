package storage

import (
	"context"
	"fmt"
	"os"

	"tasterealm/order-svc/internal/domain"

	"gopkg.in/yaml.v3"
)

type menuFile struct {
	Items []domain.MenuItem `yaml:"items"`
}

// YAMLMenu serves the catalog from a YAML seed file held in memory.
type YAMLMenu struct {
	items []domain.MenuItem
	index map[string]int
}

func LoadYAMLMenu(path string) (*YAMLMenu, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseYAMLMenu(data)
}

func ParseYAMLMenu(data []byte) (*YAMLMenu, error) {
	var file menuFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parse menu: %w", err)
	}

	menu := &YAMLMenu{index: make(map[string]int, len(file.Items))}
	for _, item := range file.Items {
		if item.ID == "" {
			return nil, fmt.Errorf("parse menu: item %q has no id", item.Name)
		}
		if _, dup := menu.index[item.ID]; dup {
			return nil, fmt.Errorf("parse menu: duplicate id %q", item.ID)
		}
		menu.index[item.ID] = len(menu.items)
		menu.items = append(menu.items, item)
	}
	return menu, nil
}

func (m *YAMLMenu) ListMenu(_ context.Context) ([]domain.MenuItem, error) {
	out := make([]domain.MenuItem, len(m.items))
	copy(out, m.items)
	return out, nil
}

func (m *YAMLMenu) GetMenuItem(_ context.Context, id string) (*domain.MenuItem, error) {
	i, ok := m.index[id]
	if !ok {
		return nil, domain.ErrMenuItemNotFound
	}
	item := m.items[i]
	return &item, nil
}
