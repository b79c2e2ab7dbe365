package models

import "encoding/json"

// MenuItem is a schemaless menu document. It is served as {id, ...fields}.
type MenuItem struct {
	ID     string         `gorm:"primaryKey;type:varchar(36)"`
	Fields map[string]any `gorm:"serializer:json"`
}

// TableName keeps the collection name used by the menu.
func (MenuItem) TableName() string { return "menu" }

func (m MenuItem) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(m.Fields)+1)
	for k, v := range m.Fields {
		flat[k] = v
	}
	flat["id"] = m.ID
	return json.Marshal(flat)
}

func (m *MenuItem) UnmarshalJSON(data []byte) error {
	var flat map[string]any
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}
	if id, ok := flat["id"].(string); ok {
		m.ID = id
	}
	delete(flat, "id")
	m.Fields = flat
	return nil
}
