package domain

// ImageDescriptor - краткое описание загруженного изображения.
// Index - единственный ключ изображения во всём конвейере размещения.
type ImageDescriptor struct {
	Index          int      `json:"index"`
	Description    string   `json:"description"`
	Mood           string   `json:"mood,omitempty"`
	Subjects       []string `json:"subjects,omitempty"`
	DominantColors []string `json:"dominantColors,omitempty"`
}

// CharacterInfo - необязательный контекст о персонаже истории.
type CharacterInfo struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Traits      []string `json:"traits,omitempty"`
}

// LocationInfo - необязательный контекст о месте действия.
type LocationInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Mood        string `json:"mood,omitempty"`
}

// PlacementContext - дополнительные подсказки для модели.
type PlacementContext struct {
	Characters []CharacterInfo `json:"characters,omitempty"`
	Locations  []LocationInfo  `json:"locations,omitempty"`
}

// IsEmpty сообщает, есть ли в контексте хоть что-то для промпта.
func (c *PlacementContext) IsEmpty() bool {
	return c == nil || (len(c.Characters) == 0 && len(c.Locations) == 0)
}
