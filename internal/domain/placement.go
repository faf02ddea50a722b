package domain

// PlacementType определяет, к чему привязано изображение.
type PlacementType string

const (
	// PlacementSceneScope - изображение передаёт настроение или фон всей сцены.
	PlacementSceneScope PlacementType = "scene-scope"
	// PlacementStatementScope - изображение относится к конкретным репликам.
	PlacementStatementScope PlacementType = "statement-scope"
)

// Placement - решение о том, куда поставить одно изображение.
// StatementIndices заполняется только для PlacementStatementScope.
type Placement struct {
	ImageIndex       int           `json:"imageIndex"`
	Type             PlacementType `json:"type"`
	SceneIndex       int           `json:"sceneIndex"`
	StatementIndices []int         `json:"statementIndices,omitempty"`
	Confidence       float64       `json:"confidence"`
	Reason           string        `json:"reason"`
}

// ResultSource - через какую ветку конвейера был получен результат.
type ResultSource string

const (
	SourceEmpty     ResultSource = "empty"
	SourceOracle    ResultSource = "oracle"
	SourceCompleted ResultSource = "completed"
	SourceFallback  ResultSource = "fallback"
)

// PlaceImagesRequest - вход конвейера размещения.
type PlaceImagesRequest struct {
	Scenes           []Scene           `json:"scenes"`
	ImageDescriptors []ImageDescriptor `json:"imageDescriptors"`
	Context          *PlacementContext `json:"context,omitempty"`
}

// PlaceImagesResult - полный список размещений и сведения о вызове модели.
type PlaceImagesResult struct {
	Placements []Placement  `json:"placements"`
	Usage      Usage        `json:"usage"`
	Source     ResultSource `json:"source"`
}
