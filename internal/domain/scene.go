package domain

// Statement - одна строка реплики или повествования внутри сцены.
// Index совпадает с позицией в Scene.Statements.
type Statement struct {
	Index       int    `json:"index"`
	DisplayText string `json:"displayText"`
}

// Scene - упорядоченная группа реплик, один сюжетный такт.
// Index совпадает с позицией в списке сцен; при разборе запроса
// используется именно позиция, а не присланное значение.
type Scene struct {
	Index      int         `json:"index"`
	Statements []Statement `json:"statements"`
}

// StatementCount возвращает число реплик в сцене sceneIndex или 0, если сцены нет.
func StatementCount(scenes []Scene, sceneIndex int) int {
	if sceneIndex < 0 || sceneIndex >= len(scenes) {
		return 0
	}
	return len(scenes[sceneIndex].Statements)
}
