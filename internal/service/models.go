package service

// Model describes one selectable language model.
type Model struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	IsRecommended bool   `json:"isRecommended"`
}

// DefaultModelID is the recommended model.
const DefaultModelID = "openai/gpt-4o-mini"

var catalogue = []Model{
	{
		ID:            DefaultModelID,
		Name:          "GPT-4o Mini",
		Description:   "Fast and cost-effective, good for most texts",
		IsRecommended: true,
	},
	{
		ID:          "openai/gpt-4o",
		Name:        "GPT-4o",
		Description: "Higher quality flashcards for complex material",
	},
	{
		ID:          "anthropic/claude-3-haiku",
		Name:        "Claude 3 Haiku",
		Description: "Quick responses with concise answers",
	},
	{
		ID:          "anthropic/claude-3-sonnet",
		Name:        "Claude 3 Sonnet",
		Description: "Balanced quality and speed",
	},
}

// ModelCatalog lists the models offered to users and the default used when a
// generation request names none.
type ModelCatalog struct {
	defaultModel string
}

// NewModelCatalog creates a catalog. An empty defaultModel selects
// DefaultModelID.
func NewModelCatalog(defaultModel string) *ModelCatalog {
	if defaultModel == "" {
		defaultModel = DefaultModelID
	}
	return &ModelCatalog{defaultModel: defaultModel}
}

// Models returns a copy of the catalogue.
func (c *ModelCatalog) Models() []Model {
	out := make([]Model, len(catalogue))
	copy(out, catalogue)
	return out
}

// Default returns the model used when none is requested.
func (c *ModelCatalog) Default() string {
	return c.defaultModel
}
