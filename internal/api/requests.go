package api

// CreateGenerationRequest is the body of POST /api/generations.
type CreateGenerationRequest struct {
	SourceText string `json:"sourceText" validate:"required,min=1000,max=10000"`
	Model      string `json:"model"      validate:"max=100"`
}

// CreateFlashcardRequest is the body of POST /api/flashcards.
type CreateFlashcardRequest struct {
	Front string `json:"front" validate:"required,max=200"`
	Back  string `json:"back"  validate:"required,max=500"`
}

// UpdateFlashcardRequest is the body of PUT /api/flashcards/{id}.
type UpdateFlashcardRequest struct {
	Front string `json:"front" validate:"required,max=200"`
	Back  string `json:"back"  validate:"required,max=500"`
}

// AcceptedProposalRequest is one reviewed proposal in a batch accept.
type AcceptedProposalRequest struct {
	Front  string `json:"front"  validate:"required,max=200"`
	Back   string `json:"back"   validate:"required,max=500"`
	Source string `json:"source" validate:"required,oneof=ai-full ai-edited"`
}

// BatchAcceptRequest is the body of POST /api/flashcards/batch.
type BatchAcceptRequest struct {
	GenerationID int64                     `json:"generationId" validate:"required,gte=1"`
	Flashcards   []AcceptedProposalRequest `json:"flashcards"   validate:"required,min=1,max=50,dive"`
}

// FlashcardListParams are the query parameters of GET /api/flashcards.
type FlashcardListParams struct {
	Page      *int   `json:"page"      validate:"omitempty,gte=1"`
	PageSize  *int   `json:"pageSize"  validate:"omitempty,gte=1,lte=100"`
	Source    string `json:"source"    validate:"omitempty,oneof=manual ai-full ai-edited"`
	SortBy    string `json:"sortBy"    validate:"omitempty,oneof=createdAt updatedAt front"`
	SortOrder string `json:"sortOrder" validate:"omitempty,oneof=asc desc"`
	Search    string `json:"search"    validate:"max=200"`
}

// GenerationListParams are the query parameters of GET /api/generations.
type GenerationListParams struct {
	Page      *int   `json:"page"      validate:"omitempty,gte=1"`
	PageSize  *int   `json:"pageSize"  validate:"omitempty,gte=1,lte=100"`
	SortOrder string `json:"sortOrder" validate:"omitempty,oneof=asc desc"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Email           string `json:"email"           validate:"required,email,max=255"`
	Password        string `json:"password"        validate:"required,password_strength"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// DeleteAccountRequest is the body of DELETE /api/auth/account.
type DeleteAccountRequest struct {
	Password     string `json:"password"     validate:"required"`
	Confirmation string `json:"confirmation" validate:"required"`
}
