package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"socialbid/internal/domain"
)

// Stock results for the generation placeholder. No model runs anywhere in
// here: images come from a fixed pool, text from templates, video from a
// disclaimer. Every call is still logged like a real generation would be.
var (
	stockImages = []string{
		"https://images.unsplash.com/photo-1579546929518-9e396f3cc809",
		"https://images.unsplash.com/photo-1557683316-973673baf926",
		"https://images.unsplash.com/photo-1558591710-4b4a1ae0f04d",
		"https://images.unsplash.com/photo-1618005182384-a83a8bd57fbe",
		"https://images.unsplash.com/photo-1620641788421-7a1c342ea42e",
	}

	textTemplates = []string{
		"Introducing %q - a one-of-a-kind piece that commands attention.",
		"Discover %q: crafted with care, priced to move, ready for a new home.",
		"Don't miss %q. Listings like this rarely come around twice.",
	}

	videoDisclaimer = "Video generation is coming soon. Your prompt has been saved."
)

// GenerateService is the stand-in for an AI content generator.
type GenerateService struct {
	logs domain.PromptLogRepository
}

func NewGenerateService(logs domain.PromptLogRepository) *GenerateService {
	return &GenerateService{logs: logs}
}

// Generate synthesizes a result for the prompt and appends it to the prompt
// log. Image prompts pick one of five stock URLs uniformly at random, text
// prompts one of three templates with the prompt interpolated verbatim, and
// video prompts a fixed disclaimer.
func (s *GenerateService) Generate(ctx context.Context, caller *domain.User, prompt string, typ domain.PromptType) (*domain.PromptLog, error) {
	if caller == nil {
		return nil, domain.ErrUnauthenticated
	}

	// Handlers call this concurrently; *rand.Rand is not safe for that, the
	// package-level functions are.
	var result string
	switch typ {
	case domain.PromptImage:
		result = stockImages[rand.Intn(len(stockImages))]
	case domain.PromptText:
		result = fmt.Sprintf(textTemplates[rand.Intn(len(textTemplates))], prompt)
	case domain.PromptVideo:
		result = videoDisclaimer
	default:
		return nil, fmt.Errorf("%w: unknown prompt type %q", domain.ErrInvalidInput, typ)
	}

	entry := &domain.PromptLog{
		UserID:    caller.ID,
		Prompt:    prompt,
		Result:    result,
		Type:      typ,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.logs.Create(ctx, entry); err != nil {
		return nil, err
	}
	return entry, nil
}
