package services

import (
	"context"
	"fmt"
	"time"

	"github.com/dmitrijs2005/codereviewer/internal/common"
	"github.com/dmitrijs2005/codereviewer/internal/logging"
	"github.com/dmitrijs2005/codereviewer/internal/server/archive"
	"github.com/dmitrijs2005/codereviewer/internal/server/models"
	"github.com/google/uuid"
)

// DefaultModel is used for any label outside the allow-list.
const DefaultModel = "mistral"

// supportedModels maps frontend labels to model names on the inference server.
var supportedModels = []struct{ label, model string }{
	{"qwen2.5:0.5b", "qwen2.5:0.5b"},
	{"llama3.2:1b", "llama3.2:1b"},
	{"deepseek-coder:6.7b", "deepseek-coder:6.7b"},
}

const reviewPromptTemplate = "Please act as an expert code reviewer.\n" +
	"Review the following code for bugs, errors, and performance issues.\n" +
	"Provide a list of identified issues and a suggested fix.\n\n" +
	"Code:\n```\n%s\n```"

// Generator produces text from a prompt on a named model.
type Generator interface {
	Generate(ctx context.Context, model, prompt string) (string, error)
}

// ModelList is the catalogue shown by the frontend model picker.
type ModelList struct {
	Default string   `json:"default"`
	Models  []string `json:"models"`
}

type ReviewService struct {
	generator Generator
	archive   archive.Archive
	logger    logging.Logger
}

func NewReviewService(g Generator, a archive.Archive, l logging.Logger) *ReviewService {
	if a == nil {
		a = archive.NopArchive{}
	}
	return &ReviewService{generator: g, archive: a, logger: l.With("module", "review")}
}

// ResolveModel maps a label to a model name, falling back to DefaultModel.
func ResolveModel(label string) string {
	for _, m := range supportedModels {
		if m.label == label {
			return m.model
		}
	}
	return DefaultModel
}

// BuildPrompt embeds code verbatim in the reviewer instructions.
func BuildPrompt(code string) string {
	return fmt.Sprintf(reviewPromptTemplate, code)
}

// Review asks the inference server to review code and returns its text.
// Any inference failure is reported as common.ErrUpstream.
func (s *ReviewService) Review(ctx context.Context, code, label string) (string, error) {
	model := ResolveModel(label)

	text, err := s.generator.Generate(ctx, model, BuildPrompt(code))
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrUpstream, err)
	}

	rec := &models.ReviewRecord{
		ID:        uuid.NewString(),
		Label:     label,
		Model:     model,
		Code:      code,
		Review:    text,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.archive.Save(ctx, rec); err != nil {
		s.logger.Warn(ctx, "archive review failed", "id", rec.ID, "error", err)
	}

	return text, nil
}

// Models lists the selectable labels and the fallback model.
func (s *ReviewService) Models() ModelList {
	out := ModelList{Default: DefaultModel, Models: make([]string, 0, len(supportedModels))}
	for _, m := range supportedModels {
		out.Models = append(out.Models, m.label)
	}
	return out
}
