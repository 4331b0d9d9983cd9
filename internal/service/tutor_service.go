package service

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/edusync-api/internal/dto"
)

// Tutor produces study help. Implementations may call out to a language model.
type Tutor interface {
	Summarize(ctx context.Context, text string) (string, error)
	Answer(ctx context.Context, question, material string) (string, error)
}

// EchoTutor is the bundled Tutor. It does not analyse its input.
type EchoTutor struct{}

const summaryPreviewRunes = 50

func (EchoTutor) Summarize(_ context.Context, text string) (string, error) {
	preview := []rune(text)
	if len(preview) > summaryPreviewRunes {
		preview = preview[:summaryPreviewRunes]
	}
	return fmt.Sprintf("This is a summary of: %s...", string(preview)), nil
}

func (EchoTutor) Answer(_ context.Context, question, _ string) (string, error) {
	return fmt.Sprintf("Here is the answer to your question: \"%s\"", question), nil
}

// TutorService validates tutor requests and delegates to a Tutor.
type TutorService struct {
	tutor     Tutor
	validator *validator.Validate
}

// NewTutorService constructs a TutorService. A nil tutor selects EchoTutor.
func NewTutorService(tutor Tutor, validate *validator.Validate) *TutorService {
	if tutor == nil {
		tutor = EchoTutor{}
	}
	return &TutorService{tutor: tutor, validator: newValidator(validate)}
}

func (s *TutorService) Summarize(ctx context.Context, req dto.SummarizeRequest) (*dto.SummarizeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "text is required")
	}
	summary, err := s.tutor.Summarize(ctx, req.Text)
	if err != nil {
		return nil, storageError(err, "failed to summarize text")
	}
	return &dto.SummarizeResponse{Summary: summary}, nil
}

func (s *TutorService) Ask(ctx context.Context, req dto.QuestionRequest) (*dto.AnswerResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, validationError(err, "question is required")
	}
	answer, err := s.tutor.Answer(ctx, req.Question, req.Context)
	if err != nil {
		return nil, storageError(err, "failed to answer question")
	}
	return &dto.AnswerResponse{Answer: answer}, nil
}
