package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edusync-api/internal/dto"
	appErrors "github.com/noah-isme/edusync-api/pkg/errors"
)

type brokenTutor struct{}

func (brokenTutor) Summarize(context.Context, string) (string, error) {
	return "", errors.New("model offline")
}

func (brokenTutor) Answer(context.Context, string, string) (string, error) {
	return "", errors.New("model offline")
}

func TestTutorServiceEcho(t *testing.T) {
	svc := NewTutorService(nil, nil)

	summary, err := svc.Summarize(context.Background(), dto.SummarizeRequest{Text: strings.Repeat("é", 60)})
	require.NoError(t, err)
	assert.Equal(t, "This is a summary of: "+strings.Repeat("é", 50)+"...", summary.Summary)

	answer, err := svc.Ask(context.Background(), dto.QuestionRequest{Question: "What is 2+2?"})
	require.NoError(t, err)
	assert.Equal(t, `Here is the answer to your question: "What is 2+2?"`, answer.Answer)
}

func TestTutorServiceValidation(t *testing.T) {
	svc := NewTutorService(nil, nil)
	_, err := svc.Summarize(context.Background(), dto.SummarizeRequest{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
	_, err = svc.Ask(context.Background(), dto.QuestionRequest{})
	assert.ErrorIs(t, err, appErrors.ErrValidation)
}

func TestTutorServiceBackendFailure(t *testing.T) {
	svc := NewTutorService(brokenTutor{}, nil)
	_, err := svc.Ask(context.Background(), dto.QuestionRequest{Question: "why"})
	assert.ErrorIs(t, err, appErrors.ErrInternal)
}
