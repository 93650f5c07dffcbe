package aierr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorMatchesSentinelForKind(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := fmt.Errorf("wrapped: %w", Upstream("suggest_headline", cause))

	assert.ErrorIs(t, err, ErrUpstreamUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrValidationFailed)
	assert.NotErrorIs(t, err, ErrOutputContractViolated)

	kind, ok := KindOf(err)
	assert.True(t, ok)
	assert.Equal(t, KindUpstream, kind)
}

func TestKindOfUnclassified(t *testing.T) {
	_, ok := KindOf(errors.New("boom"))
	assert.False(t, ok)
}

func TestErrorMessage(t *testing.T) {
	err := Contract("generate_quiz", errors.New("questions[0].options must have at least 4 items"))
	assert.Equal(t, "generate_quiz: output_contract_violated: questions[0].options must have at least 4 items", err.Error())
	assert.Equal(t, "parse_resume: validation_failed", (&Error{Kind: KindValidation, Flow: "parse_resume"}).Error())
}
