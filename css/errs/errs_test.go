package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIs(t *testing.T) {
	err := TypeMismatchf("attr() in attr() fallback")
	assert.True(t, errors.Is(err, ErrTypeMismatch))
	assert.False(t, errors.Is(err, ErrSyntax))

	wrapped := fmt.Errorf("parsing width: %w", err)
	assert.True(t, errors.Is(wrapped, ErrTypeMismatch))
	assert.Equal(t, TypeMismatch, KindOf(wrapped))
	assert.Equal(t, Kind(0), KindOf(errors.New("other")))

	assert.Equal(t, "SyntaxError: empty value", Syntaxf("empty value").Error())
}
