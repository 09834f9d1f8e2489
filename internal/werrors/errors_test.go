package werrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIoErrorUnwrapsToCause(t *testing.T) {
	cause := errors.New("disk full")
	err := NewIoError("/tmp/x", cause)
	assert.ErrorIs(t, err, cause)
}

func TestErrorMessagesNameTheOffendingValue(t *testing.T) {
	assert.Contains(t, (&NotInVocabulary{Word: "xyzzy"}).Error(), "xyzzy")
	assert.Contains(t, (&LengthMismatch{Len1: 2, Len2: 5}).Error(), "2")
	assert.Contains(t, (&LengthMismatch{Len1: 2, Len2: 5}).Error(), "5")
	assert.Contains(t, (&InvalidConfig{Reason: "bad"}).Error(), "bad")
	assert.Contains(t, (&CorruptModel{Reason: "bad"}).Error(), "bad")
}
