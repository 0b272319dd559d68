package services

import (
	"regexp"
	"strings"
	"testing"

	"roomstay/constants"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateReference_Format(t *testing.T) {
	pattern := regexp.MustCompile(`^RSV\d+[0-9A-HJ-NP-Z]{4}$`)

	for i := 0; i < 100; i++ {
		ref := GenerateReference()
		require.True(t, strings.HasPrefix(ref, constants.ReferencePrefix), "reference %q thiếu tiền tố", ref)
		assert.Regexp(t, pattern, ref)
		// Hậu tố không chứa I và O để tránh nhầm với 1 và 0
		suffix := ref[len(ref)-4:]
		assert.NotContains(t, suffix, "I")
		assert.NotContains(t, suffix, "O")
	}
}
