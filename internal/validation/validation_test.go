package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, ValidateUsername("valid_user1"))
	assert.NoError(t, ValidateUsername("abc"))

	assert.Error(t, ValidateUsername("ab"))
	assert.Error(t, ValidateUsername("has space"))
	assert.Error(t, ValidateUsername("bad-dash"))
	assert.Error(t, ValidateUsername(""))
}

func TestValidatePassword(t *testing.T) {
	assert.NoError(t, ValidatePassword("password123"))

	assert.Error(t, ValidatePassword("short"))
	assert.Error(t, ValidatePassword(""))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("user@example.com"))

	assert.Error(t, ValidateEmail("not-an-email"))
	assert.Error(t, ValidateEmail(""))
}

func TestSanitizeContent(t *testing.T) {
	t.Run("StripsScripts", func(t *testing.T) {
		out := SanitizeContent(`hello <script>alert("x")</script>world`)
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "hello")
	})

	t.Run("KeepsPlainText", func(t *testing.T) {
		assert.Equal(t, "just text", SanitizeContent("just text"))
	})

	t.Run("StripsEventHandlers", func(t *testing.T) {
		out := SanitizeContent(`<img src="x" onerror="alert(1)">`)
		assert.NotContains(t, out, "onerror")
	})
}
