package document

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyTheme(t *testing.T) {
	r := NewRoot()
	r.Add("app")

	r.ApplyTheme(true)
	assert.True(t, r.Has(DarkClass))
	assert.Equal(t, []string{"app", "dark"}, r.ClassList())

	r.ApplyTheme(true)
	assert.Equal(t, []string{"app", "dark"}, r.ClassList(), "applying twice keeps one marker")

	r.ApplyTheme(false)
	assert.False(t, r.Has(DarkClass))
	assert.Equal(t, []string{"app"}, r.ClassList())
}
