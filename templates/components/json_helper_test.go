package components

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, JSON(map[string]int{"a": 1}))
	assert.Equal(t, "{}", JSON(make(chan int)))
}

func TestCSRFHeaders(t *testing.T) {
	assert.Equal(t, `{"X-CSRF-Token":"abc"}`, CSRFHeaders("abc"))
}
