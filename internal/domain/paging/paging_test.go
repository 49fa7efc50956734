package paging

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewResult(t *testing.T) {
	assert.Equal(t, Result{Page: 2, Limit: 10, Total: 21, TotalPages: 3}, NewResult(Request{Page: 2, Limit: 10}, 21))
	assert.Equal(t, 0, NewResult(Request{Page: 1, Limit: 10}, 0).TotalPages)
}

func TestSlice(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}

	assert.Equal(t, []int{1, 2}, Slice(items, Request{Page: 1, Limit: 2}))
	assert.Equal(t, []int{5}, Slice(items, Request{Page: 3, Limit: 2}))
	assert.Empty(t, Slice(items, Request{Page: 4, Limit: 2}))
}
