package response

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPage(t *testing.T) {
	assert.Equal(t, Page{Total: 0, Page: 1, Size: 10}, NewPage(0, 1, 10))
	assert.Equal(t, 3, NewPage(21, 1, 10).NumberOfPages)
	assert.Equal(t, 2, NewPage(20, 2, 10).NumberOfPages)
	assert.Zero(t, NewPage(5, 1, 0).NumberOfPages)
}

func TestToPaginationResponseNeverNull(t *testing.T) {
	res := ToPaginationResponse[string](nil, 0, 1, 10)
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.Equal(t, "success", res.Message)
}
