package docscrape_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fwojciec/docscrape"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := docscrape.Errorf(docscrape.ENOTFOUND, "platform %q not found", "wiki")

	assert.Equal(t, docscrape.ENOTFOUND, docscrape.ErrorCode(err))
	assert.Equal(t, "platform \"wiki\" not found", docscrape.ErrorMessage(err))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("fetching page: %w", docscrape.Errorf(docscrape.EFETCH, "HTTP 503"))

	assert.Equal(t, docscrape.EFETCH, docscrape.ErrorCode(err))
	assert.Equal(t, "HTTP 503", docscrape.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := errors.New("boom")

	assert.Equal(t, docscrape.EINTERNAL, docscrape.ErrorCode(err))
	assert.Equal(t, "Internal error.", docscrape.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docscrape.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, docscrape.ErrorMessage(nil))
}
