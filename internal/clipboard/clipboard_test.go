package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/grailbio/dsview/internal/dsverrors"
)

// Detect's actual outcome depends on whether the test host has a
// clipboard helper installed, so this only checks the two outcomes are
// mutually exclusive and that failure is reported with the right Kind.
func TestDetectReturnsWriterXorNotImplemented(t *testing.T) {
	w, err := Detect()
	if err != nil {
		assert.Nil(t, w)
		assert.True(t, dsverrors.Is(dsverrors.NotImplemented, err))
		return
	}
	assert.NotNil(t, w)
}
