package scanner

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScanErrorFormatting(t *testing.T) {
	t.Run("bare message with no cause", func(t *testing.T) {
		err := newErr(InvalidPort, "port must be a u16")
		assert.Equal(t, "port must be a u16", err.Error())
		assert.Nil(t, err.Unwrap())
	})

	t.Run("wrapped cause is appended", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := wrapErr(PacketSendFailed, "send SYN to 10.0.0.1:22", cause)
		assert.Equal(t, "send SYN to 10.0.0.1:22: connection refused", err.Error())
		assert.Equal(t, cause, err.Unwrap())
	})
}

func TestScanErrorIs(t *testing.T) {
	err := newErr(NormalUserRequired, "SYN scanning needs CAP_NET_RAW")

	assert.True(t, errors.Is(err, ErrKind(NormalUserRequired)))
	assert.False(t, errors.Is(err, ErrKind(InvalidPort)))
	assert.False(t, errors.Is(err, errors.New("unrelated")))
}
