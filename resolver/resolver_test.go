package resolver

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"pscan/scanner"
)

func TestLookup(t *testing.T) {
	t.Run("IPv4 literal is parsed directly", func(t *testing.T) {
		ip, err := Lookup("93.184.216.34")
		assert.NoError(t, err)
		assert.Equal(t, "93.184.216.34", ip.String())
	})

	t.Run("IPv6 literal is rejected", func(t *testing.T) {
		_, err := Lookup("::1")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, scanner.ErrKind(scanner.OnlyIpv4TargetSupported)))
	})

	t.Run("unresolvable hostname reports ResolverFailed", func(t *testing.T) {
		_, err := Lookup("this-hostname-should-not-exist.invalid")
		assert.Error(t, err)
		assert.True(t, errors.Is(err, scanner.ErrKind(scanner.ResolverFailed)))
	})
}
