package odoo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/kolo/xmlrpc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEndpointURLs(t *testing.T) {
	t.Run("odoo.com saas host", func(t *testing.T) {
		common, object := endpointURLs("acme.odoo.com")
		assert.Equal(t, "https://acme.odoo.com/xmlrpc/common", common)
		assert.Equal(t, "https://acme.odoo.com/xmlrpc/object", object)
	})

	t.Run("self-hosted instance", func(t *testing.T) {
		common, object := endpointURLs("erp.acme.fr")
		assert.Equal(t, "https://erp.acme.fr/xmlrpc/2/common", common)
		assert.Equal(t, "https://erp.acme.fr/xmlrpc/2/object", object)
	})
}

func TestAsFault(t *testing.T) {
	t.Run("fault value", func(t *testing.T) {
		err := fmt.Errorf("call failed: %w", xmlrpc.FaultError{Code: 2, String: "Access Denied"})

		fault, ok := asFault(err)
		require.True(t, ok)
		assert.Equal(t, 2, fault.Code)
		assert.Equal(t, "Access Denied", fault.Message)
	})

	t.Run("fault pointer", func(t *testing.T) {
		err := fmt.Errorf("call failed: %w", &xmlrpc.FaultError{Code: 1, String: "Internal Server Error"})

		fault, ok := asFault(err)
		require.True(t, ok)
		assert.Equal(t, 1, fault.Code)
	})

	t.Run("plain error", func(t *testing.T) {
		_, ok := asFault(errors.New("connection refused"))
		assert.False(t, ok)
	})
}

func TestErrorMessages(t *testing.T) {
	authErr := &AuthError{Host: "acme.odoo.com", Database: "acme-prod"}
	assert.Contains(t, authErr.Error(), "acme.odoo.com")
	assert.Contains(t, authErr.Error(), "acme-prod")

	rpcErr := &RPCError{Code: 2, Message: "Access Denied"}
	assert.Contains(t, rpcErr.Error(), "Access Denied")
}
