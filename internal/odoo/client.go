// Package odoo implements the ledger gateway: an XML-RPC session against one
// tenant's Odoo instance, scoped to a single company partition, used to
// resolve chart-of-accounts and journal codes and to create draft entries.
package odoo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/kolo/xmlrpc"

	"github.com/payflow-importer/internal/config"
)

// Connection carries one tenant's ERP coordinates. Credentials differ per
// tenant; sessions must never be reused across tenants.
type Connection struct {
	Host      string
	Database  string
	Login     string
	Password  string
	CompanyID int64
}

// AuthError indicates the common endpoint returned no user id
type AuthError struct {
	Host     string
	Database string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("odoo authentication failed (host %s, db %s): check the login and API key", e.Host, e.Database)
}

// RPCError wraps an XML-RPC fault returned by the server
type RPCError struct {
	Code    int
	Message string
}

func (e *RPCError) Error() string {
	return fmt.Sprintf("odoo fault (%d): %s", e.Code, e.Message)
}

// endpointURLs derives the common/object endpoints from the host form.
// Odoo.com SaaS instances expose /xmlrpc/{common,object}; self-hosted
// instances expose the versioned /xmlrpc/2/ paths.
func endpointURLs(host string) (common, object string) {
	if strings.Contains(host, ".odoo.com") {
		return fmt.Sprintf("https://%s/xmlrpc/common", host), fmt.Sprintf("https://%s/xmlrpc/object", host)
	}
	return fmt.Sprintf("https://%s/xmlrpc/2/common", host), fmt.Sprintf("https://%s/xmlrpc/2/object", host)
}

// asFault extracts an XML-RPC fault from an error, if present
func asFault(err error) (*RPCError, bool) {
	var fault xmlrpc.FaultError
	if errors.As(err, &fault) {
		return &RPCError{Code: fault.Code, Message: fault.String}, true
	}
	var faultPtr *xmlrpc.FaultError
	if errors.As(err, &faultPtr) {
		return &RPCError{Code: faultPtr.Code, Message: faultPtr.String}, true
	}
	return nil, false
}

// Dialer opens authenticated sessions against per-tenant Odoo instances
type Dialer struct {
	cfg    config.OdooConfig
	logger *slog.Logger
}

// NewDialer creates a dialer with the shared RPC timeout settings
func NewDialer(logger *slog.Logger, cfg config.OdooConfig) *Dialer {
	return &Dialer{
		cfg:    cfg,
		logger: logger,
	}
}

// transport bounds each RPC round trip. The XML-RPC client has no per-call
// deadline of its own, so the bound lives at the HTTP layer.
func (d *Dialer) transport() http.RoundTripper {
	return &http.Transport{
		DialContext:           (&net.Dialer{Timeout: 10 * time.Second}).DialContext,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: d.cfg.RPCTimeout,
	}
}

// Connect authenticates against the instance's common endpoint and returns a
// session bound to the tenant's company partition.
func (d *Dialer) Connect(ctx context.Context, conn Connection) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	commonURL, objectURL := endpointURLs(conn.Host)

	common, err := xmlrpc.NewClient(commonURL, d.transport())
	if err != nil {
		return nil, fmt.Errorf("odoo common client (%s): %w", conn.Host, err)
	}
	defer common.Close()

	// Odoo returns the user id on success and boolean false on bad
	// credentials, so the reply has to be decoded dynamically.
	var reply interface{}
	err = common.Call("authenticate", []interface{}{conn.Database, conn.Login, conn.Password, map[string]interface{}{}}, &reply)
	if err != nil {
		if fault, ok := asFault(err); ok {
			return nil, fault
		}
		return nil, fmt.Errorf("odoo authenticate (%s): %w", conn.Host, err)
	}
	uid, ok := reply.(int64)
	if !ok || uid == 0 {
		return nil, &AuthError{Host: conn.Host, Database: conn.Database}
	}

	object, err := xmlrpc.NewClient(objectURL, d.transport())
	if err != nil {
		return nil, fmt.Errorf("odoo object client (%s): %w", conn.Host, err)
	}

	d.logger.Debug("odoo session opened",
		"host", conn.Host,
		"db", conn.Database,
		"uid", uid,
		"company_id", conn.CompanyID,
	)

	return &Session{
		object:    object,
		database:  conn.Database,
		password:  conn.Password,
		uid:       uid,
		companyID: conn.CompanyID,
		logger:    d.logger,
	}, nil
}

// Session is one authenticated, company-scoped connection to an Odoo
// instance. All calls go through execute, which restricts the operation
// context to exactly one allowed company.
type Session struct {
	object    *xmlrpc.Client
	database  string
	password  string
	uid       int64
	companyID int64
	logger    *slog.Logger
}

// Close releases the underlying RPC client
func (s *Session) Close() error {
	return s.object.Close()
}

// execute performs one execute_kw call. The company scope is injected as a
// fresh context value on every call; caller kwargs are copied, never mutated.
func (s *Session) execute(ctx context.Context, model, method string, args []interface{}, kwargs map[string]interface{}, result interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	scoped := make(map[string]interface{}, len(kwargs)+1)
	for k, v := range kwargs {
		scoped[k] = v
	}
	scoped["context"] = map[string]interface{}{
		"allowed_company_ids": []int64{s.companyID},
	}

	if result == nil {
		var discard interface{}
		result = &discard
	}

	params := []interface{}{s.database, s.uid, s.password, model, method, args, scoped}
	if err := s.object.Call("execute_kw", params, result); err != nil {
		if fault, ok := asFault(err); ok {
			return fault
		}
		return fmt.Errorf("odoo %s.%s: %w", model, method, err)
	}
	return nil
}
