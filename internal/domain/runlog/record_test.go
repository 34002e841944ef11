package runlog

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestNewRecord(t *testing.T) {
	executedAt := time.Date(2025, time.November, 15, 6, 30, 45, 0, time.UTC)

	t.Run("document key", func(t *testing.T) {
		r := NewRecord("12345", "Acme SARL", "2025-10", StatusSuccess, "draft entry created: PAIE/2025/11/0042", executedAt)

		assert.Equal(t, "12345_2025-10_20251115T063045", r.ID)
		assert.Equal(t, "12345", r.TenantID)
		assert.Equal(t, "Acme SARL", r.TenantName)
		assert.Equal(t, StatusSuccess, r.Status)
		assert.Equal(t, executedAt, r.ExecutedAt)
	})

	t.Run("timestamps normalized to UTC", func(t *testing.T) {
		paris := time.FixedZone("CET", 3600)
		r := NewRecord("12345", "Acme SARL", "2025-10", StatusSuccess, "", executedAt.In(paris))

		assert.Equal(t, time.UTC, r.ExecutedAt.Location())
		assert.Equal(t, "12345_2025-10_20251115T063045", r.ID)
	})

	t.Run("message truncated", func(t *testing.T) {
		long := strings.Repeat("x", MaxMessageLength+500)
		r := NewRecord("12345", "Acme SARL", "2025-10", StatusErrorOdooRPC, long, executedAt)

		assert.Len(t, r.Message, MaxMessageLength)
	})

	t.Run("truncation keeps the message valid UTF-8", func(t *testing.T) {
		// Accented rune straddling the limit, as in French fault texts
		long := strings.Repeat("a", MaxMessageLength-1) + "écriture comptable introuvable"
		r := NewRecord("12345", "Acme SARL", "2025-10", StatusErrorOdooRPC, long, executedAt)

		assert.True(t, utf8.ValidString(r.Message))
		assert.Len(t, r.Message, MaxMessageLength-1)
		assert.Equal(t, strings.Repeat("a", MaxMessageLength-1), r.Message)
	})
}

func TestStatus_Manual(t *testing.T) {
	assert.Equal(t, Status("MANUAL_SUCCESS"), StatusSuccess.Manual())
	assert.Equal(t, Status("MANUAL_ERROR_ACCOUNT"), StatusErrorAccount.Manual())
}

func TestStatus_IsSuccess(t *testing.T) {
	successes := []Status{
		StatusSuccess,
		StatusSuccessEmpty,
		StatusSuccessNoData,
		StatusSuccess.Manual(),
		StatusSuccessNoData.Manual(),
	}
	for _, s := range successes {
		assert.True(t, s.IsSuccess(), "expected %s to be a success", s)
	}

	failures := []Status{
		StatusErrorConfig,
		StatusErrorAccount,
		StatusErrorJournal,
		StatusErrorOdooRPC,
		StatusErrorUnknown,
		StatusErrorSilaeAuth,
		StatusErrorFunction,
		StatusErrorConfig.Manual(),
	}
	for _, s := range failures {
		assert.False(t, s.IsSuccess(), "expected %s to be a failure", s)
	}
}
