package utils

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateTransactionID(t *testing.T) {
	id := GenerateTransactionID()

	assert.Len(t, id, 8)
	assert.Equal(t, strings.ToUpper(id), id)
	assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{8}$`), id)
}

func TestGenerateBillNumber(t *testing.T) {
	billNumber, err := GenerateBillNumber(2026)
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^2026-\d{5}$`), billNumber)
}

func TestGenerateAdmittingID(t *testing.T) {
	now := time.Date(2026, time.March, 15, 10, 30, 0, 0, time.UTC)

	id := GenerateAdmittingID(now)

	assert.True(t, strings.HasPrefix(id, "ADMT"))
	assert.Equal(t, strings.ToUpper(id), id)

	again := GenerateAdmittingID(now)
	assert.Equal(t, id, again, "same instant should produce the same id")

	later := GenerateAdmittingID(now.Add(time.Second))
	assert.NotEqual(t, id, later)
}

func TestFormatORNumber(t *testing.T) {
	assert.Equal(t, "OR-2026-00001", FormatORNumber(2026, 1))
	assert.Equal(t, "OR-2026-00042", FormatORNumber(2026, 42))
	assert.Equal(t, "OR-2025-12345", FormatORNumber(2025, 12345))
}

func TestChargeSlipFingerprint(t *testing.T) {
	t.Run("identical content matches", func(t *testing.T) {
		a := ChargeSlipFingerprint("P0001", "LAB", []string{"Lab|CBC|150", "Lab|Urinalysis|80"})
		b := ChargeSlipFingerprint("P0001", "LAB", []string{"Lab|CBC|150", "Lab|Urinalysis|80"})
		assert.Equal(t, a, b)
	})

	t.Run("service order is irrelevant", func(t *testing.T) {
		a := ChargeSlipFingerprint("P0001", "LAB", []string{"Lab|CBC|150", "Lab|Urinalysis|80"})
		b := ChargeSlipFingerprint("P0001", "LAB", []string{"Lab|Urinalysis|80", "Lab|CBC|150"})
		assert.Equal(t, a, b)
	})

	t.Run("different patient differs", func(t *testing.T) {
		a := ChargeSlipFingerprint("P0001", "LAB", []string{"Lab|CBC|150"})
		b := ChargeSlipFingerprint("P0002", "LAB", []string{"Lab|CBC|150"})
		assert.NotEqual(t, a, b)
	})

	t.Run("field boundaries are unambiguous", func(t *testing.T) {
		a := ChargeSlipFingerprint("P0001", "LABX", []string{"svc"})
		b := ChargeSlipFingerprint("P0001", "LAB", []string{"Xsvc"})
		assert.NotEqual(t, a, b)
	})
}
