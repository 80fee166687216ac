package utils

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"
	"time"

	"hims-service/internal/pkg/constvars"

	"github.com/google/uuid"
)

// GenerateTransactionID returns an 8-character uppercase charge slip id
// derived from a random UUID.
func GenerateTransactionID() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return strings.ToUpper(id[:8])
}

// GenerateBillNumber returns `<year>-<5-digit random>` for the given year.
func GenerateBillNumber(year int) (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(100000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(constvars.BillNumberFormat, year, n.Int64()), nil
}

// GenerateAdmittingID returns ADMT followed by the uppercase base-36
// millisecond timestamp, matching existing admission records.
func GenerateAdmittingID(now time.Time) string {
	ts := strconv.FormatInt(now.UnixMilli(), 36)
	return constvars.AdmittingIDPrefix + strings.ToUpper(ts)
}

// FormatORNumber renders a sequence value as an official receipt number.
func FormatORNumber(year int, seq int64) string {
	return fmt.Sprintf(constvars.ORNumberFormat, year, seq)
}

func GenerateRequestID() string {
	return uuid.NewString()
}

// ChargeSlipFingerprint hashes the content of a charge slip so that an
// identical resubmission maps to the same replay key regardless of service
// ordering.
func ChargeSlipFingerprint(patientID, categoryID string, serviceKeys []string) string {
	keys := make([]string, len(serviceKeys))
	copy(keys, serviceKeys)
	sort.Strings(keys)

	h := sha256.New()
	h.Write([]byte(patientID))
	h.Write([]byte{0})
	h.Write([]byte(categoryID))
	for _, k := range keys {
		h.Write([]byte{0})
		h.Write([]byte(k))
	}
	return hex.EncodeToString(h.Sum(nil))
}
