package shipment

import (
	"fmt"
	"regexp"
	"time"

	"warehouse/internal/pkg/errs"
)

// numberPattern matches generated shipment numbers: SHP-<yyyymmdd>-<5 digit sequence>.
var numberPattern = regexp.MustCompile(`^SHP-\d{8}-\d{5}$`)

// GenerateNumber builds a human-readable shipment number for the given date.
// The sequence is reduced modulo 100000 to keep the suffix at five digits;
// global uniqueness is enforced by the unique index on the shipments table,
// not by this function.
func GenerateNumber(date time.Time, seq int64) string {
	return fmt.Sprintf("SHP-%s-%05d", date.Format("20060102"), seq%100000)
}

// ValidateNumber checks that a shipment number has the generated format.
// Numbers are immutable once assigned.
func ValidateNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("shipmentNumber")
	}
	if !numberPattern.MatchString(number) {
		return errs.NewValueIsInvalidErrorWithCause(
			"shipmentNumber", fmt.Errorf("%q does not match SHP-<date>-<sequence>", number))
	}
	return nil
}
