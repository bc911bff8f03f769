package fulfilment

import (
	"errors"
	"strings"
	"time"
)

// Product tags used as the filename product token.
const (
	ProductHomeDelivery = "HOME_DELIVERY"
	ProductWeekly       = "WEEKLY"
)

// DefaultExtension for generated fulfilment files.
const DefaultExtension = "csv"

const ErrMsgInvalidFileName = "fulfilment: file name has no leading delivery date"

var ErrInvalidFileName = errors.New(ErrMsgInvalidFileName)

// GenerateFilename builds a deterministic output filename by joining the
// non-empty parts of [ISO date, product, country] with underscores and
// appending the extension. An empty extension means DefaultExtension.
func GenerateFilename(date time.Time, product, country, extension string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{date.Format(DeliveryDateFormat), product, country} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if extension == "" {
		extension = DefaultExtension
	}
	return strings.Join(parts, "_") + "." + extension
}

// DateFromFilename extracts the delivery date back out of a generated
// filename. Paired with GenerateFilename for format stability.
func DateFromFilename(name string) (time.Time, error) {
	token, _, found := strings.Cut(name, "_")
	if !found {
		return time.Time{}, ErrInvalidFileName
	}
	d, err := time.Parse(DeliveryDateFormat, token)
	if err != nil {
		return time.Time{}, ErrInvalidFileName
	}
	return d, nil
}
