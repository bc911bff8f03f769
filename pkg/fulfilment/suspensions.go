package fulfilment

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/comfforts/logger"

	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
	"github.com/pressrun/fulfilment-orchestra/pkg/utils"
)

// SuspensionKeyColumn is the holiday-suspension export column holding the
// suspended subscription's name. Other columns are ignored.
const SuspensionKeyColumn = "Subscription.Name"

const ErrMsgSourceRead = "fulfilment: error reading source stream"

var ErrSourceRead = errors.New(ErrMsgSourceRead)

// BuildSuspensionSet drains a holiday-suspension CSV export into the set of
// suspended subscription names. Single streaming pass, no buffering beyond
// the set. Rows missing the key column are skipped and logged; only stream
// errors abort.
func BuildSuspensionSet(ctx context.Context, r io.Reader) (domain.Set[string], error) {
	l, err := logger.LoggerFromContext(ctx)
	if err != nil {
		l = logger.GetSlogLogger()
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	suspended := domain.NewSet[string]()

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		// empty export: nothing suspended
		return suspended, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}

	keyIdx := -1
	for i, h := range utils.CleanHeaders(header) {
		if h == SuspensionKeyColumn {
			keyIdx = i
			break
		}
	}
	if keyIdx < 0 {
		l.Error("suspension export missing key column", "column", SuspensionKeyColumn)
		return suspended, nil
	}

	skipped := 0
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				skipped++
				l.Debug("suspension row skipped", "error", err.Error())
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
		}

		if keyIdx >= len(rec) {
			skipped++
			continue
		}
		name := strings.TrimSpace(rec[keyIdx])
		if name == "" {
			skipped++
			continue
		}
		suspended.Add(name)
	}

	if skipped > 0 {
		l.Debug("suspension rows without subscription name", "skipped", skipped)
	}
	return suspended, nil
}
