package fulfilment

import (
	"errors"
	"fmt"

	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
)

const ErrMsgAmbiguousOrMissingQuery = "fulfilment: ambiguous or missing query result"

var ErrAmbiguousOrMissingQuery = errors.New(ErrMsgAmbiguousOrMissingQuery)

// ResolveQueryFiles maps each expected logical query name to exactly one
// manifest file name. A query matching zero or more than one manifest entry
// rejects the run, naming the query.
func ResolveQueryFiles(manifest []domain.QueryResult, expected *domain.OrderedSet[string]) (map[string]string, error) {
	files := make(map[string]string, expected.Size())
	for _, name := range expected.ToSlice() {
		matches := 0
		fileName := ""
		for _, entry := range manifest {
			if entry.QueryName == name {
				matches++
				fileName = entry.FileName
			}
		}
		if matches != 1 {
			return nil, fmt.Errorf("%w: query %q matched %d manifest entries", ErrAmbiguousOrMissingQuery, name, matches)
		}
		files[name] = fileName
	}
	return files, nil
}
