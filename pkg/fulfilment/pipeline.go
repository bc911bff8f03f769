package fulfilment

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"github.com/comfforts/logger"

	"github.com/pressrun/fulfilment-orchestra/pkg/domain"
	"github.com/pressrun/fulfilment-orchestra/pkg/utils"
)

// ObjectStore is the object-storage surface the pipeline consumes: input
// exports are opened through NewReader, finalized destination files are
// persisted through Upload.
type ObjectStore interface {
	NewReader(ctx context.Context, key string) (io.ReadCloser, error)
	Upload(ctx context.Context, key string, body io.Reader) (string, error)
}

// State is the pipeline's current stage. Failed is terminal and reachable
// from every stage.
type State string

const (
	StateResolvingDate         State = "resolving-date"
	StateLocatingInputStreams  State = "locating-input-streams"
	StateBuildingSuspensionSet State = "building-suspension-set"
	StateStreamingRows         State = "streaming-rows"
	StateFinalizing            State = "finalizing"
	StateDone                  State = "done"
	StateFailed                State = "failed"
)

const ErrMsgUploadFailed = "fulfilment: error uploading destination file"

var ErrUploadFailed = errors.New(ErrMsgUploadFailed)

// Plan describes one fulfilment run: which logical queries feed it, how a
// raw record parses into the run's row type, and which destinations receive
// rows. Plans are built fresh per run from run configuration.
type Plan[T any] struct {
	Fulfilment          domain.FulfilmentType
	Product             string   // filename product tag
	SubscriptionQueries []string // ordered; concatenated into one logical stream
	SuspensionsQuery    string
	InputPrefix         string // storage prefix the manifest file names resolve under
	Parse               func(rec map[string]string) T
	Key                 func(row T) string // join key against the suspension set
	Validate            func(row T, counters *domain.ValidationCounters)
	Destinations        []Destination[T] // evaluated in declared order; nil predicate = fallback
}

// Pipeline streams subscription exports into per-destination output files
// for one delivery-date batch. One pipeline handles one run; no state is
// shared across invocations.
type Pipeline[T any] struct {
	store ObjectStore
	plan  Plan[T]
	state State
}

func NewPipeline[T any](store ObjectStore, plan Plan[T]) *Pipeline[T] {
	return &Pipeline[T]{
		store: store,
		plan:  plan,
		state: StateResolvingDate,
	}
}

// State reports the stage the pipeline last reached.
func (p *Pipeline[T]) State() State { return p.state }

// destinationBuffer accumulates one destination's output during streaming.
type destinationBuffer struct {
	buf  bytes.Buffer
	w    *csv.Writer
	rows int
}

// Run executes one full pass: resolve the delivery date, locate the input
// streams named by the manifest, drain the suspension export, stream every
// subscription row to its destination, then finalize and upload each output
// file. The suspension stream is fully drained before row streaming begins;
// every eligibility decision depends on complete set membership.
func (p *Pipeline[T]) Run(
	ctx context.Context,
	jobID string,
	dateInput DeliveryDateInput,
	now time.Time,
	manifest []domain.QueryResult,
) (*domain.RunReport, error) {
	l, err := logger.LoggerFromContext(ctx)
	if err != nil {
		l = logger.GetSlogLogger()
	}

	report := &domain.RunReport{
		JobID:      jobID,
		Fulfilment: p.plan.Fulfilment,
	}

	p.state = StateResolvingDate
	date, err := ResolveDeliveryDate(dateInput, now)
	if err != nil {
		p.state = StateFailed
		return report, err
	}
	report.DeliveryDate = date.Format(DeliveryDateFormat)

	p.state = StateLocatingInputStreams
	expected := domain.NewOrderedSet(p.plan.SubscriptionQueries...)
	expected.Add(p.plan.SuspensionsQuery)
	files, err := ResolveQueryFiles(manifest, expected)
	if err != nil {
		p.state = StateFailed
		return report, err
	}

	p.state = StateBuildingSuspensionSet
	suspended, err := p.buildSuspensions(ctx, files[p.plan.SuspensionsQuery])
	if err != nil {
		p.state = StateFailed
		return report, fmt.Errorf("query %s: %w", p.plan.SuspensionsQuery, err)
	}
	l.Debug("suspension set built", "fulfilment", string(p.plan.Fulfilment), "suspended", suspended.Size())

	p.state = StateStreamingRows
	buffers := make([]*destinationBuffer, len(p.plan.Destinations))
	for i, d := range p.plan.Destinations {
		db := &destinationBuffer{}
		db.w = csv.NewWriter(&db.buf)
		if err := db.w.Write(d.Headers); err != nil {
			p.state = StateFailed
			return report, err
		}
		buffers[i] = db
	}

	counters := domain.NewValidationCounters(p.plan.Fulfilment)
	for _, query := range p.plan.SubscriptionQueries {
		if err := p.streamQuery(ctx, query, files[query], suspended, buffers, counters, report); err != nil {
			p.state = StateFailed
			return report, fmt.Errorf("query %s: %w", query, err)
		}
	}

	p.state = StateFinalizing
	report.Validation = counters.Counts
	if err := p.finalize(ctx, date, buffers, report); err != nil {
		p.state = StateFailed
		return report, err
	}

	l.Debug(
		"fulfilment run finished",
		"fulfilment", string(p.plan.Fulfilment),
		"delivery-date", report.DeliveryDate,
		"rows", report.RowsProcessed,
		"suspended", report.RowsSuspended,
		"skipped", report.RowsSkipped,
	)
	p.state = StateDone
	return report, nil
}

func (p *Pipeline[T]) inputKey(fileName string) string {
	return path.Join(p.plan.InputPrefix, fileName)
}

func (p *Pipeline[T]) buildSuspensions(ctx context.Context, fileName string) (domain.Set[string], error) {
	rc, err := p.store.NewReader(ctx, p.inputKey(fileName))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	defer rc.Close()

	return BuildSuspensionSet(ctx, rc)
}

// streamQuery drains one subscription export. Malformed rows skip-and-log;
// suspended rows are dropped; everything else is routed to exactly one
// destination buffer.
func (p *Pipeline[T]) streamQuery(
	ctx context.Context,
	query, fileName string,
	suspended domain.Set[string],
	buffers []*destinationBuffer,
	counters *domain.ValidationCounters,
	report *domain.RunReport,
) error {
	l, err := logger.LoggerFromContext(ctx)
	if err != nil {
		l = logger.GetSlogLogger()
	}

	rc, err := p.store.NewReader(ctx, p.inputKey(fileName))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	defer rc.Close()

	cr := csv.NewReader(rc)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		// empty export contributes no rows
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSourceRead, err)
	}
	headers := utils.CleanHeaders(header)

	for {
		values, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				report.RowsSkipped++
				l.Debug("data-invalid row skipped", "query", query, "error", err.Error())
				continue
			}
			return fmt.Errorf("%w: %v", ErrSourceRead, err)
		}

		row := p.plan.Parse(utils.RecordToMap(headers, values))
		key := strings.TrimSpace(p.plan.Key(row))
		if key == "" {
			report.RowsSkipped++
			l.Debug("row without subscription name skipped", "query", query)
			continue
		}
		if suspended.Has(key) {
			report.RowsSuspended++
			continue
		}

		p.plan.Validate(row, counters)

		i := Route(p.plan.Destinations, row)
		if i < 0 {
			report.RowsSkipped++
			l.Error("row matched no destination and no fallback is configured", "query", query, "subscription", key)
			continue
		}
		if err := buffers[i].w.Write(p.plan.Destinations[i].Format(row)); err != nil {
			return err
		}
		buffers[i].rows++
		report.RowsProcessed++
	}

	return nil
}

// finalize flushes every destination buffer, names each output file and
// uploads them concurrently. All uploads are waited on; the first failure is
// returned but files uploaded before it stay in place, since deterministic
// names make re-runs overwrite.
func (p *Pipeline[T]) finalize(ctx context.Context, date time.Time, buffers []*destinationBuffer, report *domain.RunReport) error {
	type uploadResult struct {
		file domain.OutputFile
		err  error
	}

	results := make(chan uploadResult, len(buffers))
	for i := range p.plan.Destinations {
		d := p.plan.Destinations[i]
		db := buffers[i]

		db.w.Flush()
		if err := db.w.Error(); err != nil {
			return err
		}

		go func() {
			name := GenerateFilename(date, p.plan.Product, d.Country, "")
			key := path.Join(d.Folder, name)
			location, err := p.store.Upload(ctx, key, bytes.NewReader(db.buf.Bytes()))
			if err != nil {
				results <- uploadResult{err: fmt.Errorf("%w: %s: %v", ErrUploadFailed, d.Name, err)}
				return
			}
			results <- uploadResult{file: domain.OutputFile{
				Destination: d.Name,
				Folder:      d.Folder,
				FileName:    name,
				Location:    location,
				Rows:        db.rows,
			}}
		}()
	}

	var firstErr error
	for range buffers {
		res := <-results
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
			}
			continue
		}
		report.Files = append(report.Files, res.file)
	}
	sort.Slice(report.Files, func(i, j int) bool {
		return report.Files[i].Destination < report.Files[j].Destination
	})

	return firstErr
}
