package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"docsearch/internal/domain"
)

// SourceReport records the outcome of one fetcher.
type SourceReport struct {
	Source    string
	Documents int
	Err       error
}

// IngestReport summarizes an Ingest run in fetcher order.
type IngestReport struct {
	Sources []SourceReport
	Added   int
}

// Ingest runs the fetchers concurrently and appends their documents to corpus
// in fetcher order. A failing fetcher does not prevent the others from being
// added; an error is returned only when every fetcher failed.
func Ingest(ctx context.Context, corpus *domain.Corpus, log *logrus.Entry, fetchers ...domain.Fetcher) (IngestReport, error) {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	log = log.WithField("component", "ingest")

	batches := make([][]domain.Document, len(fetchers))
	errs := make([]error, len(fetchers))

	g, gctx := errgroup.WithContext(ctx)
	for i, f := range fetchers {
		g.Go(func() error {
			docs, err := f.Fetch(gctx)
			if err != nil {
				errs[i] = fmt.Errorf("%s: %w", f.Name(), err)
				return nil
			}
			batches[i] = docs
			return nil
		})
	}
	_ = g.Wait()

	report := IngestReport{Sources: make([]SourceReport, len(fetchers))}
	failed := 0
	for i, f := range fetchers {
		report.Sources[i] = SourceReport{Source: f.Name(), Documents: len(batches[i]), Err: errs[i]}
		if errs[i] != nil {
			failed++
			log.WithError(errs[i]).WithField("source", f.Name()).Warn("fetch failed")
			continue
		}
		for _, d := range batches[i] {
			corpus.Add(d)
		}
		report.Added += len(batches[i])
		log.WithFields(logrus.Fields{"source": f.Name(), "documents": len(batches[i])}).Info("fetched")
	}
	if len(fetchers) > 0 && failed == len(fetchers) {
		return report, fmt.Errorf("all sources failed: %w", errors.Join(errs...))
	}
	return report, nil
}
