package pdf

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/hashicorp/go-multierror"
)

// Converter turns a filled workbook into paginated PDF bytes.
type Converter interface {
	Name() string
	Available() bool
	Convert(ctx context.Context, workbook []byte) ([]byte, error)
}

// ErrUnavailable means no conversion backend produced a document.
var ErrUnavailable = errors.New("PDF 변환 도구를 찾을 수 없습니다")

// Chain tries its backends in order and returns the first successful
// conversion. Failures are aggregated into the final error.
type Chain struct {
	backends []Converter
}

func NewChain(backends ...Converter) *Chain { return &Chain{backends: backends} }

func (c *Chain) Convert(ctx context.Context, workbook []byte) ([]byte, error) {
	var errs *multierror.Error
	for _, b := range c.backends {
		if !b.Available() {
			continue
		}
		out, err := b.Convert(ctx, workbook)
		if err == nil {
			return out, nil
		}
		log.Printf("pdf convert: %s failed: %v", b.Name(), err)
		errs = multierror.Append(errs, fmt.Errorf("%s: %w", b.Name(), err))
	}
	if errs == nil {
		return nil, ErrUnavailable
	}
	return nil, fmt.Errorf("%w: %v", ErrUnavailable, errs)
}
