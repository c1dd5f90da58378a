package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	xhtml2pdf "github.com/alnah/go-xhtml2pdf"
)

// Converter is the interface for the conversion service.
type Converter interface {
	Convert(ctx context.Context, input xhtml2pdf.Input) (*xhtml2pdf.Result, error)
}

// Compile-time interface implementation check.
var _ Converter = (*xhtml2pdf.Service)(nil)

// Pool abstracts service pool operations for testability.
type Pool interface {
	Acquire() (Converter, error)
	Release(Converter)
	Size() int
}

// poolAdapter adapts the library's ServicePool to the Pool interface.
type poolAdapter struct {
	pool *xhtml2pdf.ServicePool
}

func newPoolAdapter(p *xhtml2pdf.ServicePool) *poolAdapter {
	return &poolAdapter{pool: p}
}

// Compile-time check that poolAdapter implements Pool.
var _ Pool = (*poolAdapter)(nil)

func (a *poolAdapter) Acquire() (Converter, error) {
	return a.pool.Acquire()
}

func (a *poolAdapter) Release(c Converter) {
	if svc, ok := c.(*xhtml2pdf.Service); ok {
		a.pool.Release(svc)
	}
}

func (a *poolAdapter) Size() int {
	return a.pool.Size()
}

// ConversionResult holds the outcome of a single conversion.
type ConversionResult struct {
	InputPath   string
	OutputPath  string
	Orientation xhtml2pdf.Orientation
	Scale       float64
	Err         error
	Duration    time.Duration
}

// convertBatch processes files concurrently using the service pool.
func convertBatch(ctx context.Context, pool Pool, files []FileToConvert, params *conversionParams) []ConversionResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := pool.Size()
	if concurrency > len(files) {
		concurrency = len(files)
	}

	results := make([]ConversionResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			svc, err := pool.Acquire()
			if err != nil {
				// Service creation failed, mark remaining jobs as failed
				for idx := range jobs {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       err,
					}
				}
				return
			}
			defer pool.Release(svc)

			for idx := range jobs {
				if ctx.Err() != nil {
					results[idx] = ConversionResult{
						InputPath: files[idx].InputPath,
						Err:       ctx.Err(),
					}
					continue
				}
				results[idx] = convertFile(ctx, svc, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// convertFile processes a single file and returns the result.
func convertFile(ctx context.Context, service Converter, f FileToConvert, params *conversionParams) ConversionResult {
	start := time.Now()
	result := ConversionResult{
		InputPath:  f.InputPath,
		OutputPath: f.OutputPath,
	}

	outDir := filepath.Dir(f.OutputPath)
	if err := os.MkdirAll(outDir, dirPermissions); err != nil {
		result.Err = fmt.Errorf("creating output directory: %w", err)
		result.Duration = time.Since(start)
		return result
	}

	converted, err := service.Convert(ctx, xhtml2pdf.Input{
		Path:          f.InputPath,
		NoBackground:  params.noBackground,
		StripDataURIs: params.stripDataURIs,
	})
	if err != nil {
		result.Err = err
		result.Duration = time.Since(start)
		return result
	}
	result.Orientation = converted.Decision.Orientation
	result.Scale = converted.Decision.Scale

	// #nosec G306 -- PDFs are meant to be readable
	if err := os.WriteFile(f.OutputPath, converted.PDF, filePermissions); err != nil {
		result.Err = fmt.Errorf("%w: %v", ErrWritePDF, err)
		result.Duration = time.Since(start)
		return result
	}

	result.Duration = time.Since(start)
	return result
}

// printResults outputs conversion results using the provided writers.
func printResults(results []ConversionResult, quiet, verbose bool, deps *Dependencies) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(deps.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(deps.Stdout, "%s -> %s [%s scale=%.3f] (%v)\n",
				r.InputPath, r.OutputPath, r.Orientation, r.Scale, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(deps.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(deps.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
