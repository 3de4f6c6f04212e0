package iconbadge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/esimov/iconbadge/utils"
)

// maxWorkers sets the maximum number of concurrently running workers.
const maxWorkers = 20

// Ops holds the options of a batch run.
type Ops struct {
	Dst     string
	Workers int
	Size    int
	Scale   float64
	Border  float64

	// OnResult, when set, is called from the caller's goroutine after each job.
	OnResult func(Result)
}

// Result holds the outcome of a single job.
type Result struct {
	Job  Job
	Path string
	Err  error
}

// Skipped reports whether the job was not rendered on purpose.
func (r Result) Skipped() bool { return r.Job.Skip != "" }

// Summary counts the outcomes of a batch run.
type Summary struct {
	Rendered int
	Skipped  int
	Failed   int
}

// Execute renders the jobs concurrently and writes each badge as <Dst>/<Node>.png.
// A failing job never stops the batch: it is reported and the next one is processed.
// The returned error is only set when the run could not start at all.
func (p *Processor) Execute(ctx context.Context, jobs []Job, op *Ops) (Summary, error) {
	var sum Summary

	if err := os.MkdirAll(op.Dst, 0755); err != nil {
		return sum, fmt.Errorf("unable to create the destination directory: %w", err)
	}

	// Limit the concurrently running workers to maxWorkers.
	workers := op.Workers
	if workers <= 0 || workers > maxWorkers {
		workers = utils.Min(runtime.NumCPU(), maxWorkers)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	jobc := produce(ctx, jobs)
	res := make(chan Result)

	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			op.consumer(ctx, p, jobc, res)
		}()
	}

	// Close the channel after the values are consumed.
	go func() {
		defer close(res)
		wg.Wait()
	}()

	for r := range res {
		switch {
		case r.Skipped():
			sum.Skipped++
			Logger().Warn("icon skipped", "node", r.Job.Node, "reason", r.Job.Skip)
		case r.Err != nil:
			sum.Failed++
			Logger().Warn("icon failed", "node", r.Job.Node, "icon", r.Job.Icon, "error", r.Err)
		default:
			sum.Rendered++
		}
		if op.OnResult != nil {
			op.OnResult(r)
		}
	}

	return sum, ctx.Err()
}

// produce sends the jobs on the returned channel until they are exhausted or ctx is done.
func produce(ctx context.Context, jobs []Job) <-chan Job {
	jobc := make(chan Job)
	go func() {
		defer close(jobc)
		for _, job := range jobs {
			select {
			case <-ctx.Done():
				return
			case jobc <- job:
			}
		}
	}()
	return jobc
}

// consumer reads the jobs from the channel, renders them and sends the results on a new channel.
func (op *Ops) consumer(
	ctx context.Context,
	p *Processor,
	jobs <-chan Job,
	res chan<- Result,
) {
	for job := range jobs {
		r := Result{Job: job}
		if job.Skip == "" {
			r.Path, r.Err = op.process(ctx, p, job)
		}

		select {
		case <-ctx.Done():
			return
		case res <- r:
		}
	}
}

// process renders a single job and saves it into the destination directory.
func (op *Ops) process(ctx context.Context, p *Processor, job Job) (string, error) {
	fill, err := utils.ParseColor(job.Color)
	if err != nil {
		return "", err
	}

	img, err := p.Render(ctx, RenderRequest{
		Name:   job.Icon,
		Fill:   fill,
		Size:   op.Size,
		Scale:  op.Scale,
		Border: op.Border,
	})
	if err != nil {
		return "", err
	}

	path := filepath.Join(op.Dst, job.Node+".png")
	if err := saveImg(path, img); err != nil {
		return "", err
	}
	return path, nil
}
