package validation

import (
	"runtime"
	"sync"

	"github.com/tokenizando/covenant/protocol/bc"
)

// Spend pairs one proposed spend's preimage context with its request
// parameters.
type Spend struct {
	Ctx *bc.SpendContext
	Req *bc.SpendRequest
}

type validateFunc func(*bc.SpendContext, *bc.SpendRequest) error

type validateSpendWork struct {
	i     int
	spend *Spend
}

// Result carries the verdict for one spend of a batch.
type Result struct {
	i   int
	err error
}

// GetError return the err
func (r *Result) GetError() error {
	return r.err
}

func validateSpendWorker(workCh chan *validateSpendWork, resultCh chan *Result, wg *sync.WaitGroup, validate validateFunc) {
	for work := range workCh {
		resultCh <- &Result{i: work.i, err: validate(work.spend.Ctx, work.spend.Req)}
	}
	wg.Done()
}

func validateSpends(validate validateFunc, spends []*Spend) []*Result {
	size := len(spends)
	workerNum := runtime.NumCPU()
	//init the goroutine validate worker
	var wg sync.WaitGroup
	workCh := make(chan *validateSpendWork, size)
	resultCh := make(chan *Result, size)
	for i := 0; i <= workerNum && i < size; i++ {
		wg.Add(1)
		go validateSpendWorker(workCh, resultCh, &wg, validate)
	}

	//sent the works
	for i, spend := range spends {
		workCh <- &validateSpendWork{i: i, spend: spend}
	}
	close(workCh)

	//collect validate results
	results := make([]*Result, size)
	for i := 0; i < size; i++ {
		result := <-resultCh
		results[result.i] = result
	}

	wg.Wait()
	return results
}

// ValidateBatch validates spends in async mode. Spends share no state,
// so workers need no coordination beyond the channels. Results are
// returned in request order.
func (v *Validator) ValidateBatch(spends []*Spend) []*Result {
	return validateSpends(v.Validate, spends)
}
