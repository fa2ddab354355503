package worker

import (
	"errors"
	"fmt"
	"testing"

	"github.com/checkfox/go_sales/internal/models"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// Property: every input lead ends up either in the results or in the error
// map, never both and never neither, regardless of which items fail.
func TestProperty_WorkerAccountsForEveryItem(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("processed plus errors equals input size", prop.ForAll(
		func(n int, failEvery int) bool {
			leads := make([]models.Lead, n)
			for i := range leads {
				leads[i] = models.Lead{ID: fmt.Sprintf("lead-%d", i+1)}
			}

			calls := 0
			results, workerMetrics := RunLeadActivityStatsWorker(leads, func(lead models.Lead) (models.Stats, error) {
				calls++
				if calls%failEvery == 0 {
					return models.Stats{}, errors.New("simulated failure")
				}
				return models.Stats{}, nil
			})

			if workerMetrics.Processed+len(workerMetrics.Errors) != n {
				return false
			}
			if len(results) != workerMetrics.Processed {
				return false
			}
			for _, result := range results {
				if _, failed := workerMetrics.Errors[result.LeadID]; failed {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 50),
		gen.IntRange(1, 10),
	))

	properties.TestingRun(t)
}

// Property: successful results preserve the input order of their leads.
func TestProperty_WorkerPreservesOrder(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100

	properties := gopter.NewProperties(parameters)

	properties.Property("results appear in input order", prop.ForAll(
		func(n int) bool {
			leads := make([]models.Lead, n)
			for i := range leads {
				leads[i] = models.Lead{ID: fmt.Sprintf("lead-%03d", i)}
			}

			results, _ := RunPriorityScoreWorker(leads, func(lead models.Lead) (float64, error) {
				return 1, nil
			})

			for i := 1; i < len(results); i++ {
				if results[i-1].LeadID >= results[i].LeadID {
					return false
				}
			}
			return true
		},
		gen.IntRange(0, 50),
	))

	properties.TestingRun(t)
}
