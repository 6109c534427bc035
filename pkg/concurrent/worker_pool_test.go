package concurrent_test

import (
	"lintang/begraphes/pkg/concurrent"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	t.Run("every job result is collected", func(t *testing.T) {
		jobs := []int{1, 2, 3, 4, 5, 6, 7, 8}
		workers := concurrent.NewWorkerPool[int, int](3, len(jobs))
		for _, j := range jobs {
			workers.AddJob(j)
		}
		workers.Close()

		workers.Start(func(job int) int { return job * job })
		workers.Wait()

		got := []int{}
		for r := range workers.CollectResults() {
			got = append(got, r)
		}
		sort.Ints(got)
		assert.Equal(t, []int{1, 4, 9, 16, 25, 36, 49, 64}, got)
	})

	t.Run("zero workers still runs with one worker", func(t *testing.T) {
		workers := concurrent.NewWorkerPool[string, int](0, 1)
		workers.AddJob("abc")
		workers.Close()
		workers.Start(func(job string) int { return len(job) })
		workers.Wait()
		assert.Equal(t, 3, <-workers.CollectResults())
	})
}
