package policy_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/Rutuja-Parab/policyzen/internal/policy"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type countingExpirer struct {
	calls atomic.Int32
	err   error
}

func (c *countingExpirer) ExpireLapsed(ctx context.Context) (int64, error) {
	c.calls.Add(1)
	if c.err != nil {
		return 0, c.err
	}
	return 2, nil
}

var _ = Describe("ExpiryWorker", func() {
	It("should sweep immediately and then on every tick", func() {
		expirer := &countingExpirer{}
		worker := policy.NewExpiryWorker(expirer, 10*time.Millisecond, nil)

		worker.Start(context.Background())
		Eventually(expirer.calls.Load).Should(BeNumerically(">=", 3))
		worker.Shutdown()

		after := expirer.calls.Load()
		Consistently(expirer.calls.Load, 50*time.Millisecond).Should(Equal(after))
	})

	It("should keep running after a failed sweep", func() {
		expirer := &countingExpirer{err: errors.New("connection reset")}
		worker := policy.NewExpiryWorker(expirer, 10*time.Millisecond, nil)

		worker.Start(context.Background())
		Eventually(expirer.calls.Load).Should(BeNumerically(">=", 2))
		worker.Shutdown()
	})

	It("should stop when the parent context is cancelled", func() {
		expirer := &countingExpirer{}
		worker := policy.NewExpiryWorker(expirer, time.Hour, nil)

		ctx, cancel := context.WithCancel(context.Background())
		worker.Start(ctx)
		Eventually(expirer.calls.Load).Should(BeEquivalentTo(1))
		cancel()

		done := make(chan struct{})
		go func() {
			worker.Shutdown()
			close(done)
		}()
		Eventually(done).Should(BeClosed())
	})

	It("should report the count of a single pass", func() {
		worker := policy.NewExpiryWorker(&countingExpirer{}, 0, nil)
		n, err := worker.RunOnce(context.Background())
		Expect(err).NotTo(HaveOccurred())
		Expect(n).To(BeEquivalentTo(2))
	})
})
