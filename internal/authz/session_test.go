package authz_test

import (
	"context"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/frahmantamala/construction-backoffice/internal/authz"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// BlockingLoader hands out snapshots on demand and can hold a load open until
// released, to exercise overlapping loads.
type BlockingLoader struct {
	mu        sync.Mutex
	snapshots map[int64][]*authz.Snapshot
	loads     int
	gate      chan struct{}
}

func NewBlockingLoader() *BlockingLoader {
	return &BlockingLoader{snapshots: make(map[int64][]*authz.Snapshot)}
}

func (l *BlockingLoader) queue(userID int64, s *authz.Snapshot) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.snapshots[userID] = append(l.snapshots[userID], s)
}

func (l *BlockingLoader) Resolve(ctx context.Context, userID int64) *authz.Snapshot {
	l.mu.Lock()
	l.loads++
	var s *authz.Snapshot
	if queued := l.snapshots[userID]; len(queued) > 0 {
		s = queued[0]
		l.snapshots[userID] = queued[1:]
	} else {
		s = &authz.Snapshot{UserID: userID, Features: map[string]bool{}, LoadedAt: time.Now()}
	}
	gate := l.gate
	l.mu.Unlock()

	if gate != nil {
		<-gate
	}
	return s
}

func snapshotWith(userID int64, codes ...string) *authz.Snapshot {
	features := make(map[string]bool, len(codes))
	for _, c := range codes {
		features[c] = true
	}
	return &authz.Snapshot{UserID: userID, Features: features, LoadedAt: time.Now()}
}

var _ = Describe("SessionManager", func() {
	var (
		loader  *BlockingLoader
		manager *authz.SessionManager
		ctx     context.Context
	)

	BeforeEach(func() {
		loader = NewBlockingLoader()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		manager = authz.NewSessionManager(loader, time.Minute, time.Minute, logger)
		ctx = context.Background()
	})

	It("should cache the first load", func() {
		loader.queue(5, snapshotWith(5, "projects.view"))

		first := manager.Snapshot(ctx, 5)
		Expect(first.HasFeature("projects.view")).To(BeTrue())

		second := manager.Snapshot(ctx, 5)
		Expect(second).To(BeIdenticalTo(first))
		Expect(loader.loads).To(Equal(1))
	})

	It("should reload after Invalidate", func() {
		loader.queue(5, snapshotWith(5, "projects.view"))
		loader.queue(5, snapshotWith(5))

		Expect(manager.Snapshot(ctx, 5).HasFeature("projects.view")).To(BeTrue())

		manager.Invalidate(5)
		_, cached := manager.Peek(5)
		Expect(cached).To(BeFalse())

		Expect(manager.Snapshot(ctx, 5).HasFeature("projects.view")).To(BeFalse())
		Expect(loader.loads).To(Equal(2))
	})

	It("should reload everyone after InvalidateAll", func() {
		loader.queue(5, snapshotWith(5, "projects.view"))
		loader.queue(6, snapshotWith(6, "leave.manage"))
		manager.Snapshot(ctx, 5)
		manager.Snapshot(ctx, 6)

		manager.InvalidateAll()

		_, ok5 := manager.Peek(5)
		_, ok6 := manager.Peek(6)
		Expect(ok5).To(BeFalse())
		Expect(ok6).To(BeFalse())
	})

	It("should keep the later-started load when loads overlap", func() {
		stale := snapshotWith(5, "stale.feature")
		fresh := snapshotWith(5, "fresh.feature")
		loader.queue(5, stale)
		loader.queue(5, fresh)

		gate := make(chan struct{})
		loader.gate = gate

		results := make(chan *authz.Snapshot, 2)
		go func() { results <- manager.Load(ctx, 5) }()
		// Let the first load pull its snapshot before starting the second.
		Eventually(func() int {
			loader.mu.Lock()
			defer loader.mu.Unlock()
			return loader.loads
		}).Should(Equal(1))
		go func() { results <- manager.Load(ctx, 5) }()
		Eventually(func() int {
			loader.mu.Lock()
			defer loader.mu.Unlock()
			return loader.loads
		}).Should(Equal(2))

		close(gate)
		<-results
		<-results

		cached, ok := manager.Peek(5)
		Expect(ok).To(BeTrue())
		Expect(cached).To(BeIdenticalTo(fresh))
	})

	It("should not cache a load superseded by Invalidate", func() {
		stale := snapshotWith(5, "stale.feature")
		loader.queue(5, stale)

		gate := make(chan struct{})
		loader.gate = gate

		done := make(chan *authz.Snapshot, 1)
		go func() { done <- manager.Load(ctx, 5) }()
		Eventually(func() int {
			loader.mu.Lock()
			defer loader.mu.Unlock()
			return loader.loads
		}).Should(Equal(1))

		manager.Invalidate(5)
		close(gate)

		returned := <-done
		Expect(returned).To(BeIdenticalTo(stale))

		_, cached := manager.Peek(5)
		Expect(cached).To(BeFalse())
	})
})
