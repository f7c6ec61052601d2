package perftests

import (
	"context"
	"math/rand"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

// Benchmark 1: PlaceBid - Isolated Lots (Low Contention - Micro Benchmark)
func Benchmark_PlaceBid_Isolated(b *testing.B) {
	svc := setupService(b, b.N, 1)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		amount := decimal.NewFromInt(int64(101 + rand.Intn(100)))
		if _, err := svc.PlaceBid(ctx, benchTenant, userID(0), benchAuction, lotID(i), amount); err != nil {
			b.Fatalf("failed to place bid: %v", err)
		}
	}
}

// Benchmark 2: PlaceBid - Shared Lot (High Contention - Concurrency Benchmark)
func Benchmark_PlaceBid_ConcurrentSharedLot(b *testing.B) {
	const users = 64
	svc := setupService(b, 1, users)
	ctx := context.Background()

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 100

	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			next := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
			_, _ = svc.PlaceBid(ctx, benchTenant, userID(rnd.Intn(users)), benchAuction, lotID(0), decimal.NewFromInt(next))
		}
	})
}

// Benchmark 3: GetLeadingBid - Single - Threaded (Low Contention)
func Benchmark_GetLeadingBid_SingleThreaded(b *testing.B) {
	svc := setupService(b, b.N, 1)
	ctx := context.Background()

	for i := 0; i < b.N; i++ {
		for j := 1; j <= 10; j++ {
			_, _ = svc.PlaceBid(ctx, benchTenant, userID(0), benchAuction, lotID(i), decimal.NewFromInt(int64(100+j*10)))
		}
	}

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := svc.GetLeadingBid(ctx, benchTenant, lotID(i)); err != nil {
			b.Fatalf("failed to get leading bid: %v", err)
		}
	}
}

// Benchmark 4: GetLeadingBid - Concurrent (High Contention)
func Benchmark_GetLeadingBid_ConcurrentSharedLot(b *testing.B) {
	svc := setupService(b, 1, 100)
	ctx := context.Background()

	for j := 0; j < 100; j++ {
		_, _ = svc.PlaceBid(ctx, benchTenant, userID(j), benchAuction, lotID(0), decimal.NewFromInt(int64(101+j)))
	}

	b.ReportAllocs()
	b.ResetTimer()

	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			if _, err := svc.GetLeadingBid(ctx, benchTenant, lotID(0)); err != nil {
				b.Errorf("failed to get leading bid: %v", err)
				return
			}
		}
	})
}

// Benchmark 5: Mixed Workload (Readers + Writers concurrently)
func Benchmark_MixedWorkload_SharedLot(b *testing.B) {
	const users = 50
	svc := setupService(b, 1, users)
	ctx := context.Background()

	for j := 0; j < users; j++ {
		_, _ = svc.PlaceBid(ctx, benchTenant, userID(j), benchAuction, lotID(0), decimal.NewFromInt(int64(101+j*2)))
	}

	b.ReportAllocs()
	b.ResetTimer()

	var lastBid int64 = 200

	// Ratio: 70% readers, 30% writers
	b.RunParallel(func(pb *testing.PB) {
		rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
		for pb.Next() {
			if rnd.Intn(10) < 3 {
				next := atomic.AddInt64(&lastBid, int64(rnd.Intn(5)+1))
				_, _ = svc.PlaceBid(ctx, benchTenant, userID(rnd.Intn(users)), benchAuction, lotID(0), decimal.NewFromInt(next))
				continue
			}
			_, _ = svc.GetLeadingBid(ctx, benchTenant, lotID(0))
		}
	})
}

// Benchmark 6: Finalize many lots while bids still arrive
func Benchmark_FinalizeUnderLoad(b *testing.B) {
	const users = 16
	svc := setupService(b, b.N, users)
	ctx := context.Background()

	var writes int64
	stop := make(chan struct{})
	done := make(chan struct{})
	go func() {
		defer close(done)
		rnd := rand.New(rand.NewSource(1))
		for {
			select {
			case <-stop:
				return
			default:
			}
			lot := lotID(rnd.Intn(b.N))
			n := atomic.AddInt64(&writes, 1)
			_, _ = svc.PlaceBid(ctx, benchTenant, userID(int(n)%users), benchAuction, lot, decimal.NewFromInt(100+n))
		}
	}()

	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := svc.FinalizeLot(ctx, benchTenant, lotID(i)); err != nil {
			b.Fatalf("failed to finalize: %v", err)
		}
	}

	b.StopTimer()
	close(stop)
	<-done
}
