// Command benchlfu drives a synthetic Zipf-skewed workload against two
// independent cache instances — one LFU, one LRU — and reports their
// hit rates side by side.
//
// Each cache instance is single-threaded (§5: this cache offers no
// concurrent access, unlike a sharded cache). The two runs are
// independent, so driving them from separate goroutines never touches
// one cache instance concurrently; errgroup exists here to coordinate
// those two unrelated goroutines and propagate the first error, not to
// coalesce concurrent access to a shared cache.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"strconv"
	"time"

	"github.com/lookaside-cache/lookaside/cache"
	pmet "github.com/lookaside-cache/lookaside/metrics/prom"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"
)

type result struct {
	policy   string
	ops      uint64
	reads    uint64
	writes   uint64
	hits     uint64
	misses   uint64
	elapsed  time.Duration
	finalLen int
}

func main() {
	var (
		capacity = flag.Int("cap", 10_000, "cache capacity (entries), per policy")
		duration = flag.Duration("duration", 5*time.Second, "workload duration per policy")
		readPct  = flag.Int("reads", 80, "read percentage [0..100]")
		keys     = flag.Int("keys", 100_000, "keyspace size")
		zipfS    = flag.Float64("zipf_s", 1.1, "Zipf s > 1 (skew)")
		zipfV    = flag.Float64("zipf_v", 1.0, "Zipf v")
		seed     = flag.Int64("seed", time.Now().UnixNano(), "random seed")
		preload  = flag.Int("preload", 0, "preload entries (0 = cap/2)")

		metricsAddr = flag.String("http", "", "serve Prometheus metrics at addr (empty = disabled)")
	)
	flag.Parse()

	reg := prometheus.NewRegistry()
	lfuMetrics := pmet.New(reg, "lookaside", "lfu", nil)
	lruMetrics := pmet.New(reg, "lookaside", "lru", nil)

	if *metricsAddr != "" {
		http.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		go func() {
			log.Printf("metrics: serving at %s", *metricsAddr)
			log.Println(http.ListenAndServe(*metricsAddr, nil))
		}()
	}

	pl := *preload
	if pl == 0 {
		pl = *capacity / 2
	}

	g, ctx := errgroup.WithContext(context.Background())

	var lfuResult, lruResult result
	g.Go(func() error {
		c := cache.New[string, string](cache.Options[string, string]{
			Capacity: *capacity,
			Policy:   cache.LFU,
			Metrics:  lfuMetrics,
		})
		lfuResult = runWorkload(ctx, "lfu", c, workloadParams{
			duration: *duration,
			readPct:  *readPct,
			keys:     *keys,
			zipfS:    *zipfS,
			zipfV:    *zipfV,
			seed:     *seed,
			preload:  pl,
		})
		return nil
	})
	g.Go(func() error {
		c := cache.New[string, string](cache.Options[string, string]{
			Capacity: *capacity,
			Policy:   cache.LRU,
			Metrics:  lruMetrics,
		})
		lruResult = runWorkload(ctx, "lru", c, workloadParams{
			duration: *duration,
			readPct:  *readPct,
			keys:     *keys,
			zipfS:    *zipfS,
			zipfV:    *zipfV,
			seed:     *seed + 1,
			preload:  pl,
		})
		return nil
	})
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	report(lfuResult)
	report(lruResult)
}

type workloadParams struct {
	duration time.Duration
	readPct  int
	keys     int
	zipfS    float64
	zipfV    float64
	seed     int64
	preload  int
}

// runWorkload drives cache c sequentially — this cache accepts no
// concurrent callers, so the workload itself is a single goroutine even
// though two such goroutines run side by side across independent caches.
func runWorkload(ctx context.Context, name string, c *cache.Cache[string, string], p workloadParams) result {
	for i := 0; i < p.preload; i++ {
		k := "k:" + strconv.Itoa(i)
		c.Insert(k, "v"+strconv.Itoa(i))
	}

	r := rand.New(rand.NewSource(p.seed))
	zipf := rand.NewZipf(r, p.zipfS, p.zipfV, uint64(p.keys-1))
	keyByZipf := func() string {
		return "k:" + strconv.FormatUint(zipf.Uint64(), 10)
	}

	var res result
	res.policy = name

	deadline := time.Now().Add(p.duration)
	start := time.Now()
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			res.elapsed = time.Since(start)
			res.finalLen = c.Len()
			return res
		default:
		}

		res.ops++
		if int(r.Int31n(100)) < p.readPct {
			res.reads++
			if _, ok := c.Lookup(keyByZipf()); ok {
				res.hits++
			} else {
				res.misses++
			}
		} else {
			res.writes++
			c.Update(keyByZipf(), "v"+strconv.Itoa(r.Int()))
		}
	}
	res.elapsed = time.Since(start)
	res.finalLen = c.Len()
	return res
}

func report(r result) {
	hitRate := 0.0
	if r.reads > 0 {
		hitRate = float64(r.hits) / float64(r.reads) * 100
	}
	fmt.Printf("policy=%s ops=%d (%.0f ops/s) reads=%d writes=%d hits=%d misses=%d hit-rate=%.2f%% len=%d\n",
		r.policy, r.ops, float64(r.ops)/r.elapsed.Seconds(), r.reads, r.writes, r.hits, r.misses, hitRate, r.finalLen)
}
