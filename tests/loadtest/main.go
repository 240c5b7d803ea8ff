package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/rand"
	"net"
	"net/http"
	"sort"
	"sync"
	"sync/atomic"
	"time"
)

const (
	baseURL      = "http://127.0.0.1:18090"
	numWorkers   = 50
	testDuration = 10 * time.Second
	numCourses   = 4
	numStreams   = 3
	numSubjects  = 12
)

var subjects = []string{
	"Математика", "История", "Физика", "Химия", "Биология", "Литература",
	"Информатика", "География", "Философия", "Экономика", "Право", "Социология",
}

var httpClient = &http.Client{
	Timeout: 5 * time.Second,
	Transport: &http.Transport{
		MaxIdleConns:        200,
		MaxIdleConnsPerHost: 200,
		IdleConnTimeout:     30 * time.Second,
		DialContext: (&net.Dialer{
			Timeout:   2 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
	},
}

type result struct {
	endpoint string
	status   int
	latency  time.Duration
	err      bool
}

type stats struct {
	count     int64
	errors    int64
	latencies []time.Duration
}

func main() {
	fmt.Println("=== AgendaDaemon Load Test ===")
	fmt.Printf("Workers: %d | Duration: %s\n", numWorkers, testDuration)
	fmt.Printf("Courses: %d | Streams: %d | Subjects: %d\n\n", numCourses, numStreams, numSubjects)

	// Wait for server
	fmt.Print("Waiting for server... ")
	for i := 0; i < 30; i++ {
		resp, err := httpClient.Get(baseURL + "/health")
		if err == nil {
			io.Copy(io.Discard, resp.Body)
			resp.Body.Close()
			break
		}
		if i == 29 {
			fmt.Println("FAILED: server not responding")
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	fmt.Println("OK")

	// Phase 1: Seed the mutable layers
	fmt.Println("\n--- Phase 1: Seeding layers (POST /homework, /rename) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		if rng.Float64() < 0.5 {
			return doPostHomework(rng)
		}
		return doPostRename(rng)
	})

	// Phase 2: Mixed read/write load
	fmt.Println("\n--- Phase 2: Mixed load (30% write, 70% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.15:
			return doPostHomework(rng)
		case r < 0.25:
			return doPostRename(rng)
		case r < 0.30:
			return doPostRefresh(rng)
		case r < 0.75:
			return doGetDay(rng)
		default:
			return doGetWeek(rng)
		}
	})

	// Phase 3: Read-heavy load to exercise the resolution cache
	fmt.Println("\n--- Phase 3: Read-heavy load (5% write, 95% read) ---")
	runPhase(testDuration, func(rng *rand.Rand) result {
		r := rng.Float64()
		switch {
		case r < 0.05:
			return doPostHomework(rng)
		case r < 0.65:
			return doGetDay(rng)
		default:
			return doGetWeek(rng)
		}
	})
}

func runPhase(duration time.Duration, workFn func(rng *rand.Rand) result) {
	results := make(chan result, 10000)
	var wg sync.WaitGroup
	var totalOps atomic.Int64
	stop := make(chan struct{})

	for i := 0; i < numWorkers; i++ {
		wg.Add(1)
		go func(seed int64) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(seed))
			for {
				select {
				case <-stop:
					return
				default:
					r := workFn(rng)
					totalOps.Add(1)
					results <- r
				}
			}
		}(rand.Int63() + int64(i))
	}

	allResults := make(map[string]*stats)
	done := make(chan struct{})
	go func() {
		for r := range results {
			s, ok := allResults[r.endpoint]
			if !ok {
				s = &stats{}
				allResults[r.endpoint] = s
			}
			s.count++
			if r.err {
				s.errors++
			}
			s.latencies = append(s.latencies, r.latency)
		}
		close(done)
	}()

	time.Sleep(duration)
	close(stop)
	wg.Wait()
	close(results)
	<-done

	printResults(allResults, duration)
}

func printResults(allResults map[string]*stats, duration time.Duration) {
	var totalOps int64
	var totalErrors int64

	endpoints := make([]string, 0, len(allResults))
	for ep := range allResults {
		endpoints = append(endpoints, ep)
	}
	sort.Strings(endpoints)

	fmt.Printf("\n  %-22s %8s %6s %10s %10s %10s %10s\n",
		"Endpoint", "Reqs", "Errs", "Avg", "P50", "P95", "P99")
	fmt.Println("  " + repeat("-", 88))

	for _, ep := range endpoints {
		s := allResults[ep]
		totalOps += s.count
		totalErrors += s.errors

		sort.Slice(s.latencies, func(i, j int) bool {
			return s.latencies[i] < s.latencies[j]
		})

		avg := avgDuration(s.latencies)
		p50 := percentile(s.latencies, 0.50)
		p95 := percentile(s.latencies, 0.95)
		p99 := percentile(s.latencies, 0.99)

		fmt.Printf("  %-22s %8d %6d %10s %10s %10s %10s\n",
			ep, s.count, s.errors, fmtDur(avg), fmtDur(p50), fmtDur(p95), fmtDur(p99))
	}

	rps := float64(totalOps) / duration.Seconds()
	fmt.Println("  " + repeat("-", 88))
	fmt.Printf("  Total: %d reqs | Errors: %d (%.1f%%) | RPS: %.0f\n",
		totalOps, totalErrors, float64(totalErrors)/float64(totalOps)*100, rps)
}

func randCohort(rng *rand.Rand) (string, string) {
	return fmt.Sprintf("%d", rng.Intn(numCourses)+1), fmt.Sprintf("%d", rng.Intn(numStreams)+1)
}

func randDate(rng *rand.Rand) string {
	base := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, rng.Intn(28)).Format("2006-01-02")
}

func doPostHomework(rng *rand.Rand) result {
	course, stream := randCohort(rng)
	body := map[string]interface{}{
		"course":  course,
		"stream":  stream,
		"subject": subjects[rng.Intn(len(subjects))],
		"date":    randDate(rng),
		"text":    fmt.Sprintf("упр. %d-%d", rng.Intn(20)+1, rng.Intn(20)+21),
	}

	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/homework", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /homework", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /homework", resp.StatusCode, lat, resp.StatusCode != 201}
}

func doPostRename(rng *rand.Rand) result {
	course, stream := randCohort(rng)
	subject := subjects[rng.Intn(len(subjects))]
	body := map[string]interface{}{
		"course":   course,
		"stream":   stream,
		"original": subject,
		"display":  subject + " (сем.)",
	}

	data, _ := json.Marshal(body)
	start := time.Now()
	resp, err := httpClient.Post(baseURL+"/rename", "application/json", bytes.NewReader(data))
	lat := time.Since(start)
	if err != nil {
		return result{"POST /rename", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /rename", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doPostRefresh(rng *rand.Rand) result {
	course, stream := randCohort(rng)
	url := fmt.Sprintf("%s/refresh?course=%s&stream=%s", baseURL, course, stream)
	start := time.Now()
	resp, err := httpClient.Post(url, "application/json", nil)
	lat := time.Since(start)
	if err != nil {
		return result{"POST /refresh", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"POST /refresh", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetDay(rng *rand.Rand) result {
	course, stream := randCohort(rng)
	url := fmt.Sprintf("%s/day?course=%s&stream=%s&date=%s", baseURL, course, stream, randDate(rng))
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /day", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /day", resp.StatusCode, lat, resp.StatusCode != 200}
}

func doGetWeek(rng *rand.Rand) result {
	course, stream := randCohort(rng)
	url := fmt.Sprintf("%s/week?course=%s&stream=%s&start=%s", baseURL, course, stream, randDate(rng))
	start := time.Now()
	resp, err := httpClient.Get(url)
	lat := time.Since(start)
	if err != nil {
		return result{"GET /week", 0, lat, true}
	}
	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()
	return result{"GET /week", resp.StatusCode, lat, resp.StatusCode != 200}
}

func avgDuration(d []time.Duration) time.Duration {
	if len(d) == 0 {
		return 0
	}
	var sum time.Duration
	for _, v := range d {
		sum += v
	}
	return sum / time.Duration(len(d))
}

func percentile(d []time.Duration, p float64) time.Duration {
	if len(d) == 0 {
		return 0
	}
	idx := int(float64(len(d)) * p)
	if idx >= len(d) {
		idx = len(d) - 1
	}
	return d[idx]
}

func fmtDur(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	}
	return fmt.Sprintf("%.1fms", float64(d.Microseconds())/1000.0)
}

func repeat(s string, n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += s
	}
	return out
}
