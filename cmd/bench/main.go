// Package main is a standalone load generator for a running corekv server.
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
)

func main() {
	baseURL := flag.String("base-url", "http://localhost:8080", "base URL of the corekv server")
	keys := flag.Int("keys", 10000, "number of distinct keys to cycle through")
	requests := flag.Int("requests", 200000, "total number of requests to send")
	pool := flag.Int("pool", 256, "bounded goroutine pool size")
	readRatio := flag.Float64("read-ratio", 0.8, "fraction of requests that are GET")
	flag.Parse()

	p, err := ants.NewPool(*pool, ants.WithPreAlloc(true))
	if err != nil {
		fmt.Println("ants.NewPool:", err)
		return
	}
	defer p.Release()

	client := &http.Client{Timeout: 5 * time.Second}

	var ok, failed atomic.Int64
	var wg sync.WaitGroup
	start := time.Now()

	for i := 0; i < *requests; i++ {
		wg.Add(1)
		n := i
		task := func() {
			defer wg.Done()
			r := rand.New(rand.NewSource(int64(n)))
			key := fmt.Sprintf("bench%06d", r.Intn(*keys))
			var resp *http.Response
			var err error
			if r.Float64() < *readRatio {
				resp, err = client.Get(*baseURL + "/v1/kv/" + key)
			} else {
				body := bytes.NewBufferString(fmt.Sprintf(`{"value":"v%d"}`, n))
				req, _ := http.NewRequest(http.MethodPut, *baseURL+"/v1/kv/"+key, body)
				req.Header.Set("Content-Type", "application/json")
				resp, err = client.Do(req)
			}
			if err != nil {
				failed.Add(1)
				return
			}
			_, _ = io.Copy(io.Discard, resp.Body)
			_ = resp.Body.Close()
			if resp.StatusCode >= 200 && resp.StatusCode < 500 {
				ok.Add(1)
			} else {
				failed.Add(1)
			}
		}
		if err := p.Submit(task); err != nil {
			wg.Done()
			failed.Add(1)
		}
	}

	wg.Wait()
	dur := time.Since(start)
	fmt.Printf("requests=%d ok=%d failed=%d duration=%s rps=%.1f\n",
		*requests, ok.Load(), failed.Load(), dur, float64(*requests)/dur.Seconds())
}
