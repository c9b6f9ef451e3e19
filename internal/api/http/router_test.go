package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/corekv/corekv/internal/store"
)

func newTestServer() http.Handler {
	st := store.New()
	return NewRouter(st, nil)
}

func TestHealth(t *testing.T) {
	ts := httptest.NewServer(newTestServer())
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("health request error : %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}

func TestKV_CRUD(t *testing.T) {
	ts := httptest.NewServer(newTestServer())
	defer ts.Close()

	body := bytes.NewBufferString(`{"value":"bar"}`)
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/v1/kv/foo", body)
	req.Header.Set("Content-Type", "application/json")
	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put error: %v", err)
	}
	if res.StatusCode != http.StatusOK {
		t.Fatalf("put status %d", res.StatusCode)
	}

	getRes, err := http.Get(ts.URL + "/v1/kv/foo")
	if err != nil {
		t.Fatalf("get error: %v", err)
	}
	if getRes.StatusCode != http.StatusOK {
		t.Fatalf("get status %d", getRes.StatusCode)
	}
	var dto valueDTO
	if err := json.NewDecoder(getRes.Body).Decode(&envelope{Data: &dto}); err != nil {
		t.Fatalf("get decode error: %v", err)
	}
	if dto.Value != "bar" {
		t.Fatalf("expected value 'bar', got '%s'", dto.Value)
	}

	delReq, _ := http.NewRequest(http.MethodDelete, ts.URL+"/v1/kv/foo", nil)
	delRes, err := http.DefaultClient.Do(delReq)
	if err != nil {
		t.Fatalf("delete error: %v", err)
	}
	if delRes.StatusCode != http.StatusOK {
		t.Fatalf("delete status %d", delRes.StatusCode)
	}

	getRes2, err := http.Get(ts.URL + "/v1/kv/foo")
	if err != nil {
		t.Fatalf("get2 error: %v", err)
	}
	if getRes2.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", getRes2.StatusCode)
	}
}

func TestKV_IncrAndExpire(t *testing.T) {
	ts := httptest.NewServer(newTestServer())
	defer ts.Close()

	body := bytes.NewBufferString(`{"int_value":1}`)
	req, _ := http.NewRequest(http.MethodPut, ts.URL+"/v1/kv/counter", body)
	if _, err := http.DefaultClient.Do(req); err != nil {
		t.Fatalf("put error: %v", err)
	}

	incrBody := bytes.NewBufferString(`{"delta":4}`)
	incrRes, err := http.Post(ts.URL+"/v1/kv/counter/incr", "application/json", incrBody)
	if err != nil {
		t.Fatalf("incr error: %v", err)
	}
	var dto valueDTO
	if err := json.NewDecoder(incrRes.Body).Decode(&envelope{Data: &dto}); err != nil {
		t.Fatalf("incr decode error: %v", err)
	}
	if dto.Int == nil || *dto.Int != 5 {
		t.Fatalf("expected counter 5, got %v", dto.Int)
	}

	expireBody := bytes.NewBufferString(`{"ttl_ms":10000}`)
	expireReq, _ := http.NewRequest(http.MethodPut, ts.URL+"/v1/kv/counter/expire", expireBody)
	expireRes, err := http.DefaultClient.Do(expireReq)
	if err != nil {
		t.Fatalf("expire error: %v", err)
	}
	if expireRes.StatusCode != http.StatusOK {
		t.Fatalf("expire status %d", expireRes.StatusCode)
	}

	ttlRes, err := http.Get(ts.URL + "/v1/kv/counter/ttl")
	if err != nil {
		t.Fatalf("ttl error: %v", err)
	}
	var ttlDTO ttlResponse
	if err := json.NewDecoder(ttlRes.Body).Decode(&envelope{Data: &ttlDTO}); err != nil {
		t.Fatalf("ttl decode error: %v", err)
	}
	if ttlDTO.NeverExpires || ttlDTO.TTLMillis <= 0 {
		t.Fatalf("expected a positive ttl, got %+v", ttlDTO)
	}
}

type envelope struct {
	Data any `json:"data"`
}
