package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/corekv/corekv/internal/entry"
	"github.com/corekv/corekv/internal/store"
)

// kvHandler fronts a *store.Store with the command set spec.md's facade
// supports against string and integer kinds: SET/GET/DEL/EXPIRE/PERSIST/
// TTL/INCR. It is the "wire protocol / command dispatch" spec.md §1
// explicitly excludes from the core itself.
type kvHandler struct {
	st *store.Store
}

func (h *kvHandler) mount(r chi.Router) {
	r.Route("/v1/kv", func(r chi.Router) {
		r.Method(http.MethodPut, "/{key}", HandlerFunc(h.put))
		r.Method(http.MethodGet, "/{key}", HandlerFunc(h.get))
		r.Method(http.MethodDelete, "/{key}", HandlerFunc(h.del))
		r.Method(http.MethodPost, "/{key}/incr", HandlerFunc(h.incr))
		r.Method(http.MethodPut, "/{key}/expire", HandlerFunc(h.expire))
		r.Method(http.MethodPut, "/{key}/persist", HandlerFunc(h.persist))
		r.Method(http.MethodGet, "/{key}/ttl", HandlerFunc(h.ttl))
	})
	r.Method(http.MethodPost, "/v1/flushall", HandlerFunc(h.flushAll))
}

// putRequest is SET's body. Exactly one of Value/IntValue must be set; an
// absent TTLMillis (or <= 0) means the key never expires. NX/XX select
// insert_if's predicate, matching spec.md §4.5's conditional-insert state
// machine.
type putRequest struct {
	Value     *string `json:"value,omitempty"`
	IntValue  *int64  `json:"int_value,omitempty"`
	TTLMillis int64   `json:"ttl_ms,omitempty"`
	NX        bool    `json:"nx,omitempty"`
	XX        bool    `json:"xx,omitempty"`
}

type valueDTO struct {
	Key     string `json:"key"`
	Value   string `json:"value,omitempty"`
	Int     *int64 `json:"int_value,omitempty"`
	Type    string `json:"type,omitempty"`
	Applied *bool  `json:"applied,omitempty"`
}

func (h *kvHandler) put(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	var req putRequest
	if err := DecodeJSON(r, &req); err != nil {
		return err
	}
	if req.Value == nil && req.IntValue == nil {
		return BadRequest("one of value or int_value is required")
	}
	if req.Value != nil && req.IntValue != nil {
		return BadRequest("value and int_value are mutually exclusive")
	}

	hash := store.KeyHash([]byte(key))
	var e *entry.Entry
	if req.Value != nil {
		e = entry.NewBytes([]byte(key), hash, []byte(*req.Value))
	} else {
		e = entry.NewInt64([]byte(key), hash, *req.IntValue)
	}

	applied, err := h.st.InsertIf(e, req.TTLMillis, req.NX, req.XX)
	if err != nil {
		return BadRequest(err.Error())
	}
	writeSuccess(w, http.StatusOK, valueDTO{Key: key, Applied: &applied})
	return nil
}

func (h *kvHandler) get(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	hash := store.KeyHash([]byte(key))

	type getResult struct {
		dto   valueDTO
		found bool
	}
	res := store.View(h.st, []byte(key), hash, func(v *entry.View) getResult {
		if v == nil {
			return getResult{}
		}
		dto := valueDTO{Key: key, Type: v.TypeName()}
		switch v.Kind() {
		case entry.KindInt64:
			n, _ := v.ValueInt64()
			dto.Int = &n
		default:
			b, err := v.ValueBytes()
			if err == nil {
				dto.Value = string(b)
			}
		}
		return getResult{dto: dto, found: true}
	})
	if !res.found {
		return NotFound("key not found")
	}
	writeSuccess(w, http.StatusOK, res.dto)
	return nil
}

func (h *kvHandler) del(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	existed := h.st.Erase([]byte(key), store.KeyHash([]byte(key)))
	writeSuccess(w, http.StatusOK, valueDTO{Key: key, Applied: &existed})
	return nil
}

type incrRequest struct {
	Delta int64 `json:"delta"`
}

func (h *kvHandler) incr(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	var req incrRequest
	if err := DecodeJSON(r, &req); err != nil {
		return err
	}
	hash := store.KeyHash([]byte(key))

	type incrResult struct {
		val int64
		err error
	}
	res := store.Update(h.st, []byte(key), hash, func(m *entry.Mutator) incrResult {
		if m == nil {
			return incrResult{err: NotFound("key not found")}
		}
		n, err := m.IncrInt64(req.Delta)
		return incrResult{val: n, err: err}
	})
	if res.err != nil {
		return res.err
	}
	writeSuccess(w, http.StatusOK, valueDTO{Key: key, Int: &res.val})
	return nil
}

type expireRequest struct {
	TTLMillis int64 `json:"ttl_ms"`
}

func (h *kvHandler) expire(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	var req expireRequest
	if err := DecodeJSON(r, &req); err != nil {
		return err
	}
	applied := h.st.Expire([]byte(key), store.KeyHash([]byte(key)), req.TTLMillis)
	writeSuccess(w, http.StatusOK, valueDTO{Key: key, Applied: &applied})
	return nil
}

func (h *kvHandler) persist(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	applied := h.st.Persist([]byte(key), store.KeyHash([]byte(key)))
	writeSuccess(w, http.StatusOK, valueDTO{Key: key, Applied: &applied})
	return nil
}

type ttlResponse struct {
	Key          string `json:"key"`
	TTLMillis    int64  `json:"ttl_ms"`
	NeverExpires bool   `json:"never_expires"`
}

func (h *kvHandler) ttl(w http.ResponseWriter, r *http.Request) error {
	key := chi.URLParam(r, "key")
	if key == "" {
		return BadRequest("empty key")
	}
	ms, ok := h.st.TTL([]byte(key), store.KeyHash([]byte(key)))
	if !ok {
		return NotFound("key not found")
	}
	resp := ttlResponse{Key: key, NeverExpires: ms < 0}
	if ms >= 0 {
		resp.TTLMillis = ms
	}
	writeSuccess(w, http.StatusOK, resp)
	return nil
}

func (h *kvHandler) flushAll(w http.ResponseWriter, _ *http.Request) error {
	h.st.FlushAll()
	writeSuccess(w, http.StatusOK, struct{}{})
	return nil
}
