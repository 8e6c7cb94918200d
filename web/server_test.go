// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/baseball-dictionary/catalog"
	"github.com/danielhkuo/baseball-dictionary/models"
	"github.com/danielhkuo/baseball-dictionary/moderation"
	"github.com/danielhkuo/baseball-dictionary/repository"
	"github.com/danielhkuo/baseball-dictionary/submission"
)

// browser replays the session cookie like a real client
type browser struct {
	t      *testing.T
	mux    *http.ServeMux
	cookie *http.Cookie
}

func (b *browser) do(req *http.Request) *httptest.ResponseRecorder {
	b.t.Helper()
	if b.cookie != nil {
		req.AddCookie(b.cookie)
	}
	w := httptest.NewRecorder()
	b.mux.ServeHTTP(w, req)
	for _, c := range w.Result().Cookies() {
		if c.Name == CookieName {
			b.cookie = c
		}
	}
	return w
}

func (b *browser) get(path string) *httptest.ResponseRecorder {
	return b.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (b *browser) post(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return b.do(req)
}

// manualTimers collects scheduled auto-close callbacks
type manualTimers struct {
	mu  sync.Mutex
	fns []func()
}

type manualTimer struct{}

func (manualTimer) Stop() bool { return true }

func (m *manualTimers) afterFunc(_ time.Duration, f func()) submission.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.fns = append(m.fns, f)
	return manualTimer{}
}

func (m *manualTimers) fire() {
	m.mu.Lock()
	fns := m.fns
	m.fns = nil
	m.mu.Unlock()
	for _, f := range fns {
		f()
	}
}

func newTestServer(t *testing.T, repo repository.Repository, opts ...Option) (*Server, *browser) {
	t.Helper()
	srv, err := New(repo, moderation.NewMemoryStore(), opts...)
	require.NoError(t, err)

	mux := http.NewServeMux()
	srv.Register(mux)
	return srv, &browser{t: t, mux: mux}
}

// failingRepo fails every call with a network error
type failingRepo struct{ *repository.Sample }

var errDown = &repository.Error{Kind: repository.KindNetwork, Op: "test", Err: errors.New("connection refused")}

func (failingRepo) Terms(context.Context) ([]models.Term, error) { return nil, errDown }
func (failingRepo) Submit(context.Context, models.SubmitTermRequest) (models.SubmitTermResponse, error) {
	return models.SubmitTermResponse{}, errDown
}

// blockingRepo holds Submit until release is closed
type blockingRepo struct {
	*repository.Sample
	started chan struct{}
	release chan struct{}
}

func (b *blockingRepo) Submit(ctx context.Context, req models.SubmitTermRequest) (models.SubmitTermResponse, error) {
	close(b.started)
	<-b.release
	return b.Sample.Submit(ctx, req)
}

func validForm() url.Values {
	return url.Values{
		"term":     {"Rain delay"},
		"analogy":  {"Waiting for someone to finish their shower"},
		"category": {models.CategoryGameDay},
	}
}

func TestIndex(t *testing.T) {
	_, b := newTestServer(t, repository.NewSample(repository.Latency{}))

	t.Run("grouped", func(t *testing.T) {
		w := b.get("/")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, `<h2 class="category-title">Scoring Plays</h2>`)
		assert.Contains(t, body, `<h2 class="category-title">The Stat Sheet</h2>`)
		assert.Less(t, strings.Index(body, "Scoring Plays</h2>"), strings.Index(body, "Base Running</h2>"))
		assert.Contains(t, body, `class="active">All</a>`)
	})

	t.Run("single category with query", func(t *testing.T) {
		w := b.get("/?category=" + url.QueryEscape(models.CategoryBaseRunning) + "&q=walk")
		require.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Intentional walk")
		assert.NotContains(t, body, "Scoring Plays</h2>")
		assert.Contains(t, body, `value="walk"`)
	})

	t.Run("no results", func(t *testing.T) {
		w := b.get("/?q=zzzzzz")
		assert.Contains(t, w.Body.String(), catalog.NoResultsMessage)
	})
}

func TestIndex_LoadError(t *testing.T) {
	_, b := newTestServer(t, failingRepo{repository.NewSample(repository.Latency{})})

	w := b.get("/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), LoadErrorMessage)
	assert.NotContains(t, w.Body.String(), "category-title")
}

func TestSubmitFlow(t *testing.T) {
	timers := &manualTimers{}
	srv, b := newTestServer(t, repository.NewSample(repository.Latency{}), WithAfterFunc(timers.afterFunc))

	w := b.get("/submit")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, b.cookie, "first visit should issue a session cookie")
	assert.Zero(t, b.cookie.MaxAge)
	assert.True(t, b.cookie.Expires.IsZero())
	assert.Contains(t, w.Body.String(), submission.ButtonSubmit)

	// Validation keeps the form open and the input
	invalid := validForm()
	invalid.Set("term", "  ")
	w = b.post("/submit", invalid)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Term is required")
	assert.Contains(t, w.Body.String(), "Waiting for someone to finish their shower")

	w = b.post("/submit", validForm())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), submission.SuccessMessage)
	assert.Contains(t, w.Body.String(), `content="2;url=/"`)
	assert.NotContains(t, w.Body.String(), `name="term"`)

	// Auto-close returns the form to idle; posting again needs a fresh form
	timers.fire()
	w = b.post("/submit", validForm())
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/submit", w.Header().Get("Location"))

	assert.Equal(t, 1, srv.Sessions().Len())
}

func TestSubmit_Failure(t *testing.T) {
	_, b := newTestServer(t, failingRepo{repository.NewSample(repository.Latency{})})

	b.get("/submit")
	w := b.post("/submit", validForm())
	assert.Equal(t, http.StatusBadGateway, w.Code)
	assert.Contains(t, w.Body.String(), submission.FailureMessage)
	assert.Contains(t, w.Body.String(), `value="Rain delay"`)
	assert.NotContains(t, w.Body.String(), "disabled")
}

func TestSubmit_DuplicateWhileInFlight(t *testing.T) {
	repo := &blockingRepo{
		Sample:  repository.NewSample(repository.Latency{}),
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	_, b := newTestServer(t, repo)
	b.get("/submit")

	done := make(chan int)
	go func() {
		req := httptest.NewRequest(http.MethodPost, "/submit", strings.NewReader(validForm().Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(b.cookie)
		w := httptest.NewRecorder()
		b.mux.ServeHTTP(w, req)
		done <- w.Code
	}()
	<-repo.started

	w := b.post("/submit", validForm())
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), submission.ButtonSubmitting)
	assert.Contains(t, w.Body.String(), "<fieldset disabled>")

	w = b.post("/submit/cancel", nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	close(repo.release)
	assert.Equal(t, http.StatusOK, <-done)

	pending, err := repo.Pending(context.Background(), "key")
	require.NoError(t, err)
	assert.Len(t, pending, 3, "only one of the two posts should reach the backend")
}

func TestSubmit_Cancel(t *testing.T) {
	_, b := newTestServer(t, repository.NewSample(repository.Latency{}))
	b.get("/submit")

	w := b.post("/submit/cancel", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = b.post("/submit", validForm())
	assert.Equal(t, http.StatusSeeOther, w.Code, "a cancelled form cannot be submitted")
}

func TestAdmin_LoginAndModerate(t *testing.T) {
	repo := repository.NewCached(repository.NewSample(repository.Latency{}))
	_, b := newTestServer(t, repo)

	w := b.get("/admin")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `name="key"`)

	w = b.post("/admin/login", url.Values{"key": {"  "}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), moderation.LoginFailedMessage)

	w = b.post("/admin/login", url.Values{"key": {"secret"}})
	require.Equal(t, http.StatusSeeOther, w.Code)

	w = b.get("/admin")
	body := w.Body.String()
	assert.Contains(t, body, "Popup fly")
	assert.Contains(t, body, "Bases loaded")
	assert.Contains(t, body, "Email: user@example.com")
	assert.Contains(t, body, "Date: ")

	// Warm the term cache so approval has to refresh it
	assert.NotContains(t, b.get("/").Body.String(), "Popup fly")

	w = b.get("/admin/approve/1")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), moderation.ApprovePrompt)

	// Declining leaves it pending
	b.post("/admin/approve/1", url.Values{"confirm": {"no"}})
	assert.Contains(t, b.get("/admin").Body.String(), "Popup fly")

	w = b.post("/admin/approve/1", url.Values{"confirm": {"yes"}})
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.NotContains(t, b.get("/admin").Body.String(), "Popup fly")
	assert.Contains(t, b.get("/").Body.String(), "Popup fly")

	w = b.get("/admin/reject/2")
	assert.Contains(t, w.Body.String(), moderation.RejectPrompt)

	b.post("/admin/reject/2", url.Values{"action": {"cancel"}, "reason": {"dup"}})
	assert.Contains(t, b.get("/admin").Body.String(), "Bases loaded")

	b.post("/admin/reject/2", url.Values{"action": {"reject"}, "reason": {"dup"}})
	assert.Contains(t, b.get("/admin").Body.String(), moderation.EmptyMessage)

	assert.Equal(t, http.StatusNotFound, b.get("/admin/approve/2").Code)
}

func TestAdmin_FailedActionShowsAlertOnce(t *testing.T) {
	_, b := newTestServer(t, repository.NewSample(repository.Latency{}))
	b.post("/admin/login", url.Values{"key": {"secret"}})
	b.get("/admin")

	// Unknown id fails on the backend
	b.post("/admin/approve/99", url.Values{"confirm": {"yes"}})
	assert.Contains(t, b.get("/admin").Body.String(), moderation.ApproveFailedMessage)
	assert.NotContains(t, b.get("/admin").Body.String(), moderation.ApproveFailedMessage)
}

func TestAdmin_LogoutAndSignedOutActions(t *testing.T) {
	_, b := newTestServer(t, repository.NewSample(repository.Latency{}))
	b.post("/admin/login", url.Values{"key": {"secret"}})

	w := b.post("/admin/logout", nil)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Contains(t, b.get("/admin").Body.String(), `name="key"`)

	w = b.get("/admin/approve/1")
	assert.Equal(t, http.StatusSeeOther, w.Code)
}

func TestAdmin_PlantedCookieNeverReachesAdmin(t *testing.T) {
	srv, attacker := newTestServer(t, repository.NewSample(repository.Latency{}))
	mux := attacker.mux

	// An id the server never issued is replaced on first use
	planted := &browser{t: t, mux: mux, cookie: &http.Cookie{Name: CookieName, Value: "attacker-chosen"}}
	planted.get("/admin")
	require.NotNil(t, planted.cookie)
	assert.NotEqual(t, "attacker-chosen", planted.cookie.Value)

	// An issued id handed to a victim stops working once the victim logs in
	attacker.get("/admin")
	require.NotNil(t, attacker.cookie)
	fixed := attacker.cookie.Value

	victim := &browser{t: t, mux: mux, cookie: &http.Cookie{Name: CookieName, Value: fixed}}
	w := victim.post("/admin/login", url.Values{"key": {"secret"}})
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.NotEqual(t, fixed, victim.cookie.Value, "login must issue a new session id")
	assert.Contains(t, victim.get("/admin").Body.String(), "Popup fly")

	body := attacker.get("/admin").Body.String()
	assert.Contains(t, body, `name="key"`)
	assert.NotContains(t, body, "Popup fly")
	assert.NotEqual(t, fixed, attacker.cookie.Value)

	_, stored, err := srv.store.Lookup(context.Background(), fixed)
	require.NoError(t, err)
	assert.False(t, stored)
}

func TestAdmin_LoginErrorShownOnce(t *testing.T) {
	_, b := newTestServer(t, repository.NewSample(repository.Latency{}))

	w := b.post("/admin/login", url.Values{"key": {" "}})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), moderation.LoginFailedMessage)

	w = b.get("/admin")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), moderation.LoginFailedMessage)
}

func TestAdmin_FailedRejectShowsAlert(t *testing.T) {
	_, b := newTestServer(t, repository.NewSample(repository.Latency{}))
	b.post("/admin/login", url.Values{"key": {"secret"}})

	b.post("/admin/reject/99", url.Values{"action": {"reject"}})
	assert.Contains(t, b.get("/admin").Body.String(), moderation.RejectFailedMessage)
}

func TestAdmin_RestoredAfterEviction(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	srv, b := newTestServer(t, repository.NewSample(repository.Latency{}), WithClock(clock), WithIdleTimeout(time.Minute))

	b.post("/admin/login", url.Values{"key": {"secret"}})
	require.Equal(t, 1, srv.Sessions().Len())

	assert.Equal(t, 1, srv.Sessions().Sweep(now.Add(2*time.Minute)))
	assert.Equal(t, 0, srv.Sessions().Len())

	// Same cookie, fresh in-memory state, key comes back from the store
	assert.Contains(t, b.get("/admin").Body.String(), "Popup fly")
}

func TestRegistry_SweepKeepsActive(t *testing.T) {
	r := newRegistry(time.Minute, func(string) *visitor {
		return &visitor{form: submission.New(repository.NewSample(repository.Latency{}))}
	})
	start := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	r.get("old", start)
	r.get("fresh", start.Add(50*time.Second))

	assert.Equal(t, 1, r.Sweep(start.Add(70*time.Second)))
	assert.Equal(t, 1, r.Len())

	same := r.get("fresh", start.Add(80*time.Second))
	assert.Same(t, same, r.get("fresh", start.Add(81*time.Second)))
}

func TestRegistry_LookupAndRekey(t *testing.T) {
	r := newRegistry(time.Minute, func(string) *visitor {
		return &visitor{form: submission.New(repository.NewSample(repository.Latency{}))}
	})
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)

	_, ok := r.lookup("unknown", now)
	assert.False(t, ok, "lookup must not create sessions")
	assert.Equal(t, 0, r.Len())

	v := r.get("old", now)
	r.rekey("old", "new")

	_, ok = r.lookup("old", now)
	assert.False(t, ok)
	got, ok := r.lookup("new", now)
	require.True(t, ok)
	assert.Same(t, v, got)
}
