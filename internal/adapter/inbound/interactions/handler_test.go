package interactions_test

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/bwmarrin/discordgo"

	"github.com/jonny/dispatchbot/internal/adapter/inbound/interactions"
	"github.com/jonny/dispatchbot/internal/domain/model"
	"github.com/jonny/dispatchbot/internal/domain/port/inbound"
	"github.com/jonny/dispatchbot/internal/domain/service"
)

const downloadURL = "https://files.example.com/release.zip"

// fakeChannels serves a fixed channel graph and can be told to fail.
type fakeChannels struct {
	mu       sync.Mutex
	channels map[string]model.Channel
	err      error
	calls    int
}

func (f *fakeChannels) FetchChannel(_ context.Context, id string) (model.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return model.Channel{}, f.err
	}
	c, ok := f.channels[id]
	if !ok {
		return model.Channel{}, fmt.Errorf("unknown channel %s", id)
	}
	return c, nil
}

// spyPort counts dispatches before delegating.
type spyPort struct {
	next  inbound.InteractionPort
	calls int
}

func (s *spyPort) Dispatch(ctx context.Context, in model.Interaction) (model.Reply, error) {
	s.calls++
	return s.next.Dispatch(ctx, in)
}

type testEnv struct {
	routes   http.Handler
	priv     ed25519.PrivateKey
	port     *spyPort
	channels *fakeChannels
	logs     *bytes.Buffer
}

func newTestEnv(t *testing.T, cfg service.DownloadConfig) *testEnv {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))

	channels := &fakeChannels{channels: map[string]model.Channel{
		"text-ok":    {ID: "text-ok", Type: discordgo.ChannelTypeGuildText, ParentID: "cat-ok"},
		"text-other": {ID: "text-other", Type: discordgo.ChannelTypeGuildText, ParentID: "cat-other"},
		"thread-ok":  {ID: "thread-ok", Type: discordgo.ChannelTypeGuildPublicThread, ParentID: "text-ok"},
	}}

	router := service.NewRouter(nil, logger)
	router.Register("test", inbound.CommandHandlerFunc(service.Hello))
	router.Register("download", service.NewDownloadCommand(cfg, service.NewChannelAuthorizer(channels), nil, logger))

	port := &spyPort{next: service.NewDispatcher(router, logger)}
	srv := interactions.NewServer(interactions.ServerConfig{PublicKey: pub}, interactions.NewHandler(port, logger), logger)

	return &testEnv{routes: srv.SetupRoutes(), priv: priv, port: port, channels: channels, logs: &logs}
}

func (e *testEnv) post(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	const ts = "1700000000"
	req := httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature-Timestamp", ts)
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(ed25519.Sign(e.priv, []byte(ts+body))))
	rw := httptest.NewRecorder()
	e.routes.ServeHTTP(rw, req)
	return rw
}

type wireReply struct {
	Type int `json:"type"`
	Data *struct {
		Flags      int `json:"flags"`
		Components []struct {
			Type       int    `json:"type"`
			Content    string `json:"content"`
			Components []struct {
				Type  int    `json:"type"`
				Style int    `json:"style"`
				Label string `json:"label"`
				URL   string `json:"url"`
			} `json:"components"`
		} `json:"components"`
	} `json:"data"`
	Error string `json:"error"`
}

func decode(t *testing.T, rw *httptest.ResponseRecorder) wireReply {
	t.Helper()
	var out wireReply
	if err := json.Unmarshal(rw.Body.Bytes(), &out); err != nil {
		t.Fatalf("decoding response %q: %v", rw.Body.String(), err)
	}
	return out
}

const ephemeral = 1 << 6

func downloadBody(channelJSON string) string {
	return `{"id":"int-1","type":2,"data":{"name":"download"},` + channelJSON + `,"member":{"user":{"id":"u-1"}}}`
}

func TestHandler_InvalidSignatureNeverDispatches(t *testing.T) {
	env := newTestEnv(t, service.DownloadConfig{URL: downloadURL, AllowedCategoryID: "cat-ok"})

	req := httptest.NewRequest(http.MethodPost, "/interactions", strings.NewReader(`{"type":1}`))
	req.Header.Set("X-Signature-Timestamp", "1700000000")
	req.Header.Set("X-Signature-Ed25519", strings.Repeat("00", ed25519.SignatureSize))
	rw := httptest.NewRecorder()
	env.routes.ServeHTTP(rw, req)

	if rw.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rw.Code)
	}
	if env.port.calls != 0 {
		t.Errorf("dispatcher must not run, ran %d times", env.port.calls)
	}
}

func TestHandler_Ping(t *testing.T) {
	env := newTestEnv(t, service.DownloadConfig{})

	for _, body := range []string{`{"type":1}`, `{"id":"x","type":1,"data":{"name":"download"},"channel_id":"text-ok"}`} {
		rw := env.post(t, body)
		if rw.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rw.Code)
		}
		if got := strings.TrimSpace(rw.Body.String()); got != `{"type":1}` {
			t.Errorf("body = %s, want {\"type\":1}", got)
		}
	}
	if env.channels.calls != 0 {
		t.Errorf("ping must not look up channels")
	}
}

func TestHandler_UnknownCommand(t *testing.T) {
	env := newTestEnv(t, service.DownloadConfig{})

	rw := env.post(t, `{"id":"1","type":2,"data":{"name":"nope"}}`)

	if rw.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rw.Code)
	}
	if got := strings.TrimSpace(rw.Body.String()); got != `{"error":"unknown command"}` {
		t.Errorf("body = %s", got)
	}
}

func TestHandler_UnknownInteractionType(t *testing.T) {
	env := newTestEnv(t, service.DownloadConfig{})

	rw := env.post(t, `{"id":"1","type":3}`)

	if rw.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rw.Code)
	}
	if got := strings.TrimSpace(rw.Body.String()); got != `{"error":"unknown interaction type"}` {
		t.Errorf("body = %s", got)
	}
}

func TestHandler_InvalidJSON(t *testing.T) {
	env := newTestEnv(t, service.DownloadConfig{})

	rw := env.post(t, `{"type":`)
	if rw.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rw.Code)
	}
	if env.port.calls != 0 {
		t.Error("dispatcher must not run for an undecodable payload")
	}
}

func TestHandler_TestCommand(t *testing.T) {
	env := newTestEnv(t, service.DownloadConfig{})

	out := decode(t, env.post(t, `{"id":"1","type":2,"data":{"name":"test"},"channel_id":"c"}`))
	if out.Type != 4 || out.Data == nil || len(out.Data.Components) != 1 {
		t.Fatalf("unexpected reply %+v", out)
	}
	if !strings.HasPrefix(out.Data.Components[0].Content, "hello world ") {
		t.Errorf("unexpected content %q", out.Data.Components[0].Content)
	}
}

// Scenario A: no download URL configured.
func TestHandler_Download_MissingURL(t *testing.T) {
	env := newTestEnv(t, service.DownloadConfig{AllowedCategoryID: "cat-ok"})

	out := decode(t, env.post(t, downloadBody(`"channel_id":"text-ok"`)))

	if out.Data == nil || out.Data.Flags&ephemeral != 0 {
		t.Fatalf("expected public reply, got %+v", out)
	}
	if out.Data.Components[0].Content != "Configurazione mancante: DOWNLOAD_URL non impostato." {
		t.Errorf("unexpected content %q", out.Data.Components[0].Content)
	}
}

// Scenario B: category matches, for both channel id shapes.
func TestHandler_Download_Authorized(t *testing.T) {
	env := newTestEnv(t, service.DownloadConfig{URL: downloadURL, AllowedCategoryID: "cat-ok"})

	for _, shape := range []string{`"channel_id":"text-ok"`, `"channel":{"id":"thread-ok"}`} {
		out := decode(t, env.post(t, downloadBody(shape)))

		if out.Data == nil || len(out.Data.Components) != 2 {
			t.Fatalf("%s: unexpected reply %+v", shape, out)
		}
		row := out.Data.Components[1]
		if row.Type != 1 || len(row.Components) != 1 {
			t.Fatalf("%s: expected one action row with one button, got %+v", shape, row)
		}
		if row.Components[0].URL != downloadURL {
			t.Errorf("%s: button url = %q, want %q", shape, row.Components[0].URL, downloadURL)
		}
		if out.Data.Flags&ephemeral != 0 {
			t.Errorf("%s: success reply must be public", shape)
		}
	}
}

// Scenario C: category does not match.
func TestHandler_Download_WrongCategory(t *testing.T) {
	env := newTestEnv(t, service.DownloadConfig{URL: downloadURL, AllowedCategoryID: "cat-ok"})

	out := decode(t, env.post(t, downloadBody(`"channel_id":"text-other"`)))

	if out.Data == nil || out.Data.Flags&ephemeral == 0 {
		t.Fatalf("expected ephemeral reply, got %+v", out)
	}
	if out.Data.Components[0].Content != "Questo comando può essere usato solo nella categoria autorizzata." {
		t.Errorf("unexpected content %q", out.Data.Components[0].Content)
	}
}

// Scenario D: REST lookup fails.
func TestHandler_Download_UpstreamFailure(t *testing.T) {
	env := newTestEnv(t, service.DownloadConfig{URL: downloadURL, AllowedCategoryID: "cat-ok"})
	env.channels.err = errors.New("HTTP 503 Service Unavailable")

	rw := env.post(t, downloadBody(`"channel_id":"text-ok"`))
	if rw.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rw.Code)
	}
	out := decode(t, rw)

	if out.Data == nil || out.Data.Flags&ephemeral == 0 {
		t.Fatalf("expected ephemeral reply, got %+v", out)
	}
	if out.Data.Components[0].Content != "Si è verificato un errore durante l'esecuzione del comando." {
		t.Errorf("unexpected content %q", out.Data.Components[0].Content)
	}
	if strings.Contains(rw.Body.String(), "503") {
		t.Error("upstream error leaked to the client")
	}
	if !strings.Contains(env.logs.String(), "HTTP 503 Service Unavailable") {
		t.Error("expected upstream error to be logged")
	}
}

func TestHealthHandler(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rw := httptest.NewRecorder()
	interactions.HealthHandler()(rw, req)

	if rw.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rw.Code)
	}
	body, _ := io.ReadAll(rw.Body)
	if !strings.Contains(string(body), "ok") {
		t.Errorf("expected 'ok' in response body, got %q", body)
	}
}
