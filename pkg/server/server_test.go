package server

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vango-dev/vtree/pkg/document"
	"github.com/vango-dev/vtree/pkg/host/memtree"
	"github.com/vango-dev/vtree/pkg/vdom"
)

func newTestServer(t *testing.T, config *ServerConfig) (*Server, *httptest.Server) {
	t.Helper()
	if config == nil {
		config = &ServerConfig{}
	}
	if config.Metrics == nil {
		config.Metrics = prometheus.NewRegistry()
	}
	s := New(config)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func postRender(t *testing.T, ts *httptest.Server, contentType, body string) (int, Result) {
	t.Helper()
	resp, err := http.Post(ts.URL+"/render", contentType, strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	var res Result
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp.StatusCode, res
}

func TestHealthz(t *testing.T) {
	_, ts := newTestServer(t, nil)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Errorf("GET /healthz = %d %q", resp.StatusCode, body)
	}
}

func TestRenderJSON(t *testing.T) {
	_, ts := newTestServer(t, nil)

	status, res := postRender(t, ts, "application/json",
		`{"tag": "ul", "props": {"class": "list"}, "children": [{"tag": "li", "key": "a", "children": ["A"]}]}`)

	if status != http.StatusOK {
		t.Fatalf("status = %d, error = %+v", status, res.Error)
	}
	if res.HTML != `<ul class="list"><li>A</li></ul>` {
		t.Errorf("html = %q", res.HTML)
	}
	if len(res.Mutations) == 0 || res.Mutations[0].Op != memtree.OpCreateElement {
		t.Errorf("mutations = %v", res.Mutations)
	}
}

func TestRenderYAML(t *testing.T) {
	_, ts := newTestServer(t, nil)

	status, res := postRender(t, ts, "application/yaml", "tag: p\nchildren:\n  - component: Counter\n    props: {start: 2}\n")
	if status != http.StatusOK {
		t.Fatalf("status = %d, error = %+v", status, res.Error)
	}
	if res.HTML != `<p><button class="counter">Count: 2</button></p>` {
		t.Errorf("html = %q", res.HTML)
	}
}

func TestRenderErrors(t *testing.T) {
	_, ts := newTestServer(t, &ServerConfig{MaxDocumentBytes: 64})

	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{"syntax", `{"tag":`, http.StatusUnprocessableEntity, "E030"},
		{"unknown component", `{"component": "Nope"}`, http.StatusUnprocessableEntity, "E002"},
		{"too large", `{"tag": "p", "children": ["` + strings.Repeat("x", 100) + `"]}`, http.StatusRequestEntityTooLarge, "E031"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, res := postRender(t, ts, "application/json", tt.body)
			if status != tt.status {
				t.Errorf("status = %d, want %d", status, tt.status)
			}
			if res.Error == nil || res.Error.Code != tt.code {
				t.Errorf("error = %+v, want code %s", res.Error, tt.code)
			}
		})
	}
}

func TestRenderLifecycleError(t *testing.T) {
	failing := vdom.Define("Failing", func(vdom.Props) vdom.Component { return &failingComponent{} })
	_, ts := newTestServer(t, &ServerConfig{Registry: document.NewRegistry(failing)})

	status, res := postRender(t, ts, "application/json", `{"component": "Failing"}`)
	if status != http.StatusConflict {
		t.Errorf("status = %d, want %d", status, http.StatusConflict)
	}
	if res.Error == nil || res.Error.Code != "E010" || res.Error.Component != "Failing" {
		t.Errorf("error = %+v", res.Error)
	}
}

type failingComponent struct{}

func (failingComponent) Render() *vdom.VNode { return vdom.P("never") }
func (failingComponent) WillMount() error  { return io.ErrUnexpectedEOF }

func TestMetricsEndpoint(t *testing.T) {
	_, ts := newTestServer(t, nil)
	postRender(t, ts, "application/json", `{"tag": "p", "children": ["x"]}`)

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	for _, want := range []string{
		`vtree_http_requests_total{route="/render",status="200"} 1`,
		`vtree_reconcile_host_ops_total{op="CreateElement"} 1`,
	} {
		if !strings.Contains(string(body), want) {
			t.Errorf("/metrics is missing %q", want)
		}
	}
}

func TestDefaultMetricsRegistry(t *testing.T) {
	s := New(nil)
	families, err := s.MetricsRegistry().Gather()
	if err != nil {
		t.Fatal(err)
	}
	found := false
	for _, f := range families {
		if f.GetName() == "go_goroutines" {
			found = true
		}
	}
	if !found {
		t.Error("default registry has no Go collector")
	}
	if s.Config().Address != "localhost:7070" {
		t.Errorf("Address = %q", s.Config().Address)
	}
}

func TestRequestFormat(t *testing.T) {
	tests := []struct {
		url         string
		contentType string
		want        document.Format
	}{
		{"/render", "", document.FormatJSON},
		{"/render", "application/x-yaml", document.FormatYAML},
		{"/render?format=yaml", "application/json", document.FormatYAML},
		{"/render?format=json", "text/yaml", document.FormatJSON},
		{"/render?format=toml", "text/yaml", document.FormatYAML},
	}

	for _, tt := range tests {
		r := httptest.NewRequest(http.MethodPost, tt.url, nil)
		if tt.contentType != "" {
			r.Header.Set("Content-Type", tt.contentType)
		}
		if got := requestFormat(r); got != tt.want {
			t.Errorf("requestFormat(%s, %s) = %v, want %v", tt.url, tt.contentType, got, tt.want)
		}
	}
}

func TestServeShutdown(t *testing.T) {
	s := New(&ServerConfig{Metrics: prometheus.NewRegistry()})
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Serve(ctx, ln) }()

	url := "http://" + ln.Addr().String() + "/healthz"
	deadline := time.Now().Add(2 * time.Second)
	for {
		resp, err := http.Get(url)
		if err == nil {
			resp.Body.Close()
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not start: %v", err)
		}
		time.Sleep(10 * time.Millisecond)
	}

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestMetricsEndpointDisabled(t *testing.T) {
	_, ts := newTestServer(t, &ServerConfig{DisableMetricsEndpoint: true, Namespace: "custom"})

	resp, err := http.Get(ts.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("GET /metrics = %d, want 404", resp.StatusCode)
	}
}

func TestMetricsNamespace(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, ts := newTestServer(t, &ServerConfig{Metrics: reg, Namespace: "custom"})
	postRender(t, ts, "application/json", `{"tag": "p"}`)

	families, err := reg.Gather()
	if err != nil {
		t.Fatal(err)
	}
	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	for _, want := range []string{"custom_http_requests_total", "custom_reconcile_host_ops_total"} {
		if !names[want] {
			t.Errorf("missing metric family %s", want)
		}
	}
}
