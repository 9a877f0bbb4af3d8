package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"

	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/config"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/message"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/translate"
	"github.com/Pen-123/Pen-Morse-Code-Translator/internal/wav"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	tr := New(config.HTTPConfig{MaxBodyBytes: 4096}, nil)
	srv := httptest.NewServer(tr.Routes(translate.New(nil)))
	t.Cleanup(srv.Close)
	return srv
}

func postForm(t *testing.T, srv *httptest.Server, path string, form url.Values) *http.Response {
	t.Helper()
	resp, err := http.PostForm(srv.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(b)
}

func TestPage_Get(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Errorf("Content-Type = %q, want text/html", ct)
	}
	body := readBody(t, resp)
	if !strings.Contains(body, "Pen Federation Morse Code Translator") {
		t.Error("page title missing")
	}
	if !strings.Contains(body, `action="/export"`) {
		t.Error("export form missing")
	}
}

func TestPage_UnknownPathIs404(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/nope")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestForm_Encode(t *testing.T) {
	srv := newTestServer(t)
	resp := postForm(t, srv, "/", url.Values{"mode": {"encode"}, "data": {"sos"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := readBody(t, resp)

	if !strings.Contains(body, `<div class="result">... --- ...</div>`) {
		t.Errorf("result not rendered:\n%s", body)
	}
	if !strings.Contains(body, `name="morse" value="... --- ..."`) {
		t.Error("export form does not carry the morse text")
	}
	if got := strings.Count(body, `<div class="dot">`); got != 6 {
		t.Errorf("dot pulses = %d, want 6", got)
	}
	if got := strings.Count(body, `<div class="dash">`); got != 3 {
		t.Errorf("dash pulses = %d, want 3", got)
	}
	if !strings.Contains(body, `>sos</textarea>`) {
		t.Error("textarea should echo the submitted text")
	}
}

func TestForm_Decode(t *testing.T) {
	srv := newTestServer(t)
	resp := postForm(t, srv, "/", url.Values{"mode": {"decode"}, "data": {".... .. / -- ---"}})
	body := readBody(t, resp)

	if !strings.Contains(body, `<div class="result">HI MO</div>`) {
		t.Errorf("decoded result missing:\n%s", body)
	}
	if !strings.Contains(body, `value="decode" selected`) {
		t.Error("decode option should stay selected")
	}
}

func TestForm_EscapesInput(t *testing.T) {
	srv := newTestServer(t)
	resp := postForm(t, srv, "/", url.Values{"mode": {"encode"}, "data": {"<script>"}})
	body := readBody(t, resp)
	if strings.Contains(body, "<script>") {
		t.Error("user input rendered unescaped")
	}
}

func TestForm_Multipart(t *testing.T) {
	srv := newTestServer(t)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	_ = mw.WriteField("mode", "encode")
	_ = mw.WriteField("data", "e")
	mw.Close()

	resp, err := http.Post(srv.URL+"/", mw.FormDataContentType(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if !strings.Contains(readBody(t, resp), `<div class="result">.</div>`) {
		t.Error("multipart form not translated")
	}
}

func TestForm_MissingFields(t *testing.T) {
	srv := newTestServer(t)
	tests := []struct {
		name string
		path string
		form url.Values
	}{
		{"no mode", "/", url.Values{"data": {"x"}}},
		{"no data", "/", url.Values{"mode": {"encode"}}},
		{"bad mode", "/", url.Values{"mode": {"shout"}, "data": {"x"}}},
		{"no morse", "/export", url.Values{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postForm(t, srv, tt.path, tt.form)
			if resp.StatusCode != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", resp.StatusCode)
			}
		})
	}
}

func TestForm_EmptyDataAllowed(t *testing.T) {
	srv := newTestServer(t)
	resp := postForm(t, srv, "/", url.Values{"mode": {"encode"}, "data": {""}})
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestExportForm(t *testing.T) {
	srv := newTestServer(t)
	resp := postForm(t, srv, "/export", url.Values{"morse": {"."}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "audio/wav" {
		t.Errorf("Content-Type = %q, want audio/wav", ct)
	}
	disp, params, err := mime.ParseMediaType(resp.Header.Get("Content-Disposition"))
	if err != nil || disp != "attachment" || params["filename"] != "morse.wav" {
		t.Errorf("Content-Disposition = %q", resp.Header.Get("Content-Disposition"))
	}
	if got := resp.Header.Get("X-Audio-Duration-Ms"); got != "200" {
		t.Errorf("duration header = %q, want 200", got)
	}

	body := readBody(t, resp)
	if want := wav.HeaderSize + 2*8820; len(body) != want {
		t.Errorf("body length = %d, want %d", len(body), want)
	}
	if !strings.HasPrefix(body, "RIFF") {
		t.Error("body is not a RIFF file")
	}
}

func TestAPI_Translate(t *testing.T) {
	srv := newTestServer(t)

	body := `{"mode":"ENCODE","data":"HELLO WORLD"}`
	resp, err := http.Post(srv.URL+"/api/translate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var res message.TranslateResult
	if err := json.NewDecoder(resp.Body).Decode(&res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := ".... . .-.. .-.. --- / .-- --- .-. .-.. -.."
	if res.Result != want || res.Mode != message.ModeEncode {
		t.Errorf("result = %q (%s), want %q", res.Result, res.Mode, want)
	}
	if res.RequestID == "" || res.RequestID != resp.Header.Get("X-Request-ID") {
		t.Errorf("request id = %q, header = %q", res.RequestID, resp.Header.Get("X-Request-ID"))
	}
}

func TestAPI_TranslateRejects(t *testing.T) {
	srv := newTestServer(t)
	for _, body := range []string{`{`, `{"mode":"sing","data":"x"}`, `{"mode":"encode","data":"x","extra":1}`} {
		resp, err := http.Post(srv.URL+"/api/translate", "application/json", strings.NewReader(body))
		if err != nil {
			t.Fatal(err)
		}
		var res message.TranslateResult
		_ = json.NewDecoder(resp.Body).Decode(&res)
		resp.Body.Close()

		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", body, resp.StatusCode)
		}
		if res.Error == "" {
			t.Errorf("%s: error field empty", body)
		}
	}
}

func TestAPI_TranslateBodyLimit(t *testing.T) {
	srv := newTestServer(t)
	body := `{"mode":"encode","data":"` + strings.Repeat("a", 8192) + `"}`
	resp, err := http.Post(srv.URL+"/api/translate", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400 for oversized body", resp.StatusCode)
	}
}

func TestAPI_Export(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Post(srv.URL+"/api/export", "application/json", strings.NewReader(`{"morse":" "}`))
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	body := readBody(t, resp)
	if want := wav.HeaderSize + 2*(13230+4410); len(body) != want {
		t.Errorf("body length = %d, want %d", len(body), want)
	}
}

func TestSwagger_DocJSON(t *testing.T) {
	srv := newTestServer(t)
	resp, err := http.Get(srv.URL + "/swagger/doc.json")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	var doc struct {
		Paths map[string]any `json:"paths"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, p := range []string{"/api/translate", "/api/export"} {
		if _, ok := doc.Paths[p]; !ok {
			t.Errorf("swagger doc missing path %s", p)
		}
	}
}

func TestWebSocket_Translate(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http")+"/ws", nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close(websocket.StatusNormalClosure, "done")

	exchange := func(frame string) message.TranslateResult {
		t.Helper()
		if err := conn.Write(ctx, websocket.MessageText, []byte(frame)); err != nil {
			t.Fatalf("write: %v", err)
		}
		var res message.TranslateResult
		if err := wsjson.Read(ctx, conn, &res); err != nil {
			t.Fatalf("read: %v", err)
		}
		return res
	}

	if res := exchange(`{"mode":"encode","data":"sos"}`); res.Result != "... --- ..." {
		t.Errorf("encode result = %q", res.Result)
	}
	if res := exchange(`not json`); res.Error == "" {
		t.Error("expected error for malformed frame")
	}
	if res := exchange(`{"mode":"decode","data":"... --- ..."}`); res.Result != "SOS" {
		t.Errorf("decode after bad frame = %q, want SOS (connection should survive)", res.Result)
	}
	if res := exchange(`{"mode":"?","data":"x"}`); res.Error == "" {
		t.Error("expected error for unknown mode")
	}
}

func TestExport_PatternTooLong(t *testing.T) {
	srv := newTestServer(t)
	long := strings.Repeat("-", 4000)

	resp := postForm(t, srv, "/export", url.Values{"morse": {long}})
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("form export status = %d, want 400", resp.StatusCode)
	}

	body := `{"morse":"` + long + `"}`
	apiResp, err := http.Post(srv.URL+"/api/export", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatal(err)
	}
	apiResp.Body.Close()
	if apiResp.StatusCode != http.StatusBadRequest {
		t.Errorf("api export status = %d, want 400", apiResp.StatusCode)
	}
	if ct := apiResp.Header.Get("Content-Type"); ct == "audio/wav" {
		t.Error("oversized pattern was rendered")
	}
}
