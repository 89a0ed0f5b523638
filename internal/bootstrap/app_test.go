package bootstrap

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"speakofy-backend/internal/shared/config"
)

type recordingLLM struct {
	answer string
	prompt string
}

func (r *recordingLLM) Generate(_ context.Context, prompt string) (string, error) {
	r.prompt = prompt
	return r.answer, nil
}

func newTestApp(t *testing.T) (*App, *recordingLLM) {
	t.Helper()
	app, err := Build(config.Config{
		Env:       "dev",
		JWTSecret: "test-secret",
	})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	llm := &recordingLLM{answer: "Ishmael."}
	app.QAService.LLM = llm
	return app, llm
}

func doJSON(t *testing.T, app *App, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return out
}

func signupAndLogin(t *testing.T, app *App, name, email string) string {
	t.Helper()
	w := doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"name":            name,
		"email":           email,
		"password":        "hunter22",
		"confirmPassword": "hunter22",
		"dateOfBirth":     "1990-06-01",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("signup %s: status %d body %s", email, w.Code, w.Body.String())
	}

	w = doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    email,
		"password": "hunter22",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s: status %d body %s", email, w.Code, w.Body.String())
	}
	token, _ := decode(t, w)["token"].(string)
	if token == "" {
		t.Fatalf("login %s: missing token", email)
	}
	return token
}

func uploadPDF(t *testing.T, app *App, token, filename string, data []byte) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("form file: %v", err)
	}
	if _, err := part.Write(data); err != nil {
		t.Fatalf("write part: %v", err)
	}
	mw.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/documents", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, req)
	return w
}

func TestGuardianUploadsAndAnotherUserAsks(t *testing.T) {
	app, llm := newTestApp(t)

	guardianToken := signupAndLogin(t, app, "Alice", "alice@example.com")

	w := uploadPDF(t, app, guardianToken, "Moby.pdf", buildPDF(t, []string{"Call me Ishmael."}))
	if w.Code != http.StatusCreated {
		t.Fatalf("upload: status %d body %s", w.Code, w.Body.String())
	}

	readerToken := signupAndLogin(t, app, "Bob", "bob@example.com")

	w = doJSON(t, app, http.MethodGet, "/api/v1/documents", readerToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("catalog: status %d body %s", w.Code, w.Body.String())
	}
	choices, _ := decode(t, w)["choices"].([]any)
	if len(choices) != 1 {
		t.Fatalf("expected 1 choice, got %d", len(choices))
	}
	choice := choices[0].(map[string]any)
	if choice["label"] != "Moby.pdf (by Alice)" {
		t.Fatalf("unexpected label %q", choice["label"])
	}

	w = doJSON(t, app, http.MethodPost, "/api/v1/documents/select", readerToken, map[string]any{
		"label": "Moby.pdf (by Alice)",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("select: status %d body %s", w.Code, w.Body.String())
	}

	w = doJSON(t, app, http.MethodPost, "/api/v1/qa", readerToken, map[string]any{
		"question": "Who speaks first?",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("ask: status %d body %s", w.Code, w.Body.String())
	}
	if decode(t, w)["answer"] != "Ishmael." {
		t.Fatalf("unexpected answer body %s", w.Body.String())
	}
	if !strings.Contains(llm.prompt, "Call me Ishmael.") {
		t.Fatalf("prompt missing book text: %q", llm.prompt)
	}
	if !strings.Contains(llm.prompt, "Who speaks first?") {
		t.Fatalf("prompt missing question: %q", llm.prompt)
	}
}

func TestLoginSeedsLatestUploadForQA(t *testing.T) {
	app, _ := newTestApp(t)

	token := signupAndLogin(t, app, "Alice", "alice@example.com")
	if w := uploadPDF(t, app, token, "First.pdf", buildPDF(t, []string{"first book"})); w.Code != http.StatusCreated {
		t.Fatalf("upload first: status %d", w.Code)
	}
	if w := uploadPDF(t, app, token, "Second.pdf", buildPDF(t, []string{"second book"})); w.Code != http.StatusCreated {
		t.Fatalf("upload second: status %d", w.Code)
	}

	// A fresh login must preload the latest upload without an explicit select.
	w := doJSON(t, app, http.MethodPost, "/api/v1/auth/login", "", map[string]any{
		"email":    "alice@example.com",
		"password": "hunter22",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("relogin: status %d", w.Code)
	}
	token2, _ := decode(t, w)["token"].(string)

	llm := &recordingLLM{answer: "ok"}
	app.QAService.LLM = llm
	w = doJSON(t, app, http.MethodPost, "/api/v1/qa", token2, map[string]any{
		"question": "What is this?",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("ask: status %d body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(llm.prompt, "second book") {
		t.Fatalf("expected latest upload in prompt, got %q", llm.prompt)
	}
}

func TestEmptyCatalogAndNoSelection(t *testing.T) {
	app, _ := newTestApp(t)

	token := signupAndLogin(t, app, "Alice", "alice@example.com")

	w := doJSON(t, app, http.MethodGet, "/api/v1/documents", token, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("catalog: expected 404, got %d", w.Code)
	}
	body := decode(t, w)
	if errBody, ok := body["error"].(map[string]any); !ok || errBody["code"] != "empty_catalog" {
		t.Fatalf("expected empty_catalog, got %s", w.Body.String())
	}

	w = doJSON(t, app, http.MethodPost, "/api/v1/qa", token, map[string]any{
		"question": "Anything?",
	})
	if w.Code != http.StatusConflict {
		t.Fatalf("ask: expected 409, got %d body %s", w.Code, w.Body.String())
	}
}

func TestUploadWithoutTextRejected(t *testing.T) {
	app, _ := newTestApp(t)

	token := signupAndLogin(t, app, "Alice", "alice@example.com")

	w := uploadPDF(t, app, token, "blank.pdf", buildPDF(t, []string{""}))
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d body %s", w.Code, w.Body.String())
	}
	body := decode(t, w)
	if errBody, ok := body["error"].(map[string]any); !ok || errBody["code"] != "empty_extraction" {
		t.Fatalf("expected empty_extraction, got %s", w.Body.String())
	}
}

func TestRequestsWithoutTokenRejected(t *testing.T) {
	app, _ := newTestApp(t)

	w := doJSON(t, app, http.MethodGet, "/api/v1/documents", "", nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestSignupUnderageRejected(t *testing.T) {
	app, _ := newTestApp(t)

	w := doJSON(t, app, http.MethodPost, "/api/v1/auth/signup", "", map[string]any{
		"name":            "Kid",
		"email":           "kid@example.com",
		"password":        "pw",
		"confirmPassword": "pw",
		"dateOfBirth":     "2010-01-01",
	})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d body %s", w.Code, w.Body.String())
	}
}

// buildPDF assembles a minimal uncompressed PDF with one page per entry; an
// empty entry produces a page without a content stream.
func buildPDF(t *testing.T, pages []string) []byte {
	t.Helper()

	var buf bytes.Buffer
	var offsets []int
	writeObj := func(body string) {
		offsets = append(offsets, buf.Len())
		buf.WriteString(body)
	}

	buf.WriteString("%PDF-1.4\n")

	type pageObj struct {
		num     int
		content int
	}
	var pageObjs []pageObj
	var kids []string
	objNum := 4
	for _, text := range pages {
		p := pageObj{num: objNum}
		objNum++
		if text != "" {
			p.content = objNum
			objNum++
		}
		pageObjs = append(pageObjs, p)
		kids = append(kids, fmt.Sprintf("%d 0 R", p.num))
	}

	writeObj("1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n")
	writeObj(fmt.Sprintf("2 0 obj\n<< /Type /Pages /Kids [%s] /Count %d >>\nendobj\n",
		strings.Join(kids, " "), len(pages)))
	writeObj("3 0 obj\n<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>\nendobj\n")

	for i, p := range pageObjs {
		contents := ""
		if p.content != 0 {
			contents = fmt.Sprintf(" /Contents %d 0 R", p.content)
		}
		writeObj(fmt.Sprintf("%d 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >>%s >>\nendobj\n",
			p.num, contents))
		if p.content != 0 {
			stream := fmt.Sprintf("BT /F1 12 Tf 72 720 Td (%s) Tj ET", pages[i])
			writeObj(fmt.Sprintf("%d 0 obj\n<< /Length %d >>\nstream\n%s\nendstream\nendobj\n",
				p.content, len(stream), stream))
		}
	}

	xrefOffset := buf.Len()
	size := len(offsets) + 1
	fmt.Fprintf(&buf, "xref\n0 %d\n", size)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", size, xrefOffset)

	return buf.Bytes()
}
