package handlers

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"ss-quote/go_backend/internal/app/config"
	"ss-quote/go_backend/internal/domain/quote"
	"ss-quote/go_backend/internal/domain/quote/mail"
	"ss-quote/go_backend/internal/domain/quote/xlsx"
	"ss-quote/go_backend/internal/infra/settings"
)

type fakeConverter struct {
	out   []byte
	err   error
	calls int
}

func (f *fakeConverter) Convert(ctx context.Context, workbook []byte) ([]byte, error) {
	f.calls++
	return f.out, f.err
}

type fakeMailer struct {
	err   error
	calls int
	to    string
	name  string
}

func (f *fakeMailer) Send(to, subject, body string, pdf []byte, attachmentName string) error {
	f.calls++
	f.to = to
	f.name = attachmentName
	return f.err
}

type persistCall struct {
	dir, stem string
	pdf       []byte
}

type fakeStore struct {
	calls []persistCall
}

func (f *fakeStore) Persist(dir, stem string, workbook, pdf []byte) error {
	f.calls = append(f.calls, persistCall{dir: dir, stem: stem, pdf: pdf})
	return nil
}

func newTestHandlers(t *testing.T) (*Handlers, *fakeConverter, *fakeMailer, *fakeStore) {
	t.Helper()
	tmp := t.TempDir()

	templatePath := filepath.Join(tmp, "SS.xlsx")
	f := excelize.NewFile()
	if err := f.SaveAs(templatePath); err != nil {
		t.Fatalf("save template: %v", err)
	}

	conv := &fakeConverter{out: []byte("%PDF-fake")}
	mailer := &fakeMailer{}
	store := &fakeStore{}

	h := &Handlers{
		Cfg:       config.Config{TemplatePath: templatePath},
		Settings:  settings.New(filepath.Join(tmp, "settings.json"), filepath.Join(tmp, "quotes")),
		Filler:    xlsx.New(templatePath),
		Converter: conv,
		Mailer:    mailer,
		Artifacts: store,
		sessions:  newSessionGuard(),
	}
	return h, conv, mailer, store
}

func eventRequest(action string) QuoteEventRequest {
	var req QuoteEventRequest
	req.RequestID = "req-1"
	req.Action = action
	req.Data.Recipient = "홍길동"
	req.Data.QuoteDate = "2024-08-05"
	req.Data.Plan1.Rows = []quote.RawRow{{Model: "A", Price: float64(10000), Qty: float64(2)}}
	req.Data.Plan2.Rows = []quote.RawRow{{Model: "B", Price: float64(5000), Qty: float64(1)}}
	req.Data.Discount1 = float64(0)
	req.Data.Discount2 = float64(0)
	return req
}

func TestProcessUnknownAction(t *testing.T) {
	h, conv, mailer, store := newTestHandlers(t)

	resp := h.Process(context.Background(), eventRequest("explode"))
	if resp.Type != "message" || resp.Message != "알 수 없는 요청입니다." {
		t.Fatalf("resp = %+v", resp)
	}
	if conv.calls != 0 || mailer.calls != 0 || len(store.calls) != 0 {
		t.Fatal("unknown action triggered pipeline work")
	}
}

func TestProcessDownloadPDF(t *testing.T) {
	h, conv, _, store := newTestHandlers(t)

	resp := h.Process(context.Background(), eventRequest("download_pdf"))
	if resp.Type != "pdf" {
		t.Fatalf("resp = %+v", resp)
	}
	if resp.Filename != "홍길동귀하08월05일.pdf" {
		t.Fatalf("filename = %q", resp.Filename)
	}
	decoded, err := base64.StdEncoding.DecodeString(resp.Content)
	if err != nil || string(decoded) != "%PDF-fake" {
		t.Fatalf("content = %q, err = %v", decoded, err)
	}
	if conv.calls != 1 {
		t.Fatalf("converter calls = %d", conv.calls)
	}
	if len(store.calls) != 1 || store.calls[0].stem != "홍길동귀하08월05일" {
		t.Fatalf("persist calls = %+v", store.calls)
	}
}

func TestProcessPreviewDoesNotPersist(t *testing.T) {
	h, _, _, store := newTestHandlers(t)

	resp := h.Process(context.Background(), eventRequest("preview_pdf"))
	if resp.Type != "preview" || resp.Content == "" {
		t.Fatalf("resp = %+v", resp)
	}
	if len(store.calls) != 0 {
		t.Fatal("preview persisted artifacts")
	}
}

func TestProcessSendEmail(t *testing.T) {
	h, _, mailer, store := newTestHandlers(t)

	req := eventRequest("send_email")
	req.Data.Email = "hong@example.com"
	resp := h.Process(context.Background(), req)

	if resp.Type != "pdf" || resp.Message != "이메일 전송 완료" {
		t.Fatalf("resp = %+v", resp)
	}
	if mailer.calls != 1 || mailer.to != "hong@example.com" {
		t.Fatalf("mailer = %+v", mailer)
	}
	if mailer.name != "홍길동귀하08월05일.pdf" {
		t.Fatalf("attachment = %q", mailer.name)
	}
	if len(store.calls) != 1 {
		t.Fatalf("persist calls = %d", len(store.calls))
	}
}

func TestProcessSendEmailWithoutAddress(t *testing.T) {
	h, _, mailer, store := newTestHandlers(t)

	resp := h.Process(context.Background(), eventRequest("send_email"))
	if resp.Type != "message" || resp.Message != "이메일 주소를 입력하세요." {
		t.Fatalf("resp = %+v", resp)
	}
	if mailer.calls != 0 {
		t.Fatal("delivery attempted without an address")
	}
	if len(store.calls) != 0 {
		t.Fatal("artifacts persisted without an address")
	}
}

func TestProcessSendEmailCredentialsMissing(t *testing.T) {
	h, _, mailer, store := newTestHandlers(t)
	mailer.err = mail.ErrCredentialsMissing

	req := eventRequest("send_email")
	req.Data.Email = "hong@example.com"
	resp := h.Process(context.Background(), req)

	if resp.Type != "message" || !strings.Contains(resp.Message, "Gmail") {
		t.Fatalf("resp = %+v", resp)
	}
	if len(store.calls) != 0 {
		t.Fatal("artifacts persisted after failed delivery")
	}
}

func TestProcessSendEmailTransportFailure(t *testing.T) {
	h, _, mailer, store := newTestHandlers(t)
	mailer.err = errors.New("smtp send: connection reset")

	req := eventRequest("send_email")
	req.Data.Email = "hong@example.com"
	resp := h.Process(context.Background(), req)

	if resp.Type != "message" || !strings.Contains(resp.Message, "전송 실패") {
		t.Fatalf("resp = %+v", resp)
	}
	if len(store.calls) != 0 {
		t.Fatal("artifacts persisted after failed delivery")
	}
}

func TestProcessConversionFailure(t *testing.T) {
	h, conv, mailer, store := newTestHandlers(t)
	conv.out = nil
	conv.err = errors.New("excel-automation: broken / libreoffice: broken")

	req := eventRequest("send_email")
	req.Data.Email = "hong@example.com"
	resp := h.Process(context.Background(), req)

	if resp.Type != "message" || !strings.Contains(resp.Message, "PDF 생성 실패") {
		t.Fatalf("resp = %+v", resp)
	}
	if !strings.Contains(resp.Message, "libreoffice") {
		t.Fatalf("message lost backend detail: %q", resp.Message)
	}
	if mailer.calls != 0 || len(store.calls) != 0 {
		t.Fatal("conversion failure did not short-circuit")
	}
}

func TestProcessTemplateMissing(t *testing.T) {
	h, _, _, store := newTestHandlers(t)
	h.Filler = xlsx.New(filepath.Join(t.TempDir(), "gone.xlsx"))

	resp := h.Process(context.Background(), eventRequest("download_pdf"))
	if resp.Type != "message" || !strings.Contains(resp.Message, "견적서 생성 실패") {
		t.Fatalf("resp = %+v", resp)
	}
	if len(store.calls) != 0 {
		t.Fatal("artifacts persisted without a document")
	}
}

func TestProcessFlagsTruncation(t *testing.T) {
	h, _, _, _ := newTestHandlers(t)

	req := eventRequest("preview_pdf")
	rows := make([]quote.RawRow, 12)
	for i := range rows {
		rows[i] = quote.RawRow{Model: "M", Price: float64(100), Qty: float64(1)}
	}
	req.Data.Plan1.Rows = rows

	resp := h.Process(context.Background(), req)
	if !resp.Truncated {
		t.Fatal("truncation not flagged")
	}
}

func TestProcessEmptyPlansDifferenceZero(t *testing.T) {
	h, _, _, _ := newTestHandlers(t)

	req := eventRequest("preview_pdf")
	req.Data.Recipient = ""
	req.Data.Plan1.Rows = nil
	req.Data.Plan2.Rows = nil

	resp := h.Process(context.Background(), req)
	if resp.Type != "preview" {
		t.Fatalf("resp = %+v", resp)
	}
	if !strings.HasPrefix(resp.Filename, "견적서") {
		t.Fatalf("filename = %q", resp.Filename)
	}
}

func TestQuoteEventIdempotentPerSession(t *testing.T) {
	h, conv, _, _ := newTestHandlers(t)

	body, err := json.Marshal(eventRequest("download_pdf"))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var first QuoteEventResponse
	for i := 0; i < 2; i++ {
		req := httptest.NewRequest("POST", "/v1/quotes/event", bytes.NewReader(body))
		req.Header.Set("X-Session-ID", "session-a")
		rec := httptest.NewRecorder()
		h.QuoteEvent(rec, req)

		var resp QuoteEventResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if i == 0 {
			first = resp
		} else if resp != first {
			t.Fatalf("cached response differs: %+v vs %+v", resp, first)
		}
	}
	if conv.calls != 1 {
		t.Fatalf("converter calls = %d, duplicate was reprocessed", conv.calls)
	}
}

func TestQuoteEventAssignsRequestID(t *testing.T) {
	h, _, _, _ := newTestHandlers(t)

	req := httptest.NewRequest("POST", "/v1/quotes/event", strings.NewReader(`{"action":"noop"}`))
	rec := httptest.NewRecorder()
	h.QuoteEvent(rec, req)

	var resp QuoteEventResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.ID == "" {
		t.Fatal("response id empty for event without request_id")
	}
}

func TestSettingsRoundTrip(t *testing.T) {
	h, _, _, _ := newTestHandlers(t)
	target := filepath.Join(t.TempDir(), "moved")

	body, _ := json.Marshal(settingsPayload{SaveDir: target})
	rec := httptest.NewRecorder()
	h.UpdateSettings(rec, httptest.NewRequest("PUT", "/v1/settings", bytes.NewReader(body)))
	if rec.Code != 200 {
		t.Fatalf("update status = %d", rec.Code)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("save dir not created: %v", err)
	}

	rec = httptest.NewRecorder()
	h.GetSettings(rec, httptest.NewRequest("GET", "/v1/settings", nil))
	var got settingsPayload
	if err := json.NewDecoder(rec.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.SaveDir != target {
		t.Fatalf("save_dir = %q, want %q", got.SaveDir, target)
	}
}

func TestUpdateSettingsRejectsEmpty(t *testing.T) {
	h, _, _, _ := newTestHandlers(t)

	rec := httptest.NewRecorder()
	h.UpdateSettings(rec, httptest.NewRequest("PUT", "/v1/settings", strings.NewReader(`{"save_dir":"  "}`)))
	if rec.Code != 400 {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
