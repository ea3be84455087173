package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"ss-quote/go_backend/internal/app/config"
	"ss-quote/go_backend/internal/domain/quote"
	"ss-quote/go_backend/internal/domain/quote/mail"
	"ss-quote/go_backend/internal/domain/quote/pdf"
	"ss-quote/go_backend/internal/domain/quote/pdf/excelauto"
	pdfgen "ss-quote/go_backend/internal/domain/quote/pdf/gofpdf"
	"ss-quote/go_backend/internal/domain/quote/pdf/soffice"
	"ss-quote/go_backend/internal/domain/quote/xlsx"
	"ss-quote/go_backend/internal/infra/settings"
	"ss-quote/go_backend/internal/infra/storage"
)

type converter interface {
	Convert(ctx context.Context, workbook []byte) ([]byte, error)
}

type mailSender interface {
	Send(to, subject, body string, pdf []byte, attachmentName string) error
}

type artifactStore interface {
	Persist(dir, stem string, workbook, pdf []byte) error
}

type Handlers struct {
	Cfg      config.Config
	Settings *settings.Store
	Filler   *xlsx.Filler
	// Converter overrides the per-request backend chain when set (tests).
	Converter converter
	Mailer    mailSender
	Artifacts artifactStore
	sessions  *sessionGuard
}

func New(cfg config.Config, st *settings.Store) *Handlers {
	return &Handlers{
		Cfg:       cfg,
		Settings:  st,
		Filler:    xlsx.New(cfg.TemplatePath),
		Mailer:    mail.NewSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SecretsPath),
		Artifacts: storage.Local{},
		sessions:  newSessionGuard(),
	}
}

func (h *Handlers) converterFor(q quote.Quote) converter {
	if h.Converter != nil {
		return h.Converter
	}
	backends := []pdf.Converter{
		excelauto.New(h.Cfg.ConvertTimeout),
		soffice.New(h.Cfg.SofficeBin, h.Cfg.ConvertTimeout),
	}
	if h.Cfg.NativePDFFallback {
		backends = append(backends, pdfgen.New(q))
	}
	return pdf.NewChain(backends...)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
