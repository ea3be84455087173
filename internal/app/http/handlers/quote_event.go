package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"ss-quote/go_backend/internal/domain/quote"
	"ss-quote/go_backend/internal/domain/quote/mail"
)

type planPayload struct {
	Rows []quote.RawRow `json:"rows"`
}

type QuoteEventRequest struct {
	RequestID string `json:"request_id"`
	Action    string `json:"action"`
	Data      struct {
		Recipient string      `json:"recipient"`
		Ext       string      `json:"ext"`
		QuoteDate string      `json:"quote_date"`
		Email     string      `json:"email"`
		Plan1     planPayload `json:"plan1"`
		Plan2     planPayload `json:"plan2"`
		Discount1 interface{} `json:"discount1"`
		Discount2 interface{} `json:"discount2"`
	} `json:"data"`
}

type QuoteEventResponse struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Filename  string `json:"filename,omitempty"`
	Content   string `json:"content,omitempty"`
	Message   string `json:"message,omitempty"`
	Truncated bool   `json:"truncated,omitempty"`
}

const (
	actionDownloadPDF = "download_pdf"
	actionPreviewPDF  = "preview_pdf"
	actionSendEmail   = "send_email"
)

// QuoteEvent is the bridge entry point: one inbound event, one response.
// Duplicate request ids within a session are answered from the cache.
func (h *Handlers) QuoteEvent(w http.ResponseWriter, r *http.Request) {
	var req QuoteEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	if req.RequestID == "" {
		req.RequestID = uuid.NewString()
	}

	session := r.Header.Get("X-Session-ID")
	if resp, ok := h.sessions.cached(session, req.RequestID); ok {
		writeJSON(w, resp)
		return
	}

	resp := h.Process(r.Context(), req)
	h.sessions.remember(session, req.RequestID, resp)
	writeJSON(w, resp)
}

// Process runs the pipeline: normalize rows, compute totals, fill the
// template, convert to PDF, then dispatch per action. Every failure comes
// back as a message-type response; nothing is persisted or delivered after
// a failed conversion.
func (h *Handlers) Process(ctx context.Context, req QuoteEventRequest) QuoteEventResponse {
	switch req.Action {
	case actionDownloadPDF, actionPreviewPDF, actionSendEmail:
	default:
		return message(req.RequestID, "알 수 없는 요청입니다.")
	}

	data := req.Data
	recipientRaw := strings.TrimSpace(data.Recipient)
	recipient := ""
	if recipientRaw != "" {
		recipient = recipientRaw + " 귀하"
	}

	rows1, trunc1 := quote.NormalizeRows(data.Plan1.Rows)
	rows2, trunc2 := quote.NormalizeRows(data.Plan2.Rows)
	truncated := trunc1 || trunc2

	q := quote.Quote{
		Recipient: recipient,
		Ext:       strings.TrimSpace(data.Ext),
		Email:     strings.TrimSpace(data.Email),
		Date:      quote.ParseDate(data.QuoteDate),
	}
	q.Plan1 = buildPlan(rows1, data.Discount1)
	q.Plan2 = buildPlan(rows2, data.Discount2)
	q.Summary = quote.BuildSummary(q.Plan1.Prepay, q.Plan2.Prepay)

	workbook, err := h.Filler.Fill(q)
	if err != nil {
		log.Printf("quote %s: fill failed: %v", req.RequestID, err)
		return message(req.RequestID, "견적서 생성 실패: "+err.Error())
	}

	pdfBytes, err := h.converterFor(q).Convert(ctx, workbook)
	if err != nil {
		log.Printf("quote %s: conversion failed: %v", req.RequestID, err)
		return message(req.RequestID, "PDF 생성 실패: "+err.Error())
	}

	stem := quote.BuildFileStem(recipientRaw, q.Date)
	filename := stem + ".pdf"
	content := base64.StdEncoding.EncodeToString(pdfBytes)

	switch req.Action {
	case actionSendEmail:
		if q.Email == "" {
			return message(req.RequestID, "이메일 주소를 입력하세요.")
		}
		subject := fmt.Sprintf("비교 견적서 (%s)", orDefault(recipientRaw, "수신자"))
		body := "첨부된 PDF 견적서를 확인해 주세요."
		if err := h.Mailer.Send(q.Email, subject, body, pdfBytes, filename); err != nil {
			log.Printf("quote %s: mail failed: %v", req.RequestID, err)
			if errors.Is(err, mail.ErrCredentialsMissing) {
				return message(req.RequestID, "Gmail 계정 정보가 없습니다. 비밀 설정 또는 환경변수를 확인하세요.")
			}
			return message(req.RequestID, "전송 실패: "+err.Error())
		}
		h.persist(req.RequestID, stem, workbook, pdfBytes)
		return QuoteEventResponse{
			ID:        req.RequestID,
			Type:      "pdf",
			Filename:  filename,
			Content:   content,
			Message:   "이메일 전송 완료",
			Truncated: truncated,
		}

	case actionDownloadPDF:
		h.persist(req.RequestID, stem, workbook, pdfBytes)
		return QuoteEventResponse{
			ID:        req.RequestID,
			Type:      "pdf",
			Filename:  filename,
			Content:   content,
			Truncated: truncated,
		}

	default: // actionPreviewPDF
		return QuoteEventResponse{
			ID:        req.RequestID,
			Type:      "preview",
			Filename:  filename,
			Content:   content,
			Truncated: truncated,
		}
	}
}

func buildPlan(rows []quote.LineItem, rawDiscount interface{}) quote.Plan {
	p := quote.Plan{Rows: rows, Discount: quote.ParseFloat(rawDiscount)}
	p.Total = quote.ComputeTotal(rows)
	p.Prepay = quote.ComputePrepay(p.Total, p.Discount)
	return p
}

// persist saves artifacts best-effort. By the time it runs the document has
// already been delivered or handed back, so a write failure is logged and
// not surfaced to the user.
func (h *Handlers) persist(requestID, stem string, workbook, pdfBytes []byte) {
	if err := h.Artifacts.Persist(h.Settings.SaveDir(), stem, workbook, pdfBytes); err != nil {
		log.Printf("quote %s: persist failed: %v", requestID, err)
	}
}

func message(id, text string) QuoteEventResponse {
	return QuoteEventResponse{ID: id, Type: "message", Message: text}
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
