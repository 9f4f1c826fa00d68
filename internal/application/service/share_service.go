package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"

	"mims-console/internal/domain/entity"
	"mims-console/pkg/apperror"
	"mims-console/pkg/render"
)

// ShareService distributes an invoice over WhatsApp: render the PDF,
// upload it to the transient file host, and build a wa.me deep link
// carrying the download URL. The pipeline short-circuits on the first
// failed stage; no partial link is ever returned.
type ShareService struct {
	export          *ExportService
	http            *http.Client
	uploadURL       string
	countryCode     string
	messageTemplate string
}

// NewShareService creates a new share service
func NewShareService(export *ExportService, httpClient *http.Client, uploadURL, countryCode, messageTemplate string) *ShareService {
	return &ShareService{
		export:          export,
		http:            httpClient,
		uploadURL:       uploadURL,
		countryCode:     countryCode,
		messageTemplate: messageTemplate,
	}
}

// ShareOutput represents the assembled share link
type ShareOutput struct {
	FileURL string `json:"file_url"`
	WaLink  string `json:"wa_link"`
}

// Share runs the full pipeline for a composed invoice document.
func (s *ShareService) Share(ctx context.Context, doc entity.InvoiceDocument, format render.PageFormat) (*ShareOutput, error) {
	phone, err := NormalizePhone(doc.Customer.Mobile, s.countryCode)
	if err != nil {
		return nil, err
	}

	pdf, err := s.export.Export(ctx, doc, format)
	if err != nil {
		return nil, err
	}

	fileURL, err := s.upload(ctx, "invoice-"+doc.InvoiceNumber+".pdf", pdf)
	if err != nil {
		return nil, err
	}

	message := strings.NewReplacer(
		"{name}", doc.Customer.Name,
		"{business}", doc.Business.BusinessName,
		"{url}", fileURL,
	).Replace(s.messageTemplate)

	return &ShareOutput{
		FileURL: fileURL,
		WaLink:  "https://wa.me/" + phone + "?text=" + url.QueryEscape(message),
	}, nil
}

// upload hands the PDF to the file host and returns the direct download
// URL. The host answers {"data": {"url": ...}} with a viewer URL; the
// /dl/ rewrite turns it into a direct download so the recipient gets the
// file, not an interstitial page.
func (s *ShareService) upload(ctx context.Context, filename string, pdf []byte) (string, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	fw, err := w.CreateFormFile("file", filename)
	if err != nil {
		return "", apperror.NewUploadFailedError("Could not prepare the invoice upload")
	}
	if _, err := fw.Write(pdf); err != nil {
		return "", apperror.NewUploadFailedError("Could not prepare the invoice upload")
	}
	if err := w.Close(); err != nil {
		return "", apperror.NewUploadFailedError("Could not prepare the invoice upload")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uploadURL, &buf)
	if err != nil {
		return "", apperror.NewUploadFailedError("Could not prepare the invoice upload")
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := s.http.Do(req)
	if err != nil {
		return "", apperror.NewUploadFailedError("Invoice upload failed")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil || resp.StatusCode != http.StatusOK {
		return "", apperror.NewUploadFailedError("Invoice upload failed")
	}

	var result struct {
		Data struct {
			URL string `json:"url"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil || result.Data.URL == "" {
		return "", apperror.NewUploadFailedError("File host returned an unexpected response")
	}

	return strings.Replace(result.Data.URL, "tmpfiles.org/", "tmpfiles.org/dl/", 1), nil
}

// NormalizePhone strips formatting from a mobile number and ensures the
// country code prefix. A bare 10-digit number gets the prefix added; the
// result must be country code plus 10 digits.
func NormalizePhone(raw, countryCode string) (string, error) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, raw)

	if digits == "" {
		return "", apperror.NewValidationError("mobile", "Customer mobile number is required")
	}
	if len(digits) == 10 {
		digits = countryCode + digits
	}
	if len(digits) != len(countryCode)+10 || !strings.HasPrefix(digits, countryCode) {
		return "", apperror.NewValidationError("mobile", "Enter a valid 10-digit mobile number")
	}
	return digits, nil
}
