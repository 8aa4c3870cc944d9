package chat

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	pdf "github.com/ledongthuc/pdf"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/cogniwise/cogniwise/internal/apperr"
	"github.com/cogniwise/cogniwise/internal/llm"
	"github.com/cogniwise/cogniwise/internal/store"
)

// MaxDocumentLen caps the extracted text kept from an uploaded document.
const MaxDocumentLen = 10000

// MaxUploadSize caps the raw upload.
const MaxUploadSize = 10 << 20

var (
	// ErrNotPDF is returned for uploads without a PDF header.
	ErrNotPDF = errors.New("file is not a PDF")
	// ErrNoText is returned when a PDF has no extractable text, e.g. a scan.
	ErrNoText = errors.New("no text could be extracted from the document")
)

// UploadRequest is a document shared into the chat.
type UploadRequest struct {
	UserID   string
	Filename string
	Data     []byte
}

// UploadResult echoes what was stored.
type UploadResult struct {
	Message       string `json:"message"`
	ExtractedText string `json:"extracted_text"`
}

// Upload extracts the text of a PDF and stores it as a user message, so
// later Send calls replay it as conversation context.
func (s *Service) Upload(ctx context.Context, req UploadRequest) (*UploadResult, error) {
	ctx, span := tracer.Start(ctx, "chat.Upload")
	defer span.End()

	userID := strings.TrimSpace(req.UserID)
	name := filepath.Base(strings.TrimSpace(req.Filename))
	if userID == "" {
		return nil, apperr.Missing("user_id")
	}
	if name == "" || name == "." || len(req.Data) == 0 {
		return nil, apperr.Missing("file")
	}

	text, err := ExtractPDF(req.Data)
	if err != nil {
		s.log.Info("document rejected", zap.String("user_id", userID), zap.String("file", name), zap.Error(err))
		return nil, apperr.Invalid("file", err)
	}
	text = truncateRunes(text, MaxDocumentLen)
	span.SetAttributes(attribute.Int("chat.document_len", len(text)))

	content := fmt.Sprintf("I am uploading a document for analysis: %s.\n\nDocument Content:\n%s\n\n[End of Document]\n"+
		"Please analyze this document and answer my questions about it.", name, text)
	if err := s.repo.Append(ctx, &store.ChatMessage{
		UserID:    userID,
		Role:      string(llm.RoleUser),
		Content:   content,
		CreatedAt: s.now().UTC(),
	}); err != nil {
		return nil, apperr.Persistence("save document message", err)
	}

	return &UploadResult{
		Message:       "File processed successfully",
		ExtractedText: "[User uploaded PDF content]:\n" + text + "\n[End of PDF]",
	}, nil
}

// ExtractPDF returns the plain text of every page with whitespace collapsed.
// The type is sniffed from the bytes, not taken from the file name.
func ExtractPDF(data []byte) (text string, err error) {
	if len(data) < 5 || string(data[:5]) != "%PDF-" {
		return "", ErrNotPDF
	}
	// The parser panics on some malformed cross-reference tables.
	defer func() {
		if p := recover(); p != nil {
			text, err = "", fmt.Errorf("pdf parse: %v", p)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	text = strings.Join(strings.Fields(string(b)), " ")
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
