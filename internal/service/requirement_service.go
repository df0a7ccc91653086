package service

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/noah-isme/sis-portal-api/internal/models"
	appErrors "github.com/noah-isme/sis-portal-api/pkg/errors"
	"github.com/noah-isme/sis-portal-api/pkg/storage"
)

const sniffLen = 3072

type requirementStore interface {
	ListForStudent(ctx context.Context, studentID string) ([]models.Requirement, error)
	FindForStudent(ctx context.Context, id, studentID string) (*models.Requirement, error)
	MarkSubmitted(ctx context.Context, id string, doc models.RequirementDocument, submittedAt time.Time) error
}

type documentStorage interface {
	Save(name string, r io.Reader) (int64, error)
	Open(name string) (*os.File, error)
	Delete(name string) error
}

type documentSigner interface {
	Generate(subject, relPath string) (string, time.Time, error)
	Parse(token string) (subject, relPath string, err error)
}

// RequirementServiceConfig bounds uploads and shapes download links.
type RequirementServiceConfig struct {
	MaxFileSize  int64
	AllowedMIMEs []string
	DownloadPath string
}

// DocumentUpload is a file received for a requirement.
type DocumentUpload struct {
	FileName string
	Size     int64
	Content  io.Reader
}

// DocumentLink is a short-lived download URL.
type DocumentLink struct {
	URL       string    `json:"url"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// DocumentDownload is an opened stored document. The caller closes Content.
type DocumentDownload struct {
	Content     io.ReadCloser
	Size        int64
	FileName    string
	ContentType string
}

// RequirementService manages admission requirement documents.
type RequirementService struct {
	repo    requirementStore
	files   documentStorage
	signer  documentSigner
	logger  *zap.Logger
	cfg     RequirementServiceConfig
	now     func() time.Time
	allowed map[string]struct{}
}

// NewRequirementService constructs the service.
func NewRequirementService(repo requirementStore, files documentStorage, signer documentSigner, logger *zap.Logger, cfg RequirementServiceConfig) *RequirementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.MaxFileSize <= 0 {
		cfg.MaxFileSize = 5 << 20
	}
	if cfg.DownloadPath == "" {
		cfg.DownloadPath = "/api/v1/documents/download"
	}
	allowed := make(map[string]struct{}, len(cfg.AllowedMIMEs))
	for _, m := range cfg.AllowedMIMEs {
		allowed[strings.ToLower(strings.TrimSpace(m))] = struct{}{}
	}
	return &RequirementService{repo: repo, files: files, signer: signer, logger: logger, cfg: cfg, now: time.Now, allowed: allowed}
}

// List returns the requirements of the student's latest admission application.
func (s *RequirementService) List(ctx context.Context, studentID string) ([]models.Requirement, error) {
	items, err := s.repo.ListForStudent(ctx, studentID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requirements")
	}
	if items == nil {
		items = []models.Requirement{}
	}
	return items, nil
}

// Upload stores a document for the requirement and marks it SUBMITTED. The
// type is detected from the content, not the client's declared type.
func (s *RequirementService) Upload(ctx context.Context, studentID, requirementID string, upload DocumentUpload) (*models.Requirement, error) {
	if upload.Size > s.cfg.MaxFileSize {
		return nil, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxFileSize))
	}

	req, err := s.findOwned(ctx, studentID, requirementID)
	if err != nil {
		return nil, err
	}
	if req.Status == models.RequirementVerified {
		return nil, appErrors.Clone(appErrors.ErrConflict, "requirement has already been verified")
	}

	head := make([]byte, sniffLen)
	n, err := io.ReadFull(upload.Content, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "failed to read upload")
	}
	if n == 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "file is empty")
	}
	head = head[:n]
	detected := mimetype.Detect(head)
	if !s.mimeAllowed(detected) {
		return nil, appErrors.Clone(appErrors.ErrUnsupportedMedia, fmt.Sprintf("file type %s is not allowed", detected.String()))
	}

	name := filepath.ToSlash(filepath.Join(requirementID, uuid.NewString()+detected.Extension()))
	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), upload.Content), s.cfg.MaxFileSize+1)
	written, err := s.files.Save(name, body)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store document")
	}
	if written > s.cfg.MaxFileSize {
		s.discard(name)
		return nil, appErrors.Clone(appErrors.ErrPayloadTooLarge, fmt.Sprintf("file exceeds %d bytes", s.cfg.MaxFileSize))
	}

	doc := models.RequirementDocument{
		FilePath: name,
		FileName: cleanFileName(upload.FileName),
		MimeType: baseMIME(detected.String()),
	}
	submittedAt := s.now().UTC()
	if err := s.repo.MarkSubmitted(ctx, req.ID, doc, submittedAt); err != nil {
		s.discard(name)
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to record document")
	}
	if req.FilePath != nil && *req.FilePath != name {
		s.discard(*req.FilePath)
	}

	req.Status = models.RequirementSubmitted
	req.FilePath = &doc.FilePath
	req.FileName = &doc.FileName
	req.MimeType = &doc.MimeType
	req.SubmittedAt = &submittedAt
	s.logger.Info("requirement document uploaded",
		zap.String("student_id", studentID),
		zap.String("requirement_id", req.ID),
		zap.String("mime_type", doc.MimeType),
		zap.Int64("bytes", written),
	)
	return req, nil
}

// DocumentLink returns a signed URL for the requirement's uploaded document.
func (s *RequirementService) DocumentLink(ctx context.Context, studentID, requirementID string) (*DocumentLink, error) {
	req, err := s.findOwned(ctx, studentID, requirementID)
	if err != nil {
		return nil, err
	}
	if req.FilePath == nil || *req.FilePath == "" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no document uploaded for this requirement")
	}
	fileName := filepath.Base(*req.FilePath)
	if req.FileName != nil && *req.FileName != "" {
		fileName = *req.FileName
	}
	token, expiresAt, err := s.signer.Generate(documentSubject(req.ID, fileName), *req.FilePath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to sign download link")
	}
	return &DocumentLink{
		URL:       s.cfg.DownloadPath + "?token=" + url.QueryEscape(token),
		ExpiresAt: expiresAt,
	}, nil
}

// OpenDocument validates a download token and opens the file it names. The
// download carries the name the student uploaded.
func (s *RequirementService) OpenDocument(token string) (*DocumentDownload, error) {
	subject, relPath, err := s.signer.Parse(token)
	if err != nil {
		if errors.Is(err, storage.ErrTokenExpired) {
			return nil, appErrors.Clone(appErrors.ErrForbidden, "download link has expired")
		}
		return nil, appErrors.Clone(appErrors.ErrForbidden, "invalid download link")
	}

	file, err := s.files.Open(relPath)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrNotFound.Code, appErrors.ErrNotFound.Status, "document not found")
	}
	info, err := file.Stat()
	if err != nil {
		_ = file.Close()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read document")
	}
	detected, err := mimetype.DetectReader(file)
	if err != nil {
		_ = file.Close()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read document")
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		_ = file.Close()
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read document")
	}

	return &DocumentDownload{
		Content:     file,
		Size:        info.Size(),
		FileName:    downloadName(subject, relPath),
		ContentType: detected.String(),
	}, nil
}

func (s *RequirementService) findOwned(ctx context.Context, studentID, requirementID string) (*models.Requirement, error) {
	req, err := s.repo.FindForStudent(ctx, requirementID, studentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "requirement not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load requirement")
	}
	return req, nil
}

func (s *RequirementService) mimeAllowed(detected *mimetype.MIME) bool {
	if len(s.allowed) == 0 {
		return true
	}
	for m := detected; m != nil; m = m.Parent() {
		if _, ok := s.allowed[baseMIME(m.String())]; ok {
			return true
		}
	}
	return false
}

func (s *RequirementService) discard(name string) {
	if err := s.files.Delete(name); err != nil {
		s.logger.Warn("failed to delete stored document", zap.String("path", name), zap.Error(err))
	}
}

// documentSubject binds the requirement id and the uploaded file name into a
// token subject. The name is base64url encoded so it cannot contain '.'.
func documentSubject(requirementID, fileName string) string {
	return requirementID + "~" + base64.RawURLEncoding.EncodeToString([]byte(fileName))
}

func downloadName(subject, relPath string) string {
	if _, encoded, ok := strings.Cut(subject, "~"); ok {
		if raw, err := base64.RawURLEncoding.DecodeString(encoded); err == nil && len(raw) > 0 {
			return cleanFileName(string(raw))
		}
	}
	return filepath.Base(relPath)
}

func baseMIME(value string) string {
	if i := strings.Index(value, ";"); i >= 0 {
		value = value[:i]
	}
	return strings.ToLower(strings.TrimSpace(value))
}

func cleanFileName(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "document"
	}
	return name
}
