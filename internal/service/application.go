package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"uploadtest/internal/config"
	"uploadtest/internal/model"
	"uploadtest/internal/repository"
	"uploadtest/internal/storage"
)

var (
	ErrIDRequired        = errors.New("id is required")
	ErrNotFound          = errors.New("application not found")
	ErrInvalidDocument   = errors.New("document must be an image")
	ErrDocumentTooLarge  = errors.New("document exceeds 5MB")
	ErrDocumentReaderNil = errors.New("document reader is nil")
)

// ValidationError lists the required form fields that were missing or blank.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}

// DocumentInput is the optional attachment of a submission.
type DocumentInput struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// SubmitInput is one multipart submission of the test-upload form.
type SubmitInput struct {
	Fields   map[string]string
	Document *DocumentInput
}

// ApplicationService defines the use cases behind the test-upload endpoint.
type ApplicationService interface {
	// Submit validates the form, stores the document, then persists the application.
	// The stored document is removed again if persisting fails.
	Submit(ctx context.Context, in SubmitInput) (*model.UploadResponse, error)

	// Get returns a previously submitted application.
	Get(ctx context.Context, id string) (*model.StoredApplication, error)

	// Ready checks the storage and repository backends.
	Ready(ctx context.Context) error
}

type applicationService struct {
	store storage.Storage
	repo  repository.ApplicationRepository
	now   func() time.Time
}

func NewApplicationService(store storage.Storage, repo repository.ApplicationRepository) ApplicationService {
	return &applicationService{store: store, repo: repo, now: time.Now}
}

func (s *applicationService) Submit(ctx context.Context, in SubmitInput) (*model.UploadResponse, error) {
	var missing []string
	for _, name := range model.FieldNames {
		if strings.TrimSpace(in.Fields[name]) == "" {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Missing: missing}
	}

	id := uuid.NewString()
	now := s.now().UTC()

	var details []model.DocumentDetail
	var storedKey string
	if in.Document != nil {
		detail, key, err := s.storeDocument(ctx, id, now, in.Document)
		if err != nil {
			return nil, err
		}
		details = append(details, detail)
		storedKey = key
	}

	app := &model.StoredApplication{
		ID:                id,
		ApplicantName:     strings.TrimSpace(in.Fields["firstName"] + " " + in.Fields["lastName"]),
		Email:             in.Fields["email"],
		LoanAmount:        in.Fields["loanAmount"],
		Fields:            pick(in.Fields),
		DocumentsUploaded: len(details),
		CreatedAt:         now,
	}
	stored, err := s.repo.Create(ctx, app)
	if err != nil {
		if storedKey != "" {
			if delErr := s.store.Delete(ctx, storedKey); delErr != nil {
				return nil, fmt.Errorf("db save failed: %v; rollback delete failed: %v", err, delErr)
			}
		}
		return nil, fmt.Errorf("db save failed: %w", err)
	}

	return &model.UploadResponse{
		Success:           true,
		ApplicationID:     stored.ID,
		DocumentsUploaded: stored.DocumentsUploaded,
		DocumentDetails:   details,
	}, nil
}

func (s *applicationService) storeDocument(ctx context.Context, id string, now time.Time, doc *DocumentInput) (model.DocumentDetail, string, error) {
	if doc.Reader == nil {
		return model.DocumentDetail{}, "", ErrDocumentReaderNil
	}
	if !strings.HasPrefix(doc.ContentType, "image/") {
		return model.DocumentDetail{}, "", ErrInvalidDocument
	}
	if doc.Size > config.MaxImageSize {
		return model.DocumentDetail{}, "", ErrDocumentTooLarge
	}

	name := path.Base(doc.Filename)
	key := fmt.Sprintf("applications/%s/%d_%s", id, now.UnixMilli(), name)
	info, err := s.store.Put(ctx, key, doc.Reader, storage.PutObjectOptions{
		Size:        doc.Size,
		ContentType: doc.ContentType,
		Metadata: map[string]string{
			"original-name": doc.Filename,
			"uploaded-at":   now.Format(time.RFC3339),
		},
	})
	if err != nil {
		return model.DocumentDetail{}, "", fmt.Errorf("upload to storage: %w", err)
	}

	link, err := s.store.URL(ctx, info.Key)
	if err != nil {
		_ = s.store.Delete(ctx, info.Key)
		return model.DocumentDetail{}, "", fmt.Errorf("document url: %w", err)
	}

	return model.DocumentDetail{
		URL:        link,
		FileName:   doc.Filename,
		FileSize:   info.Size,
		FileType:   doc.ContentType,
		UploadedAt: now,
	}, info.Key, nil
}

func (s *applicationService) Get(ctx context.Context, id string) (*model.StoredApplication, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	app, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (s *applicationService) Ready(ctx context.Context) error {
	if err := s.repo.Ping(ctx); err != nil {
		return fmt.Errorf("repository: %w", err)
	}
	if err := s.store.Ping(ctx); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	return nil
}

// pick keeps only the known application fields.
func pick(fields map[string]string) map[string]string {
	out := make(map[string]string, len(model.FieldNames))
	for _, name := range model.FieldNames {
		out[name] = fields[name]
	}
	return out
}
