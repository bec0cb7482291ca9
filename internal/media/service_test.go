package media

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/easybody/easybody-backend/pkg/config"
	"github.com/easybody/easybody-backend/pkg/enums"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/storage/s3"
)

type stubStorage struct {
	key         string
	contentType string
}

func (s *stubStorage) PresignUpload(_ context.Context, key, contentType string) (*s3.UploadTicket, error) {
	s.key = key
	s.contentType = contentType
	return &s3.UploadTicket{UploadURL: "https://upload.example.com/" + key, Key: key}, nil
}

func (s *stubStorage) ObjectKey(folder string, userID uuid.UUID, fileName string) string {
	return folder + "/" + userID.String() + "/" + fileName
}

func mediaCfg() config.MediaConfig {
	return config.MediaConfig{MaxUploadMB: 10}
}

func TestCreateUploadURL(t *testing.T) {
	storage := &stubStorage{}
	svc, err := NewService(storage, mediaCfg())
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	ticket, err := svc.CreateUploadURL(context.Background(), uuid.New(), UploadRequest{
		FileName:    "before-after.jpg",
		ContentType: "image/jpeg",
		SizeBytes:   2 << 20,
		Kind:        enums.MediaKindOfferPhoto,
	})
	if err != nil {
		t.Fatalf("create upload url: %v", err)
	}
	if ticket.UploadURL == "" || ticket.Key == "" {
		t.Fatal("expected populated ticket")
	}
	if storage.contentType != "image/jpeg" {
		t.Fatalf("unexpected content type %s", storage.contentType)
	}
}

func TestCreateUploadURLRejectsOversizedFile(t *testing.T) {
	svc, _ := NewService(&stubStorage{}, mediaCfg())

	_, err := svc.CreateUploadURL(context.Background(), uuid.New(), UploadRequest{
		FileName:    "huge.png",
		ContentType: "image/png",
		SizeBytes:   11 << 20,
		Kind:        enums.MediaKindGymPhoto,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateUploadURLRejectsWrongTypeForKind(t *testing.T) {
	svc, _ := NewService(&stubStorage{}, mediaCfg())

	_, err := svc.CreateUploadURL(context.Background(), uuid.New(), UploadRequest{
		FileName:    "clip.mp4",
		ContentType: "video/mp4",
		SizeBytes:   1 << 20,
		Kind:        enums.MediaKindProfilePhoto,
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateUploadURLRejectsUnknownKind(t *testing.T) {
	svc, _ := NewService(&stubStorage{}, mediaCfg())

	_, err := svc.CreateUploadURL(context.Background(), uuid.New(), UploadRequest{
		FileName:    "a.png",
		ContentType: "image/png",
		SizeBytes:   1024,
		Kind:        enums.MediaKind("BANNER"),
	})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
