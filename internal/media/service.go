package media

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/easybody/easybody-backend/pkg/config"
	"github.com/easybody/easybody-backend/pkg/enums"
	pkgerrors "github.com/easybody/easybody-backend/pkg/errors"
	"github.com/easybody/easybody-backend/pkg/storage/s3"
)

type presigner interface {
	PresignUpload(ctx context.Context, key, contentType string) (*s3.UploadTicket, error)
	ObjectKey(folder string, userID uuid.UUID, fileName string) string
}

// Bucket folders per media kind. Keys stay browseable by purpose.
var folderByKind = map[enums.MediaKind]string{
	enums.MediaKindOfferPhoto:   "offer-images",
	enums.MediaKindGymPhoto:     "gym-logos",
	enums.MediaKindProfilePhoto: "pt-profiles",
}

// Service issues direct-upload tickets for client media.
type Service interface {
	CreateUploadURL(ctx context.Context, userID uuid.UUID, input UploadRequest) (*s3.UploadTicket, error)
}

// UploadRequest describes the object a client wants to upload.
type UploadRequest struct {
	FileName    string          `json:"file_name" validate:"required"`
	ContentType string          `json:"content_type" validate:"required"`
	SizeBytes   int64           `json:"size_bytes" validate:"required,gt=0"`
	Kind        enums.MediaKind `json:"kind" validate:"required"`
}

type service struct {
	storage  presigner
	mediaCfg config.MediaConfig
}

// NewService builds the media service.
func NewService(storage presigner, mediaCfg config.MediaConfig) (Service, error) {
	if storage == nil {
		return nil, fmt.Errorf("storage client required")
	}
	return &service{storage: storage, mediaCfg: mediaCfg}, nil
}

func (s *service) CreateUploadURL(ctx context.Context, userID uuid.UUID, input UploadRequest) (*s3.UploadTicket, error) {
	if strings.TrimSpace(input.FileName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "file name is required")
	}
	if !input.Kind.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid media kind")
	}
	contentType, err := validateContentType(input.Kind, input.ContentType)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	maxBytes := int64(s.mediaCfg.MaxUploadMB) * 1024 * 1024
	if input.SizeBytes <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "size must be positive")
	}
	if maxBytes > 0 && input.SizeBytes > maxBytes {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("file exceeds the %dMB upload limit", s.mediaCfg.MaxUploadMB))
	}

	key := s.storage.ObjectKey(folderByKind[input.Kind], userID, input.FileName)
	ticket, err := s.storage.PresignUpload(ctx, key, contentType)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "presign upload")
	}
	return ticket, nil
}
