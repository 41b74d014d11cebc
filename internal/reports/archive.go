package reports

import (
	"context"
	"fmt"
	"io"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Archiver stores a rendered report and returns its URL.
type Archiver interface {
	Archive(ctx context.Context, publicID string, r io.Reader) (string, error)
}

type CloudinaryArchiver struct {
	cld    *cloudinary.Cloudinary
	folder string
}

func NewCloudinaryArchiver(cld *cloudinary.Cloudinary, folder string) *CloudinaryArchiver {
	return &CloudinaryArchiver{cld: cld, folder: folder}
}

// Archive uploads r as a raw asset; existing assets are never overwritten.
func (a *CloudinaryArchiver) Archive(ctx context.Context, publicID string, r io.Reader) (string, error) {
	resp, err := a.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       a.folder,
		PublicID:     publicID,
		ResourceType: "raw",
		Overwrite:    api.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", resp.Error.Message)
	}
	return resp.SecureURL, nil
}
