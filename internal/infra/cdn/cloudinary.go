// Package cdn uploads product photos to Cloudinary.
package cdn

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"watch-storefront/config"
	"watch-storefront/internal/domain/catalog"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// Transformation crops every upload to an 800x800 square and lets the CDN
// pick quality and format per client.
const Transformation = "c_fill,g_auto,h_800,w_800/q_auto,f_auto"

type uploadAPI interface {
	Upload(ctx context.Context, file interface{}, params uploader.UploadParams) (*uploader.UploadResult, error)
}

type Uploader struct {
	api    uploadAPI
	folder string
}

func New(cfg config.CloudinaryConfig) (*Uploader, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cfg.URL != "" {
		cld, err = cloudinary.NewFromURL(cfg.URL)
	} else {
		cld, err = cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	}
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &Uploader{api: &cld.Upload, folder: cfg.Folder}, nil
}

// Upload streams r to the configured folder and returns the HTTPS URL of
// the stored image.
func (u *Uploader) Upload(ctx context.Context, r io.Reader, filename string) (string, error) {
	res, err := u.api.Upload(ctx, r, uploader.UploadParams{
		PublicID:       publicID(filename),
		Folder:         u.folder,
		ResourceType:   "image",
		Transformation: Transformation,
	})
	if err != nil {
		return "", err
	}
	if res.Error.Message != "" {
		return "", errors.New(res.Error.Message)
	}
	if res.SecureURL == "" {
		return "", errors.New("cloudinary returned no secure url")
	}
	return res.SecureURL, nil
}

func publicID(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return catalog.MakeSlug(base) + "-" + uuid.NewString()[:8]
}
