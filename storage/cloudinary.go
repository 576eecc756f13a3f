package storage

import (
	"context"
	"crypto/sha1"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// CloudinaryConfig carries the credentials for the media asset service.
type CloudinaryConfig struct {
	CloudName string
	APIKey    string
	APISecret string
	Folder    string
}

// Cloudinary is a signed-request client for the Cloudinary upload and
// destroy endpoints.
type Cloudinary struct {
	cfg  CloudinaryConfig
	rest *resty.Client
	log  *zap.Logger
	now  func() time.Time
}

// NewCloudinary builds a media client. Credentials are validated at config
// load time, not here.
func NewCloudinary(cfg CloudinaryConfig, log *zap.Logger) *Cloudinary {
	rest := resty.New().
		SetBaseURL("https://api.cloudinary.com/v1_1/" + cfg.CloudName).
		SetTimeout(30 * time.Second)

	return &Cloudinary{cfg: cfg, rest: rest, log: log, now: time.Now}
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	URL       string `json:"url"`
	Result    string `json:"result"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadBase64 uploads a base64 media payload under publicID and returns the
// delivery URL. mediaType selects the image or video pipeline; a data-URI
// prefix on the payload is tolerated.
func (c *Cloudinary) UploadBase64(ctx context.Context, base64Src, publicID, mediaType string) (string, error) {
	if base64Src == "" {
		return "", fmt.Errorf("empty media payload")
	}
	if i := strings.Index(base64Src, ","); i != -1 {
		base64Src = base64Src[i+1:]
	}

	resource := resourcePath(mediaType)
	dataURI := "data:image/jpeg;base64,"
	if resource == "video" {
		dataURI = "data:video/mp4;base64,"
	}

	finalID := c.withFolder(publicID)
	timestamp := fmt.Sprintf("%d", c.now().Unix())

	var out cloudinaryResponse
	res, err := c.rest.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"file":      dataURI + base64Src,
			"api_key":   c.cfg.APIKey,
			"public_id": finalID,
			"timestamp": timestamp,
			"signature": c.sign(finalID, timestamp),
		}).
		SetResult(&out).
		Post("/" + resource + "/upload")
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}
	if res.IsError() {
		return "", fmt.Errorf("cloudinary upload: status %d", res.StatusCode())
	}
	if out.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload: %s", out.Error.Message)
	}

	url := out.SecureURL
	if url == "" {
		url = out.URL
	}
	if url == "" {
		return "", fmt.Errorf("cloudinary upload: no URL in response")
	}
	return url, nil
}

// Destroy deletes the asset identified by publicID from the pipeline
// matching mediaType.
func (c *Cloudinary) Destroy(ctx context.Context, publicID, mediaType string) error {
	finalID := c.withFolder(publicID)
	timestamp := fmt.Sprintf("%d", c.now().Unix())

	var out cloudinaryResponse
	res, err := c.rest.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			"public_id": finalID,
			"api_key":   c.cfg.APIKey,
			"timestamp": timestamp,
			"signature": c.sign(finalID, timestamp),
		}).
		SetResult(&out).
		Post("/" + resourcePath(mediaType) + "/destroy")
	if err != nil {
		return fmt.Errorf("cloudinary destroy: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("cloudinary destroy: status %d", res.StatusCode())
	}
	if out.Error.Message != "" {
		return fmt.Errorf("cloudinary destroy: %s", out.Error.Message)
	}
	if out.Result != "ok" && out.Result != "not found" {
		return fmt.Errorf("cloudinary destroy: result %q", out.Result)
	}
	return nil
}

// resourcePath maps a stored media type onto the Cloudinary resource
// segment. Anything but "video" goes through the image pipeline.
func resourcePath(mediaType string) string {
	if mediaType == "video" {
		return "video"
	}
	return "image"
}

func (c *Cloudinary) withFolder(publicID string) string {
	if c.cfg.Folder != "" && !strings.HasPrefix(publicID, c.cfg.Folder+"/") {
		return c.cfg.Folder + "/" + publicID
	}
	return publicID
}

// sign produces the SHA1 request signature Cloudinary expects over the
// public_id and timestamp parameters.
func (c *Cloudinary) sign(publicID, timestamp string) string {
	payload := fmt.Sprintf("public_id=%s&timestamp=%s%s", publicID, timestamp, c.cfg.APISecret)
	return fmt.Sprintf("%x", sha1.Sum([]byte(payload)))
}

// PublicIDFromURL derives the asset identifier from a delivery URL: the path
// segments following the v<version> marker, with the file extension removed.
// Returns "" when the URL carries no version marker.
func PublicIDFromURL(rawURL string) string {
	parts := strings.Split(rawURL, "/")
	for i, part := range parts {
		if !isVersionMarker(part) {
			continue
		}
		id := strings.Join(parts[i+1:], "/")
		if dot := strings.LastIndex(id, "."); dot != -1 {
			id = id[:dot]
		}
		return id
	}
	return ""
}

func isVersionMarker(segment string) bool {
	if len(segment) < 2 || segment[0] != 'v' {
		return false
	}
	for _, r := range segment[1:] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
