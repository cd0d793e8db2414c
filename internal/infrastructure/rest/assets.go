package rest

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"

	"github.com/labelforge/labelforge-go/internal/core/domain"
	"github.com/labelforge/labelforge-go/internal/core/ports"
)

// AssetClient implements ports.AssetAPI over /api/assets.
type AssetClient struct {
	c *Client
}

func NewAssetClient(c *Client) *AssetClient {
	return &AssetClient{c: c}
}

func (a *AssetClient) List(ctx context.Context, token string, q ports.ListQuery) ([]domain.Asset, error) {
	var assets []domain.Asset
	if err := a.c.doJSON(ctx, http.MethodGet, "/assets", token, query(q), nil, &assets); err != nil {
		return nil, err
	}
	return assets, nil
}

func (a *AssetClient) Get(ctx context.Context, token, id string) (*domain.Asset, error) {
	var asset domain.Asset
	if err := a.c.doJSON(ctx, http.MethodGet, "/assets/"+id, token, nil, nil, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

// Upload sends the file as multipart form data. The multipart body is
// assembled up front so input.Progress observes actual transport reads,
// not buffering.
func (a *AssetClient) Upload(ctx context.Context, token string, input ports.UploadInput) (*domain.Asset, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, input.Name))
	if input.ContentType != "" {
		header.Set("Content-Type", input.ContentType)
	}
	part, err := mw.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}
	if _, err := io.Copy(part, input.Reader); err != nil {
		return nil, fmt.Errorf("read asset: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("build multipart body: %w", err)
	}

	body := io.Reader(&buf)
	if input.Progress != nil {
		body = &progressReader{r: &buf, total: int64(buf.Len()), report: input.Progress}
	}

	var asset domain.Asset
	if err := a.c.send(ctx, http.MethodPost, "/assets/upload", token, nil, mw.FormDataContentType(), body, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (a *AssetClient) Update(ctx context.Context, token, id string, input ports.UpdateAssetInput) (*domain.Asset, error) {
	var asset domain.Asset
	if err := a.c.doJSON(ctx, http.MethodPut, "/assets/"+id, token, nil, input, &asset); err != nil {
		return nil, err
	}
	return &asset, nil
}

func (a *AssetClient) Delete(ctx context.Context, token, id string) error {
	return a.c.doJSON(ctx, http.MethodDelete, "/assets/"+id, token, nil, nil, nil)
}

// progressReader reports cumulative bytes read to a callback.
type progressReader struct {
	r      io.Reader
	total  int64
	sent   int64
	report func(sent, total int64)
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.report(p.sent, p.total)
	}
	return n, err
}
