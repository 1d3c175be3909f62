package classify

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/rojanmagar2001/gitcopy/internal/domain"
	"github.com/rojanmagar2001/gitcopy/internal/ports"
)

const (
	StrategyContentType   = "content-type"
	StrategyTrailingSlash = "trailing-slash"
)

const plainText = "text/plain"

// New returns the classifier registered under name.
func New(name string, f ports.Fetcher) (ports.Classifier, error) {
	switch name {
	case "", StrategyContentType:
		return &ContentType{Fetcher: f}, nil
	case StrategyTrailingSlash:
		return &TrailingSlash{Fetcher: f}, nil
	default:
		return nil, fmt.Errorf("unknown classifier %q (want %s or %s)", name, StrategyContentType, StrategyTrailingSlash)
	}
}

// ContentType treats any response whose media type is not text/plain as a
// directory listing. Servers that label directories text/html and files
// text/plain are classified correctly; binary files served as
// application/octet-stream are not.
type ContentType struct {
	Fetcher ports.Fetcher
}

func (c *ContentType) Classify(ctx context.Context, link string) domain.Classification {
	resp, res, ok := get(ctx, c.Fetcher, link, func(r *domain.Response) bool {
		return kindByContentType(r.Header) == domain.KindDirectory
	})
	if !ok {
		return res
	}

	switch kindByContentType(resp.Header) {
	case domain.KindUnknown:
		return domain.Classification{URL: link, Kind: domain.KindUnknown, StatusCode: resp.StatusCode, Err: domain.ErrClassificationAmbiguous}
	case domain.KindFile:
		return domain.Classification{URL: link, Kind: domain.KindFile, StatusCode: resp.StatusCode}
	default:
		return domain.Classification{URL: link, Kind: domain.KindDirectory, StatusCode: resp.StatusCode, Page: resp}
	}
}

func kindByContentType(h http.Header) domain.Kind {
	values := h.Values("Content-Type")
	switch {
	case len(values) == 0:
		return domain.KindUnknown
	case isPlainText(values[0]):
		return domain.KindFile
	default:
		return domain.KindDirectory
	}
}

// TrailingSlash follows the listing convention that directory links end
// in "/". The GET still runs so that dead entries are reported.
type TrailingSlash struct {
	Fetcher ports.Fetcher
}

func (c *TrailingSlash) Classify(ctx context.Context, link string) domain.Classification {
	isDir := hasTrailingSlash(link)
	resp, res, ok := get(ctx, c.Fetcher, link, func(*domain.Response) bool { return isDir })
	if !ok {
		return res
	}

	if isDir {
		return domain.Classification{URL: link, Kind: domain.KindDirectory, StatusCode: resp.StatusCode, Page: resp}
	}
	return domain.Classification{URL: link, Kind: domain.KindFile, StatusCode: resp.StatusCode}
}

func hasTrailingSlash(link string) bool {
	p := link
	if u, err := url.Parse(link); err == nil {
		p = u.Path
	}
	return strings.HasSuffix(p, "/")
}

// get performs the request shared by every strategy. The body is only read
// for successful responses that wantBody accepts, so files are not
// downloaded twice. ok is false when the returned classification is already
// final.
func get(ctx context.Context, f ports.Fetcher, link string, wantBody func(*domain.Response) bool) (*domain.Response, domain.Classification, bool) {
	resp, err := f.FetchIf(ctx, link, func(r *domain.Response) bool {
		return r.OK() && wantBody(r)
	})
	if err != nil {
		var te *domain.TransportError
		if !errors.As(err, &te) {
			err = &domain.TransportError{URL: link, Err: err}
		}
		return nil, domain.Classification{URL: link, Kind: domain.KindUnknown, Err: err}, false
	}
	if !resp.OK() {
		return nil, domain.Classification{
			URL:        link,
			Kind:       domain.KindInaccessible,
			StatusCode: resp.StatusCode,
			Err:        &domain.UnexpectedStatus{URL: link, StatusCode: resp.StatusCode},
		}, false
	}
	return resp, domain.Classification{}, true
}

func isPlainText(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mt = strings.ToLower(strings.TrimSpace(contentType))
	}
	return mt == plainText
}
