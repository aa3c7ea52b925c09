package handler

import (
	"mime/multipart"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vidtube/internal/domain"
	"vidtube/internal/middleware"
	"vidtube/pkg/errors"
)

// urlParam extracts a raw path parameter
func urlParam(r *http.Request, name string) string {
	return chi.URLParam(r, name)
}

// urlID extracts a path parameter and validates it as an opaque UUID
// identifier
func urlID(r *http.Request, name string) (string, error) {
	id := chi.URLParam(r, name)
	if uuid.Validate(id) != nil {
		return "", errors.NewBadRequestError("Invalid " + name)
	}
	return id, nil
}

// requirePrincipal extracts the authenticated principal set by the auth
// middleware
func requirePrincipal(r *http.Request) (*middleware.Principal, error) {
	principal, ok := middleware.PrincipalFrom(r.Context())
	if !ok {
		return nil, errors.NewUnauthorizedError("User not authenticated")
	}
	return principal, nil
}

// formFile reads an uploaded file from a multipart form. The returned
// closer must be called once the upload has been consumed.
func formFile(r *http.Request, field string) (*domain.FileUpload, func(), error) {
	file, header, err := r.FormFile(field)
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil, nil
		}
		return nil, nil, errors.NewBadRequestError("Invalid " + field + " upload")
	}

	upload := &domain.FileUpload{
		Reader:      file,
		Size:        header.Size,
		Filename:    header.Filename,
		ContentType: contentTypeOf(header),
	}
	return upload, func() { _ = file.Close() }, nil
}

func contentTypeOf(header *multipart.FileHeader) string {
	if ct := header.Header.Get("Content-Type"); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
