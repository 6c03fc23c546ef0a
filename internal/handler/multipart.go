package handler

import (
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"

	"urban-luxury/internal/model"
	"urban-luxury/internal/service"
)

// maxMemory is the part of a multipart form kept in memory; the rest spills to temp files.
const maxMemory = 8 << 20

// multipartUpload is a parsed create request: a JSON field plus an optional file.
type multipartUpload struct {
	upload *service.Upload
	file   multipart.File
}

// Close releases the uploaded file.
func (u *multipartUpload) Close() {
	if u.file != nil {
		_ = u.file.Close()
	}
}

// parseMultipartUpload reads the JSON string in dataField into dst and opens
// the file in fileField. A missing file yields a nil upload so the service can
// report it.
func parseMultipartUpload(r *http.Request, fileField, dataField string, dst any) (*multipartUpload, error) {
	if err := r.ParseMultipartForm(maxMemory); err != nil {
		var maxBytes *http.MaxBytesError
		if errors.As(err, &maxBytes) {
			return nil, err
		}
		return nil, model.NewDomainError(model.ErrCodeInvalidForm, "request must be multipart/form-data")
	}

	if data := r.FormValue(dataField); data != "" {
		if err := json.Unmarshal([]byte(data), dst); err != nil {
			return nil, model.NewDomainError(model.ErrCodeInvalidJSON, dataField+" is not valid JSON")
		}
	}

	result := &multipartUpload{}

	file, header, err := r.FormFile(fileField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return result, nil
	case err != nil:
		return nil, model.NewDomainError(model.ErrCodeInvalidForm, "failed to read "+fileField)
	}

	result.file = file
	result.upload = &service.Upload{Filename: header.Filename, Body: file}

	return result, nil
}
