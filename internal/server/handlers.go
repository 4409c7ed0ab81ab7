// Copyright 2026 the original author or authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package server

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"m4o.io/gpstools/model"
	"m4o.io/gpstools/service"
)

const downloadMode = "dl"

var errNoGPSFile = fmt.Errorf("failed to upload files: %w", model.ErrInvalidArgument)

type handler struct {
	svc       *service.FileService
	maxUpload int64
}

func status(err error) int {
	var maxBytes *http.MaxBytesError

	switch {
	case errors.As(err, &maxBytes):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, model.ErrInvalidArgument), errors.Is(err, model.ErrInvalidFormat):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, err error) {
	code := status(err)
	_ = c.Error(err)

	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = http.StatusText(code)
	}

	c.AbortWithStatusJSON(code, gin.H{"error": msg})
}

func pathID(c *gin.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return uuid.Nil, fmt.Errorf("id %q: %w", c.Param("id"), model.ErrInvalidArgument)
	}

	return id, nil
}

func (h *handler) download(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		abort(c, err)

		return
	}

	format, err := service.ParseFormat(c.Query("format"))
	if err != nil {
		abort(c, err)

		return
	}

	doc, err := h.svc.Export(c.Request.Context(), id, format, c.Query("name"))
	if err != nil {
		abort(c, err)

		return
	}

	if c.Query("m") == downloadMode {
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", doc.Filename))
	}

	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}

func (h *handler) uploadFile(c *gin.Context) {
	filename := c.Query("filename")
	if filename == "" {
		abort(c, fmt.Errorf("filename is required: %w", model.ErrInvalidArgument))

		return
	}

	data, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload))
	if err != nil {
		abort(c, err)

		return
	}

	sf, err := h.svc.Import(c.Request.Context(), filename, data)
	if err != nil {
		abort(c, err)

		return
	}

	c.JSON(http.StatusOK, sf)
}

func (h *handler) uploadFiles(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload)

	form, err := c.MultipartForm()
	if err != nil {
		abort(c, fmt.Errorf("could not parse multipart form: %w: %w", err, model.ErrInvalidArgument))

		return
	}

	results := make([]service.StoredFile, 0, len(form.File["file"]))

	for _, fh := range form.File["file"] {
		if !service.IsGPSFile(fh.Filename) {
			continue
		}

		data, err := readPart(fh)
		if err != nil {
			abort(c, err)

			return
		}

		sf, err := h.svc.Import(c.Request.Context(), fh.Filename, data)
		if err != nil {
			abort(c, err)

			return
		}

		results = append(results, sf)
	}

	if len(results) == 0 {
		abort(c, errNoGPSFile)

		return
	}

	c.JSON(http.StatusOK, results)
}

func readPart(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("could not open %s: %w", fh.Filename, err)
	}
	defer f.Close()

	return io.ReadAll(f)
}

func (h *handler) delete(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		abort(c, err)

		return
	}

	if err = h.svc.Delete(c.Request.Context(), id); err != nil {
		abort(c, err)

		return
	}

	c.Status(http.StatusNoContent)
}

func (h *handler) wayPoints(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		abort(c, err)

		return
	}

	fc, err := h.svc.WayPoints(c.Request.Context(), id)
	if err != nil {
		abort(c, err)

		return
	}

	c.JSON(http.StatusOK, fc)
}

func (h *handler) updateWayPoints(c *gin.Context) {
	id, err := pathID(c)
	if err != nil {
		abort(c, err)

		return
	}

	merge := false
	if v := c.Query("merge"); v != "" {
		if merge, err = strconv.ParseBool(v); err != nil {
			abort(c, fmt.Errorf("merge %q: %w", v, model.ErrInvalidArgument))

			return
		}
	}

	body, err := io.ReadAll(http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUpload))
	if err != nil {
		abort(c, err)

		return
	}

	fc, err := h.svc.UpdateWayPoints(c.Request.Context(), id, body, merge)
	if err != nil {
		abort(c, err)

		return
	}

	c.JSON(http.StatusOK, fc)
}
