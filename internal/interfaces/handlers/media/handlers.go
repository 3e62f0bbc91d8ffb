package media

import (
	"errors"
	"fmt"
	"io"

	mediasvc "homeboard-backend/internal/application/media"
	"homeboard-backend/internal/domain"
	"homeboard-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// MaxFileSize caps each uploaded file at 10 MB.
const MaxFileSize = 10 * 1024 * 1024

type Handlers struct {
	Service *mediasvc.Service
}

// POST /api/upload — multipart field "files", repeatable. Files go to the
// store concurrently; the response lists references in submission order.
// One failed upload fails the request; files stored before the failure stay.
func (h *Handlers) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return response.BadRequest(c, "No files uploaded.")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return response.BadRequest(c, "No files uploaded.")
	}

	inputs := make([]mediasvc.UploadInput, 0, len(files))
	for _, fh := range files {
		if fh.Size > MaxFileSize {
			return response.BadRequest(c, "File exceeds 10MB limit.")
		}
		f, err := fh.Open()
		if err != nil {
			return response.ServerError(c)
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			return response.ServerError(c)
		}
		inputs = append(inputs, mediasvc.UploadInput{
			FileName: fh.Filename,
			MimeType: fh.Header.Get("Content-Type"),
			Data:     data,
		})
	}

	refs, err := h.Service.UploadBatch(c.Context(), inputs)
	if err != nil {
		return response.ServerError(c)
	}
	return c.JSON(refs)
}

// GET /api/files/:fileId — metadata first for the headers, then the bytes.
// An unknown id is a 404; a stream error after headers are out simply
// truncates the transfer.
func (h *Handlers) GetFile(c *fiber.Ctx) error {
	info, rc, err := h.Service.Fetch(c.Context(), c.Params("fileId"))
	if err != nil {
		if errors.Is(err, domain.ErrFileNotFound) {
			return response.NotFound(c, "File not found.")
		}
		return response.ServerError(c)
	}

	c.Set(fiber.HeaderContentType, info.MimeType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="%s"`, info.Name))
	return c.SendStream(rc)
}
