package http

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// UploadsPrefix ruta pública bajo la que se sirven los archivos subidos.
const UploadsPrefix = "/uploads"

func listQuery(c *fiber.Ctx) dto.ListQuery {
	return dto.ListQuery{
		Populate: c.QueryBool("populate", false),
		Client:   c.Query("client"),
		User:     c.Query("user"),
	}
}

func isMultipart(c *fiber.Ctx) bool {
	return strings.HasPrefix(string(c.Request().Header.ContentType()), fiber.MIMEMultipartForm)
}

// parseForm decodifica un multipart/form-data en out. Los valores que empiezan
// por [ o { se toman como JSON; el resto como texto. En "documents" se admiten
// también rutas sueltas, una por valor.
func parseForm(c *fiber.Ctx, out any) error {
	form, err := c.MultipartForm()
	if err != nil {
		return err
	}
	fields := make(map[string]any, len(form.Value))
	for key, values := range form.Value {
		if len(values) == 0 {
			continue
		}
		v := strings.TrimSpace(values[0])
		if strings.HasPrefix(v, "[") || strings.HasPrefix(v, "{") {
			fields[key] = json.RawMessage(v)
			continue
		}
		if key == "documents" {
			fields[key] = plainDocuments(values)
			continue
		}
		fields[key] = v
	}
	raw, err := json.Marshal(fields)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	return dec.Decode(out)
}

// saveUploads guarda los archivos del campo "files" en dir con nombre único.
func saveUploads(c *fiber.Ctx, dir string) ([]entity.Attachment, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, err
	}
	files := form.File["files"]
	out := make([]entity.Attachment, 0, len(files))
	for _, fh := range files {
		name := uuid.NewString() + strings.ToLower(filepath.Ext(fh.Filename))
		if err := c.SaveFile(fh, filepath.Join(dir, name)); err != nil {
			return nil, err
		}
		out = append(out, entity.Attachment{Document: UploadsPrefix + "/" + name})
	}
	return out, nil
}

// parseDocument lee el cuerpo como JSON o multipart. Con multipart también
// guarda los archivos subidos.
func parseDocument(c *fiber.Ctx, uploadDir string, out any) ([]entity.Attachment, error) {
	if !isMultipart(c) {
		return nil, c.BodyParser(out)
	}
	if err := parseForm(c, out); err != nil {
		return nil, err
	}
	return saveUploads(c, uploadDir)
}

func plainDocuments(values []string) []entity.Attachment {
	out := make([]entity.Attachment, 0, len(values))
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, entity.Attachment{Document: v})
		}
	}
	return out
}
