package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Almacen-api/internal/application/dto"
	"github.com/jhoicas/Almacen-api/internal/domain/entity"
)

// Resource operaciones comunes de una colección con archivo.
type Resource interface {
	ListView(ctx context.Context, archived bool, q dto.ListQuery) (any, error)
	GetView(ctx context.Context, id string, archived bool, q dto.ListQuery) (any, error)
	Archive(ctx context.Context, id, userID string) (*dto.MessageResponse, error)
	Unarchive(ctx context.Context, id, userID string) (*dto.MessageResponse, error)
	Delete(ctx context.Context, id string) (*dto.MessageResponse, error)
}

// ResourceHandler expone lectura, archivo y borrado de una colección.
type ResourceHandler struct {
	uc Resource
}

// NewResourceHandler construye el handler sobre el caso de uso.
func NewResourceHandler(uc Resource) *ResourceHandler {
	return &ResourceHandler{uc: uc}
}

func (h *ResourceHandler) list(archived bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.ListView(c.UserContext(), archived, listQuery(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

func (h *ResourceHandler) get(archived bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.GetView(c.UserContext(), c.Params("id"), archived, listQuery(c))
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// List GET / (activos).
func (h *ResourceHandler) List(c *fiber.Ctx) error { return h.list(false)(c) }

// ListArchived GET /archived/all.
func (h *ResourceHandler) ListArchived(c *fiber.Ctx) error { return h.list(true)(c) }

// Get GET /:id.
func (h *ResourceHandler) Get(c *fiber.Ctx) error { return h.get(false)(c) }

// GetArchived GET /archived/:id.
func (h *ResourceHandler) GetArchived(c *fiber.Ctx) error { return h.get(true)(c) }

// Archive PATCH /:id/archive.
func (h *ResourceHandler) Archive(c *fiber.Ctx) error {
	return message(c, func(ctx context.Context) (*dto.MessageResponse, error) {
		return h.uc.Archive(ctx, c.Params("id"), GetUserID(c))
	})
}

// Unarchive PATCH /:id/unarchive.
func (h *ResourceHandler) Unarchive(c *fiber.Ctx) error {
	return message(c, func(ctx context.Context) (*dto.MessageResponse, error) {
		return h.uc.Unarchive(ctx, c.Params("id"), GetUserID(c))
	})
}

// Delete DELETE /:id.
func (h *ResourceHandler) Delete(c *fiber.Ctx) error {
	return message(c, func(ctx context.Context) (*dto.MessageResponse, error) {
		return h.uc.Delete(ctx, c.Params("id"))
	})
}

func message(c *fiber.Ctx, fn func(ctx context.Context) (*dto.MessageResponse, error)) error {
	out, err := fn(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// createJSON adapta un Create(ctx, userID, in) a POST / con cuerpo JSON.
func createJSON[In, Out any](create func(ctx context.Context, userID string, in In) (Out, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in In
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		out, err := create(c.UserContext(), GetUserID(c), in)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// updateJSON adapta un Update(ctx, id, userID, in) a PUT /:id.
func updateJSON[In, Out any](update func(ctx context.Context, id, userID string, in In) (Out, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in In
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		out, err := update(c.UserContext(), c.Params("id"), GetUserID(c), in)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// createDocument como createJSON pero acepta multipart con archivos adjuntos.
func createDocument[In, Out any](uploadDir string, create func(ctx context.Context, userID string, in In, files []entity.Attachment) (Out, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in In
		files, err := parseDocument(c, uploadDir, &in)
		if err != nil {
			return invalidBody(c)
		}
		out, err := create(c.UserContext(), GetUserID(c), in, files)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(out)
	}
}

// updateDocument como updateJSON pero acepta multipart con archivos adjuntos.
func updateDocument[In, Out any](uploadDir string, update func(ctx context.Context, id, userID string, in In, files []entity.Attachment) (Out, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in In
		files, err := parseDocument(c, uploadDir, &in)
		if err != nil {
			return invalidBody(c)
		}
		out, err := update(c.UserContext(), c.Params("id"), GetUserID(c), in, files)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}
