// Package media uploads, lists and removes files served under the media url prefix.
package media

import (
	"errors"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/growfastwithus/growfast/internal/auth"
	"github.com/growfastwithus/growfast/internal/config"
	dbmedia "github.com/growfastwithus/growfast/internal/db/controller/media"
	"github.com/growfastwithus/growfast/internal/db/models"
	"github.com/growfastwithus/growfast/internal/uniuri"
	"github.com/growfastwithus/growfast/internal/web/handler"
)

// Path is the media endpoint.
const Path = handler.AdminPrefix + "/media"

// formField is the multipart field holding the upload.
const formField = "file"

// Error messages of the upload endpoint.
const (
	MsgNoFile       = "file is required"
	MsgTooLarge     = "file too large"
	MsgTypeRejected = "file type not allowed"
)

// Service is the media handler service.
type Service struct {
	handler.Service
	deps *handler.Deps
	cfg  config.Media
}

// Handler is the media handler.
var Handler = Service{} //nolint:gochecknoglobals

// Init initializes the media handler.
func (s *Service) Init(app *fiber.App, cfg *config.Config, deps *handler.Deps) error {
	if err := handler.CheckInit(app, cfg, deps); err != nil {
		return err
	}

	s.deps = deps
	s.cfg = cfg.Media

	write := auth.RequirePermission(auth.PermMediaWrite)

	app.Route(Path, func(router fiber.Router) {
		router.Get(handler.RootPath, s.List)
		router.Post(handler.RootPath, write, handler.RequireDB(deps), s.Upload)
		router.Delete("/:id", write, handler.RequireDB(deps), s.Delete)
	})

	return nil
}

// List returns the uploaded files, an empty list without database.
func (s *Service) List(c *fiber.Ctx) error {
	if s.deps.DB == nil {
		return c.JSON([]models.Media{})
	}

	list, err := dbmedia.List(s.deps.DB)
	if err != nil {
		log.Warn().Err(err).Msg("failed to list media")

		return c.JSON([]models.Media{})
	}

	return c.JSON(list)
}

// Upload stores the multipart file under a random name.
func (s *Service) Upload(c *fiber.Ctx) error {
	file, err := c.FormFile(formField)
	if err != nil {
		return handler.ValidationError(c, []handler.FieldError{{Field: formField, Message: MsgNoFile}})
	}

	if s.cfg.MaxSize > 0 && file.Size > s.cfg.MaxSize {
		return handler.JSONError(c, fiber.StatusRequestEntityTooLarge, MsgTooLarge)
	}

	contentType, err := sniff(file)
	if err != nil {
		log.Error().Err(err).Msg("failed to read upload")

		return handler.InternalError(c)
	}

	if len(s.cfg.AllowedTypes) > 0 && !slices.Contains(s.cfg.AllowedTypes, contentType) {
		return handler.JSONError(c, fiber.StatusUnsupportedMediaType, MsgTypeRejected)
	}

	name := uniuri.FileName(file.Filename)
	target := filepath.Join(s.cfg.Dir, name)

	if err = os.MkdirAll(s.cfg.Dir, 0o750); err != nil { //nolint:mnd
		log.Error().Err(err).Str("dir", s.cfg.Dir).Msg("failed to create media directory")

		return handler.InternalError(c)
	}

	if err = c.SaveFile(file, target); err != nil {
		log.Error().Err(err).Str("file", target).Msg("failed to save upload")

		return handler.InternalError(c)
	}

	m := models.Media{
		FileName:     name,
		OriginalName: filepath.Base(file.Filename),
		ContentType:  contentType,
		Size:         file.Size,
		URL:          path.Join("/", s.cfg.URLPrefix, name),
	}

	if err = dbmedia.Create(s.deps.DB, &m); err != nil {
		log.Error().Err(err).Msg("failed to store media")

		_ = os.Remove(target)

		return handler.InternalError(c)
	}

	log.Info().Str("file", name).Int64("size", m.Size).Msg("media uploaded")

	return c.Status(fiber.StatusCreated).JSON(m)
}

// sniff detects the content type from the leading bytes.
func sniff(file *multipart.FileHeader) (string, error) {
	f, err := file.Open()
	if err != nil {
		return "", err
	}

	defer func() { _ = f.Close() }()

	mtype, err := mimetype.DetectReader(f)
	if err != nil {
		return "", err //nolint:wrapcheck
	}

	contentType, _, _ := strings.Cut(mtype.String(), ";")

	return contentType, nil
}

// Delete removes the row and its file.
func (s *Service) Delete(c *fiber.Ctx) error {
	id, ok := handler.ParseID(c)
	if !ok {
		return handler.JSONError(c, fiber.StatusBadRequest, handler.MsgInvalidID)
	}

	m, err := dbmedia.Get(s.deps.DB, id)
	if err == nil {
		err = dbmedia.Delete(s.deps.DB, id)
	}

	if err != nil {
		if errors.Is(err, dbmedia.ErrMediaNotFound) {
			return handler.JSONError(c, fiber.StatusNotFound, err.Error())
		}

		log.Error().Err(err).Uint64("id", id).Msg("failed to delete media")

		return handler.InternalError(c)
	}

	if err = os.Remove(filepath.Join(s.cfg.Dir, filepath.Base(m.FileName))); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Str("file", m.FileName).Msg("failed to remove media file")
	}

	return c.JSON(fiber.Map{"success": true})
}
