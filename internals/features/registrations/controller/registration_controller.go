package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"competition_portal_backend/internals/constants"
	"competition_portal_backend/internals/features/registrations/dto"
	"competition_portal_backend/internals/features/registrations/model"
	"competition_portal_backend/internals/features/registrations/service"
	helper "competition_portal_backend/internals/helpers"
	"competition_portal_backend/internals/helpers/storage"
)

const maxMaterialFiles = 20

type RegistrationController struct {
	DB      *gorm.DB
	Storage storage.BlobService
}

func NewRegistrationController(db *gorm.DB, blob storage.BlobService) *RegistrationController {
	return &RegistrationController{DB: db, Storage: blob}
}

func (rc *RegistrationController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateRegistrationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if req.CompetitionID == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Competition ID is required")
	}
	competitionID, err := uuid.Parse(req.CompetitionID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid competition ID")
	}

	registration, err := service.CreateRegistration(rc.DB, userID, competitionID, req.RegistrationData)
	if err != nil {
		return err
	}
	return helper.JsonWithCode(c, fiber.StatusCreated, "Registration submitted, pending review", registration)
}

func (rc *RegistrationController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 10, 100)

	q := rc.DB.Model(&model.RegistrationModel{}).Where("user_id = ?", userID)
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return err
	}

	var registrations []model.RegistrationModel
	if err := q.
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Preload("Competition").
		Find(&registrations).Error; err != nil {
		return err
	}

	return helper.JsonOK(c, "", fiber.Map{
		"registrations": registrations,
		"pagination":    helper.BuildPagination(total, paging.Page, paging.Limit),
	})
}

func (rc *RegistrationController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration ID")
	}

	var registration model.RegistrationModel
	if err := rc.DB.Preload("Competition").Preload("User").First(&registration, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "Registration not found")
		}
		return err
	}

	// Owner, or any administrator.
	if registration.UserID != userID && helper.GetUserRole(c) == constants.RoleUser {
		return fiber.NewError(fiber.StatusForbidden, "Access denied")
	}
	return helper.JsonOK(c, "", &registration)
}

func (rc *RegistrationController) Cancel(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration ID")
	}

	if err := service.CancelRegistration(rc.DB, id, userID); err != nil {
		return err
	}
	return helper.JsonOK(c, "Registration cancelled", nil)
}

// UploadMaterials accepts a multipart batch under the `files` field.
// Failure is per file, not all-or-nothing: files accepted earlier in the
// batch stay persisted even when a later file is rejected.
func (rc *RegistrationController) UploadMaterials(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration ID")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid multipart form")
	}
	files := form.File["files"]
	if len(files) == 0 {
		return fiber.NewError(fiber.StatusBadRequest, "Upload at least one file")
	}
	if len(files) > maxMaterialFiles {
		return fiber.NewError(fiber.StatusBadRequest, "Too many files in one batch")
	}

	var registration model.RegistrationModel
	if err := rc.DB.First(&registration, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "Registration not found")
		}
		return err
	}
	if registration.UserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Not your registration")
	}

	var moved []model.Attachment
	for _, fh := range files {
		tempPath, err := rc.Storage.SaveTemp(userID.String(), fh)
		if err != nil {
			return err
		}

		mime := fh.Header.Get("Content-Type")
		if !constants.IsAllowedMime(constants.MaterialMimeTypes, mime) {
			// Reject this file, keep what was already moved.
			_ = rc.Storage.RemoveTemp(tempPath)
			if len(moved) > 0 {
				if err := rc.appendAttachments(&registration, moved); err != nil {
					return err
				}
			}
			return fiber.NewError(fiber.StatusBadRequest, "Unsupported file type: "+fh.Filename)
		}

		storedName := helper.GenerateUniqueFilename(fh.Filename)
		url, err := rc.Storage.MoveMaterial(tempPath, registration.CompetitionID.String(), userID.String(), storedName)
		if err != nil {
			_ = rc.Storage.RemoveTemp(tempPath)
			return err
		}

		moved = append(moved, model.Attachment{
			URL:          url,
			OriginalName: fh.Filename,
			Filename:     storedName,
			Mime:         mime,
			Size:         fh.Size,
			UploadedAt:   time.Now().UTC(),
		})
	}

	if err := rc.appendAttachments(&registration, moved); err != nil {
		return err
	}
	return helper.JsonOK(c, "Materials uploaded", fiber.Map{
		"id":          registration.ID,
		"status":      registration.Status,
		"attachments": registration.AttachmentList(),
	})
}

func (rc *RegistrationController) appendAttachments(registration *model.RegistrationModel, added []model.Attachment) error {
	if len(added) == 0 {
		return nil
	}
	if err := registration.AppendAttachments(added); err != nil {
		return err
	}
	return rc.DB.Model(registration).Update("attachments", registration.Attachments).Error
}
