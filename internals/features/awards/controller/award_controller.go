package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"competition_portal_backend/internals/constants"
	"competition_portal_backend/internals/features/awards/dto"
	"competition_portal_backend/internals/features/awards/model"
	competitionDto "competition_portal_backend/internals/features/competitions/dto"
	competitionModel "competition_portal_backend/internals/features/competitions/model"
	helper "competition_portal_backend/internals/helpers"
	"competition_portal_backend/internals/helpers/storage"
)

var validate = validator.New()

type AwardController struct {
	DB      *gorm.DB
	Storage storage.BlobService
}

func NewAwardController(db *gorm.DB, blob storage.BlobService) *AwardController {
	return &AwardController{DB: db, Storage: blob}
}

// Create submits a self-claimed award (school/provincial/national), always
// pending review. Certificate precedence: an explicit non-empty URL wins
// over an uploaded file.
func (ac *AwardController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateAwardRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if !model.IsSelfSubmittableLevel(req.AwardLevel) {
		return fiber.NewError(fiber.StatusBadRequest, "Award level must be school, provincial, or national")
	}

	awardTime, err := competitionDto.ParseTimestamp(req.AwardTime)
	if err != nil {
		return err
	}

	// All validation happens before the certificate upload is persisted, so
	// a rejected request never leaves an orphaned file behind.
	var competitionID *uuid.UUID
	if req.CompetitionID != nil && *req.CompetitionID != "" {
		id, err := uuid.Parse(*req.CompetitionID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid competition ID")
		}
		var competition competitionModel.CompetitionModel
		if err := ac.DB.First(&competition, "id = ?", id).Error; err != nil {
			if helper.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Competition not found")
			}
			return err
		}
		competitionID = &id
	}

	certificate := strings.TrimSpace(req.CertificateImage)
	if certificate == "" {
		fh, fileErr := c.FormFile("certificate")
		if fileErr == nil && fh != nil {
			certificate, err = ac.Storage.SaveCertificate("awards", fh)
			if err != nil {
				return err
			}
		}
	}
	if certificate == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Certificate image is required")
	}

	award := model.AwardModel{
		UserID:           userID,
		CompetitionID:    competitionID,
		AwardLevel:       req.AwardLevel,
		AwardName:        req.AwardName,
		AwardRank:        req.AwardRank,
		AwardTime:        awardTime,
		CertificateImage: certificate,
		Description:      req.Description,
		Status:           model.StatusPending,
	}
	if err := ac.DB.Create(&award).Error; err != nil {
		return err
	}

	if err := ac.DB.Preload("Competition").First(&award, "id = ?", award.ID).Error; err != nil {
		return err
	}
	return helper.JsonWithCode(c, fiber.StatusCreated, "Award submitted, pending review", &award)
}

func (ac *AwardController) ListMine(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 10, 100)

	q := ac.DB.Model(&model.AwardModel{}).Where("user_id = ?", userID)
	if level := c.Query("award_level"); level != "" {
		q = q.Where("award_level = ?", level)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return err
	}

	var awards []model.AwardModel
	if err := q.
		Order("award_time DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Preload("Competition").
		Find(&awards).Error; err != nil {
		return err
	}

	return helper.JsonOK(c, "", fiber.Map{
		"awards":     awards,
		"pagination": helper.BuildPagination(total, paging.Page, paging.Limit),
	})
}

func (ac *AwardController) GetByID(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid award ID")
	}

	var award model.AwardModel
	if err := ac.DB.Preload("Competition").Preload("User").First(&award, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "Award not found")
		}
		return err
	}

	if award.UserID != userID && helper.GetUserRole(c) == constants.RoleUser {
		return fiber.NewError(fiber.StatusForbidden, "Access denied")
	}
	return helper.JsonOK(c, "", &award)
}

func (ac *AwardController) Update(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid award ID")
	}

	award, err := ac.loadOwnedPending(id, userID)
	if err != nil {
		return err
	}

	var req dto.UpdateAwardRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.AwardLevel != nil {
		if !model.IsSelfSubmittableLevel(*req.AwardLevel) {
			return fiber.NewError(fiber.StatusBadRequest, "Award level must be school, provincial, or national")
		}
		updates["award_level"] = *req.AwardLevel
	}
	if req.AwardName != nil {
		updates["award_name"] = *req.AwardName
	}
	if req.AwardRank != nil {
		updates["award_rank"] = *req.AwardRank
	}
	if req.CertificateImage != nil {
		updates["certificate_image"] = *req.CertificateImage
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.AwardTime != nil {
		t, err := competitionDto.ParseTimestamp(*req.AwardTime)
		if err != nil {
			return err
		}
		updates["award_time"] = t
	}
	if req.CompetitionID != nil {
		compID, err := uuid.Parse(*req.CompetitionID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid competition ID")
		}
		var competition competitionModel.CompetitionModel
		if err := ac.DB.First(&competition, "id = ?", compID).Error; err != nil {
			if helper.IsNotFound(err) {
				return fiber.NewError(fiber.StatusNotFound, "Competition not found")
			}
			return err
		}
		updates["competition_id"] = compID
	}

	if len(updates) > 0 {
		if err := ac.DB.Model(award).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := ac.DB.Preload("Competition").First(award, "id = ?", id).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Award updated", award)
}

func (ac *AwardController) Delete(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid award ID")
	}

	award, err := ac.loadOwnedPending(id, userID)
	if err != nil {
		return err
	}

	if err := ac.DB.Delete(award).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Award deleted", nil)
}

// loadOwnedPending enforces the ownership and pending-only rules shared by
// update and delete.
func (ac *AwardController) loadOwnedPending(id, userID uuid.UUID) (*model.AwardModel, error) {
	var award model.AwardModel
	if err := ac.DB.First(&award, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return nil, fiber.NewError(fiber.StatusNotFound, "Award not found")
		}
		return nil, err
	}
	if award.UserID != userID {
		return nil, fiber.NewError(fiber.StatusForbidden, "Not your award")
	}
	if award.Status != model.StatusPending {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Only pending awards can be modified")
	}
	return &award, nil
}
