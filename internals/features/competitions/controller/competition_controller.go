package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"competition_portal_backend/internals/features/competitions/dto"
	"competition_portal_backend/internals/features/competitions/model"
	registrationModel "competition_portal_backend/internals/features/registrations/model"
	helper "competition_portal_backend/internals/helpers"
	"competition_portal_backend/internals/helpers/storage"
)

var validate = validator.New()

// Sort keys accepted by the list endpoint. Caller-supplied column names are
// never interpolated into SQL.
var sortableColumns = map[string]string{
	"created_at":           "created_at",
	"start_time":           "start_time",
	"end_time":             "end_time",
	"registration_start":   "registration_start",
	"registration_end":     "registration_end",
	"title":                "title",
	"max_participants":     "max_participants",
	"current_participants": "current_participants",
}

type CompetitionController struct {
	DB      *gorm.DB
	Storage storage.BlobService
}

func NewCompetitionController(db *gorm.DB, blob storage.BlobService) *CompetitionController {
	return &CompetitionController{DB: db, Storage: blob}
}

func (cc *CompetitionController) List(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	q := cc.DB.Model(&model.CompetitionModel{})
	if search := strings.TrimSpace(c.Query("search")); search != "" {
		like := "%" + search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}
	if t := c.Query("type"); t != "" {
		q = q.Where("type = ?", t)
	}
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}

	column, ok := sortableColumns[c.Query("sort_by", "created_at")]
	if !ok {
		return fiber.NewError(fiber.StatusBadRequest, "Unsupported sort field")
	}
	order := "DESC"
	if strings.EqualFold(c.Query("sort_order", "desc"), "asc") {
		order = "ASC"
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return err
	}

	var competitions []model.CompetitionModel
	if err := q.
		Order(column + " " + order).
		Offset(paging.Offset).
		Limit(paging.Limit).
		Preload("Creator").
		Find(&competitions).Error; err != nil {
		return err
	}

	return helper.JsonOK(c, "", fiber.Map{
		"competitions": competitions,
		"pagination":   helper.BuildPagination(total, paging.Page, paging.Limit),
	})
}

func (cc *CompetitionController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid competition ID")
	}

	var competition model.CompetitionModel
	if err := cc.DB.Preload("Creator").First(&competition, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "Competition not found")
		}
		return err
	}

	// Live count of currently approved registrations, alongside the audit
	// counter carried on the row itself.
	var approved int64
	if err := cc.DB.Model(&registrationModel.RegistrationModel{}).
		Where("competition_id = ? AND status = ?", id, registrationModel.StatusApproved).
		Count(&approved).Error; err != nil {
		return err
	}

	var registrations int64
	if err := cc.DB.Model(&registrationModel.RegistrationModel{}).
		Where("competition_id = ?", id).
		Count(&registrations).Error; err != nil {
		return err
	}

	return helper.JsonOK(c, "", fiber.Map{
		"competition":        competition,
		"approved_count":     approved,
		"registration_count": registrations,
	})
}

func (cc *CompetitionController) Create(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	var req dto.CreateCompetitionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	startTime, err := dto.ParseTimestamp(req.StartTime)
	if err != nil {
		return err
	}
	endTime, err := dto.ParseTimestamp(req.EndTime)
	if err != nil {
		return err
	}
	regStart, err := dto.ParseTimestamp(req.RegistrationStart)
	if err != nil {
		return err
	}
	regEnd, err := dto.ParseTimestamp(req.RegistrationEnd)
	if err != nil {
		return err
	}

	coverImage := req.CoverImage
	if fh, err := c.FormFile("cover"); err == nil && fh != nil {
		url, err := cc.Storage.SaveImage("covers", fh)
		if err != nil {
			return err
		}
		coverImage = &url
	}

	competition := model.CompetitionModel{
		Title:             req.Title,
		Description:       req.Description,
		Type:              req.Type,
		CoverImage:        coverImage,
		StartTime:         startTime,
		EndTime:           endTime,
		RegistrationStart: regStart,
		RegistrationEnd:   regEnd,
		MaxParticipants:   req.MaxParticipants,
		Requirements:      req.Requirements,
		Rules:             req.Rules,
		Awards:            req.Awards,
		Status:            model.StatusDraft,
		CreatedBy:         userID,
	}
	if err := cc.DB.Create(&competition).Error; err != nil {
		return err
	}

	return helper.JsonWithCode(c, fiber.StatusCreated, "Competition created", &competition)
}

func (cc *CompetitionController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid competition ID")
	}

	var competition model.CompetitionModel
	if err := cc.DB.First(&competition, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "Competition not found")
		}
		return err
	}

	var req dto.UpdateCompetitionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	updates := map[string]interface{}{}
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Type != nil {
		updates["type"] = *req.Type
	}
	if req.CoverImage != nil {
		updates["cover_image"] = *req.CoverImage
	}
	if req.MaxParticipants != nil {
		updates["max_participants"] = *req.MaxParticipants
	}
	if req.Status != nil {
		updates["status"] = *req.Status
	}
	if req.Rules != nil {
		updates["rules"] = *req.Rules
	}
	if len(req.Requirements) > 0 {
		updates["requirements"] = req.Requirements
	}
	if len(req.Awards) > 0 {
		updates["awards"] = req.Awards
	}
	for field, raw := range map[string]*string{
		"start_time":         req.StartTime,
		"end_time":           req.EndTime,
		"registration_start": req.RegistrationStart,
		"registration_end":   req.RegistrationEnd,
	} {
		if raw == nil {
			continue
		}
		t, err := dto.ParseTimestamp(*raw)
		if err != nil {
			return err
		}
		updates[field] = t
	}

	if fh, err := c.FormFile("cover"); err == nil && fh != nil {
		url, err := cc.Storage.SaveImage("covers", fh)
		if err != nil {
			return err
		}
		updates["cover_image"] = url
	}

	if len(updates) > 0 {
		if err := cc.DB.Model(&competition).Updates(updates).Error; err != nil {
			return err
		}
	}

	if err := cc.DB.First(&competition, "id = ?", id).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Competition updated", &competition)
}

func (cc *CompetitionController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid competition ID")
	}

	var competition model.CompetitionModel
	if err := cc.DB.First(&competition, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "Competition not found")
		}
		return err
	}

	if err := cc.DB.Delete(&competition).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Competition deleted", nil)
}
