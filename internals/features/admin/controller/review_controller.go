package controller

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"competition_portal_backend/internals/features/admin/dto"
	"competition_portal_backend/internals/features/admin/service"
	awardModel "competition_portal_backend/internals/features/awards/model"
	competitionDto "competition_portal_backend/internals/features/competitions/dto"
	registrationModel "competition_portal_backend/internals/features/registrations/model"
	userModel "competition_portal_backend/internals/features/users/user/model"
	helper "competition_portal_backend/internals/helpers"
	"competition_portal_backend/internals/helpers/storage"
)

var validate = validator.New()

type AdminController struct {
	DB      *gorm.DB
	Reviews *service.ReviewService
	Storage storage.BlobService
}

func NewAdminController(db *gorm.DB, reviews *service.ReviewService, blob storage.BlobService) *AdminController {
	return &AdminController{DB: db, Reviews: reviews, Storage: blob}
}

// ListRegistrations lists a competition's registrations with the registrant
// summary joined.
func (ac *AdminController) ListRegistrations(c *fiber.Ctx) error {
	competitionID, err := uuid.Parse(c.Params("competitionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid competition ID")
	}
	paging := helper.ResolvePaging(c, 10, 100)

	q := ac.DB.Model(&registrationModel.RegistrationModel{}).
		Where("competition_id = ?", competitionID)
	if s := c.Query("status"); s != "" {
		q = q.Where("status = ?", s)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return err
	}

	var registrations []registrationModel.RegistrationModel
	if err := q.
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Preload("User").
		Find(&registrations).Error; err != nil {
		return err
	}

	items := make([]registrationListItem, len(registrations))
	for i := range registrations {
		items[i] = registrationListItem{RegistrationModel: &registrations[i]}
		if registrations[i].User != nil {
			summary := registrations[i].User.Summary()
			items[i].User = &summary
		}
	}

	return helper.JsonOK(c, "", fiber.Map{
		"registrations": items,
		"pagination":    helper.BuildPagination(total, paging.Page, paging.Limit),
	})
}

// registrationListItem replaces the joined user record with its public
// summary; the outer User field shadows the model's on serialization.
type registrationListItem struct {
	*registrationModel.RegistrationModel
	User *userModel.Summary `json:"user,omitempty"`
}

func (ac *AdminController) ReviewRegistration(c *fiber.Ctx) error {
	reviewerID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid registration ID")
	}

	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	registration, err := ac.Reviews.ReviewRegistration(id, reviewerID, req.Status, req.Notes)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Registration "+req.Status, registration)
}

func (ac *AdminController) ReviewAward(c *fiber.Ctx) error {
	reviewerID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid award ID")
	}

	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	award, err := ac.Reviews.ReviewAward(id, reviewerID, req.Status, req.Notes)
	if err != nil {
		return err
	}
	return helper.JsonOK(c, "Award "+req.Status, award)
}

// ListAwards lists every award for the review queue, newest first.
func (ac *AdminController) ListAwards(c *fiber.Ctx) error {
	paging := helper.ResolvePaging(c, 10, 100)

	q := ac.DB.Model(&awardModel.AwardModel{})
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

	var awards []awardModel.AwardModel
	if err := q.
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Preload("User").
		Preload("Competition").
		Find(&awards).Error; err != nil {
		return err
	}

	return helper.JsonOK(c, "", fiber.Map{
		"awards":     awards,
		"pagination": helper.BuildPagination(total, paging.Page, paging.Limit),
	})
}

// IssueCertificate creates a pre-approved college award for a user. The
// certificate may be given as a URL or uploaded; a non-empty URL wins.
func (ac *AdminController) IssueCertificate(c *fiber.Ctx) error {
	issuerID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	var req dto.IssueCertificateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if err := validate.Struct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	userID, err := uuid.Parse(req.UserID)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid user ID")
	}
	var target userModel.UserModel
	if err := ac.DB.First(&target, "id = ?", userID).Error; err != nil {
		if helper.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "User not found")
		}
		return err
	}

	awardTime, err := competitionDto.ParseTimestamp(req.AwardTime)
	if err != nil {
		return err
	}

	// Validate everything before persisting the upload, so a rejected
	// request never leaves an orphaned file behind.
	var competitionID *uuid.UUID
	if req.CompetitionID != nil && *req.CompetitionID != "" {
		id, err := uuid.Parse(*req.CompetitionID)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid competition ID")
		}
		competitionID = &id
	}

	certificate := strings.TrimSpace(req.CertificateImage)
	if certificate == "" {
		fh, fileErr := c.FormFile("certificate")
		if fileErr == nil && fh != nil {
			certificate, err = ac.Storage.SaveCertificate("certificates", fh)
			if err != nil {
				return err
			}
		}
	}
	if certificate == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Certificate image is required")
	}

	award, err := ac.Reviews.IssueCollegeCertificate(service.IssueCertificateInput{
		UserID:           userID,
		CompetitionID:    competitionID,
		AwardName:        req.AwardName,
		AwardRank:        req.AwardRank,
		AwardTime:        awardTime,
		CertificateImage: certificate,
		Description:      req.Description,
		IssuedBy:         issuerID,
	})
	if err != nil {
		return err
	}
	return helper.JsonWithCode(c, fiber.StatusCreated, "Certificate issued", award)
}
