package controller

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"competition_portal_backend/internals/features/admin/service"
	competitionModel "competition_portal_backend/internals/features/competitions/model"
	helper "competition_portal_backend/internals/helpers"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportAwards streams the filtered award list as an xlsx attachment.
func (ac *AdminController) ExportAwards(c *fiber.Ctx) error {
	f, _, err := service.BuildAwardsWorkbook(ac.DB, service.AwardExportFilter{
		Level:  c.Query("award_level"),
		Status: c.Query("status"),
	})
	if err != nil {
		return err
	}
	defer f.Close()

	filename := fmt.Sprintf("awards_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return f.Write(c.Response().BodyWriter())
}

// ExportRegistrations streams the filtered registration list as an xlsx
// attachment.
func (ac *AdminController) ExportRegistrations(c *fiber.Ctx) error {
	filter := service.RegistrationExportFilter{Status: c.Query("status")}
	if raw := c.Query("competition_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid competition ID")
		}
		filter.CompetitionID = &id
	}

	f, _, err := service.BuildRegistrationsWorkbook(ac.DB, filter)
	if err != nil {
		return err
	}
	defer f.Close()

	filename := fmt.Sprintf("registrations_%s.xlsx", time.Now().Format("20060102_150405"))
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return f.Write(c.Response().BodyWriter())
}

// ExportMaterials streams every resolvable material of a competition as a
// zip archive, one folder per registrant.
func (ac *AdminController) ExportMaterials(c *fiber.Ctx) error {
	competitionID, err := uuid.Parse(c.Params("competitionId"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid competition ID")
	}

	var competition competitionModel.CompetitionModel
	if err := ac.DB.First(&competition, "id = ?", competitionID).Error; err != nil {
		if helper.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "Competition not found")
		}
		return err
	}

	filename := helper.SafeArchiveName(competition.Title) + "_materials.zip"
	c.Set(fiber.HeaderContentType, "application/zip")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)

	_, err = service.WriteMaterialsZip(ac.DB, ac.Storage, competitionID, c.Response().BodyWriter())
	return err
}
