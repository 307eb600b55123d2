package controller

import (
	"github.com/gofiber/fiber/v2"

	awardModel "competition_portal_backend/internals/features/awards/model"
	competitionModel "competition_portal_backend/internals/features/competitions/model"
	registrationModel "competition_portal_backend/internals/features/registrations/model"
	userModel "competition_portal_backend/internals/features/users/user/model"
	helper "competition_portal_backend/internals/helpers"
)

type groupCount struct {
	Key   string `json:"key"`
	Count int64  `json:"count"`
}

// Statistics returns the dashboard counters: table totals plus awards by
// level and registrations by status.
func (ac *AdminController) Statistics(c *fiber.Ctx) error {
	var userTotal, competitionTotal, registrationTotal, awardTotal int64
	if err := ac.DB.Model(&userModel.UserModel{}).Count(&userTotal).Error; err != nil {
		return err
	}
	if err := ac.DB.Model(&competitionModel.CompetitionModel{}).Count(&competitionTotal).Error; err != nil {
		return err
	}
	if err := ac.DB.Model(&registrationModel.RegistrationModel{}).Count(&registrationTotal).Error; err != nil {
		return err
	}
	if err := ac.DB.Model(&awardModel.AwardModel{}).Count(&awardTotal).Error; err != nil {
		return err
	}

	var awardsByLevel []groupCount
	if err := ac.DB.Model(&awardModel.AwardModel{}).
		Select("award_level AS key, COUNT(*) AS count").
		Group("award_level").
		Scan(&awardsByLevel).Error; err != nil {
		return err
	}

	var registrationsByStatus []groupCount
	if err := ac.DB.Model(&registrationModel.RegistrationModel{}).
		Select("status AS key, COUNT(*) AS count").
		Group("status").
		Scan(&registrationsByStatus).Error; err != nil {
		return err
	}

	return helper.JsonOK(c, "", fiber.Map{
		"totals": fiber.Map{
			"users":         userTotal,
			"competitions":  competitionTotal,
			"registrations": registrationTotal,
			"awards":        awardTotal,
		},
		"awards_by_level":         awardsByLevel,
		"registrations_by_status": registrationsByStatus,
	})
}
