package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"competition_portal_backend/internals/features/notifications/model"
	helper "competition_portal_backend/internals/helpers"
)

type NotificationController struct {
	DB *gorm.DB
}

func NewNotificationController(db *gorm.DB) *NotificationController {
	return &NotificationController{DB: db}
}

func (nc *NotificationController) List(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	paging := helper.ResolvePaging(c, 20, 100)

	q := nc.DB.Model(&model.NotificationModel{}).Where("user_id = ?", userID)
	if isRead := c.Query("is_read"); isRead != "" {
		q = q.Where("is_read = ?", isRead == "true")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return err
	}

	var unreadCount int64
	if err := nc.DB.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&unreadCount).Error; err != nil {
		return err
	}

	var notifications []model.NotificationModel
	if err := q.
		Order("created_at DESC").
		Offset(paging.Offset).
		Limit(paging.Limit).
		Find(&notifications).Error; err != nil {
		return err
	}

	return helper.JsonOK(c, "", fiber.Map{
		"notifications": notifications,
		"pagination":    helper.BuildPagination(total, paging.Page, paging.Limit),
		"unread_count":  unreadCount,
	})
}

// MarkAsRead is idempotent: re-marking an already-read row succeeds.
func (nc *NotificationController) MarkAsRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid notification ID")
	}

	var notification model.NotificationModel
	if err := nc.DB.First(&notification, "id = ?", id).Error; err != nil {
		if helper.IsNotFound(err) {
			return fiber.NewError(fiber.StatusNotFound, "Notification not found")
		}
		return err
	}
	if notification.UserID != userID {
		return fiber.NewError(fiber.StatusForbidden, "Not your notification")
	}

	if err := nc.DB.Model(&notification).Update("is_read", true).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "Marked as read", nil)
}

func (nc *NotificationController) MarkAllAsRead(c *fiber.Ctx) error {
	userID, err := helper.GetUserID(c)
	if err != nil {
		return err
	}

	if err := nc.DB.Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Update("is_read", true).Error; err != nil {
		return err
	}
	return helper.JsonOK(c, "All marked as read", nil)
}
